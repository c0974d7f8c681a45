package pharmacies

// Pharmacy es una entrada del directorio estático de farmacias cercanas.
type Pharmacy struct {
	ID                string
	Name              string
	Address           string
	DistanceKm        float64
	DeliveryAvailable bool
	JanAushadhi       bool
	Phone             string
}

// GenericAlternative compara precio de marca contra el genérico equivalente.
type GenericAlternative struct {
	BrandName        string
	GenericName      string
	Price            float64
	JanAushadhiPrice float64 // 0 => no disponible en Jan Aushadhi
	Savings          float64
}
