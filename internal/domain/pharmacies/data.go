package pharmacies

// Dataset estático. Colaborador periférico de solo lectura para la UI;
// un directorio real entraría por un adapter, no por acá.
var directory = []Pharmacy{
	{
		ID:                "ph-1",
		Name:              "Apollo Pharmacy",
		Address:           "12 MG Road, Bengaluru",
		DistanceKm:        0.8,
		DeliveryAvailable: true,
		JanAushadhi:       false,
		Phone:             "+91 80 4111 2233",
	},
	{
		ID:                "ph-2",
		Name:              "Jan Aushadhi Kendra",
		Address:           "45 Brigade Road, Bengaluru",
		DistanceKm:        1.4,
		DeliveryAvailable: false,
		JanAushadhi:       true,
		Phone:             "+91 80 2555 7788",
	},
	{
		ID:                "ph-3",
		Name:              "MedPlus",
		Address:           "230 Koramangala 5th Block, Bengaluru",
		DistanceKm:        2.1,
		DeliveryAvailable: true,
		JanAushadhi:       false,
		Phone:             "+91 80 4066 9900",
	},
	{
		ID:                "ph-4",
		Name:              "Jan Aushadhi Store",
		Address:           "7 Jayanagar 4th Block, Bengaluru",
		DistanceKm:        3.5,
		DeliveryAvailable: true,
		JanAushadhi:       true,
		Phone:             "+91 80 2663 4455",
	},
}

var generics = []GenericAlternative{
	{
		BrandName:        "Crocin 500",
		GenericName:      "Paracetamol 500mg",
		Price:            30,
		JanAushadhiPrice: 8,
		Savings:          22,
	},
	{
		BrandName:        "Augmentin 625",
		GenericName:      "Amoxicillin + Clavulanate 625mg",
		Price:            204,
		JanAushadhiPrice: 60,
		Savings:          144,
	},
	{
		BrandName:        "Glycomet 500",
		GenericName:      "Metformin 500mg",
		Price:            42,
		JanAushadhiPrice: 12,
		Savings:          30,
	},
	{
		BrandName:        "Telma 40",
		GenericName:      "Telmisartan 40mg",
		Price:            168,
		JanAushadhiPrice: 35,
		Savings:          133,
	},
	{
		BrandName:        "Pan 40",
		GenericName:      "Pantoprazole 40mg",
		Price:            125,
		Savings:          70,
	},
}
