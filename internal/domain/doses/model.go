package doses

import "mediassist/internal/domain/medicines"

// DoseEvent es el registro durable de un slot marcado.
// Clave natural: (UserID, MedicineID, ScheduledTime, Date). A lo sumo un
// evento por slot; re-marcar actualiza, nunca duplica.
type DoseEvent struct {
	ID     string
	UserID string

	MedicineID    string
	ScheduledTime string // HH:MM
	ActualTime    string // HH:MM, solo cuando Status == taken
	Status        Status // taken | missed (pending no se persiste)
	Date          string // YYYY-MM-DD

	AlertSent bool
}

// DailyDose es una entrada de la vista de hoy. Derivada, no se almacena.
type DailyDose struct {
	Medicine medicines.Medicine
	Time     string
	Status   Status
}
