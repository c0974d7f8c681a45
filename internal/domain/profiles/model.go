package profiles

import "strings"

// Relationship define el vínculo del caregiver con el paciente.
// @Enum family, doctor, other
type Relationship string

const (
	RelationshipFamily Relationship = "family"
	RelationshipDoctor Relationship = "doctor"
	RelationshipOther  Relationship = "other"
)

// Caregiver es un contacto elegible para recibir avisos de dosis perdida.
type Caregiver struct {
	ID           string
	Name         string
	Phone        string
	Email        string
	Relationship Relationship
}

// Profile es el perfil por usuario: datos básicos + lista de caregivers.
type Profile struct {
	UserID     string
	Name       string
	Email      string
	Language   string // en | hi
	Caregivers []Caregiver
}

// FirstNotifiableCaregiver devuelve el primer caregiver con email no vacío.
// No hay más política de selección que esa.
func (p Profile) FirstNotifiableCaregiver() (Caregiver, bool) {
	for _, c := range p.Caregivers {
		if strings.TrimSpace(c.Email) != "" {
			return c, true
		}
	}
	return Caregiver{}, false
}

func ValidRelationship(r Relationship) bool {
	switch r {
	case RelationshipFamily, RelationshipDoctor, RelationshipOther:
		return true
	default:
		return false
	}
}
