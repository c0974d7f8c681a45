package doses

import "strings"

// Status es el estado de un slot de dosis.
// pending nunca se persiste: solo lo sintetiza la vista diaria.
// @Enum taken, missed, pending
type Status string

const (
	StatusTaken   Status = "taken"
	StatusMissed  Status = "missed"
	StatusPending Status = "pending"
)

// ParseMarkStatus acepta solo los estados marcables por el usuario.
func ParseMarkStatus(s string) (Status, bool) {
	switch Status(strings.TrimSpace(s)) {
	case StatusTaken:
		return StatusTaken, true
	case StatusMissed:
		return StatusMissed, true
	default:
		return "", false
	}
}

// AlertPolicy resuelve la ambigüedad del flag alertSent:
// - AlertEveryTransition: cada transición a missed dispara aviso (camino primario original).
// - AlertOncePerSlot: a lo sumo un aviso por slot, guardado sobre AlertSent.
type AlertPolicy string

const (
	AlertEveryTransition AlertPolicy = "every_transition"
	AlertOncePerSlot     AlertPolicy = "once_per_slot"
)

func ParseAlertPolicy(s string) AlertPolicy {
	if AlertPolicy(strings.TrimSpace(s)) == AlertOncePerSlot {
		return AlertOncePerSlot
	}
	return AlertEveryTransition
}

// SupplyPolicy define si marcar dosis mueve el contador daysLeft:
// - SupplyStatic: daysLeft solo cambia por edición explícita (camino primario original).
// - SupplyPerDose: +-1/len(times) en transiciones hacia/desde taken, acotado.
type SupplyPolicy string

const (
	SupplyStatic  SupplyPolicy = "static"
	SupplyPerDose SupplyPolicy = "per_dose"
)

func ParseSupplyPolicy(s string) SupplyPolicy {
	if SupplyPolicy(strings.TrimSpace(s)) == SupplyPerDose {
		return SupplyPerDose
	}
	return SupplyStatic
}

// AdherenceLevel clasifica el score para la UI.
// @Enum excellent, needs_improvement, at_risk
type AdherenceLevel string

const (
	LevelExcellent        AdherenceLevel = "excellent"
	LevelNeedsImprovement AdherenceLevel = "needs_improvement"
	LevelAtRisk           AdherenceLevel = "at_risk"
)
