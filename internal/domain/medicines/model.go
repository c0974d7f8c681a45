package medicines

import "math"

// FoodInstruction indica cómo tomar el medicamento respecto a las comidas.
// @Enum before, after, with, empty
type FoodInstruction string

const (
	FoodBefore FoodInstruction = "before"
	FoodAfter  FoodInstruction = "after"
	FoodWith   FoodInstruction = "with"
	FoodEmpty  FoodInstruction = "empty"
)

// SupplyWarning clasifica el stock restante para la UI.
// Umbrales: <=2 días => low, <=5 días => warn.
type SupplyWarning string

const (
	SupplyOK   SupplyWarning = "ok"
	SupplyWarn SupplyWarning = "warn"
	SupplyLow  SupplyWarning = "low"
)

// Medicine representa un medicamento registrado con su pauta horaria.
type Medicine struct {
	ID     string
	UserID string

	Name            string
	Dosage          string   // texto libre: "500mg", "2 tabletas"
	Times           []string // HH:MM 24h zero-padded, en el orden que cargó el usuario
	FoodInstruction FoodInstruction

	DurationDays int
	DaysLeft     float64 // acotado a [0, DurationDays]; fraccional con supply policy per_dose
	Critical     bool

	CreatedAt string // YYYY-MM-DD
}

// ProgressPercent deriva el avance del tratamiento para display.
// DaysLeft solo se lee acá; quién lo muta es tema de la supply policy.
func ProgressPercent(m Medicine) int {
	if m.DurationDays <= 0 {
		return 0
	}
	p := 100 * (float64(m.DurationDays) - m.DaysLeft) / float64(m.DurationDays)
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return int(math.Round(p))
}

// WarningFor clasifica daysLeft según los umbrales de la UI.
func WarningFor(daysLeft float64) SupplyWarning {
	switch {
	case daysLeft <= 2:
		return SupplyLow
	case daysLeft <= 5:
		return SupplyWarn
	default:
		return SupplyOK
	}
}

// ValidFoodInstruction valida el tag contra el set cerrado.
func ValidFoodInstruction(f FoodInstruction) bool {
	switch f {
	case FoodBefore, FoodAfter, FoodWith, FoodEmpty:
		return true
	default:
		return false
	}
}
