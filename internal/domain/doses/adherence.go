package doses

import (
	"context"
	"math"
)

// AdherenceScore reduce el ledger completo a un porcentaje entero.
// Ledger vacío => 100 (adherencia vacuamente total; evita división por cero
// y no castiga a usuarios nuevos). Redondeo half-up.
func (s *Service) AdherenceScore(ctx context.Context, userID string) (int, error) {
	total, taken, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 100, nil
	}
	return int(math.Round(100 * float64(taken) / float64(total))), nil
}

// LevelFor clasifica el score con los umbrales de la UI original.
func LevelFor(score int) AdherenceLevel {
	switch {
	case score >= 90:
		return LevelExcellent
	case score >= 70:
		return LevelNeedsImprovement
	default:
		return LevelAtRisk
	}
}
