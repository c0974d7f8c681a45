package medicines

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const dateLayout = "2006-01-02"

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name            string
	Dosage          string
	Times           []string
	FoodInstruction string
	DurationDays    int
	Critical        bool
}

// Create valida y registra un medicamento nuevo.
// DaysLeft arranca igual a DurationDays (tratamiento completo por delante).
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Medicine, error) {
	if strings.TrimSpace(userID) == "" {
		return Medicine{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Medicine{}, ErrInvalidInput
	}
	if in.DurationDays < 1 {
		return Medicine{}, ErrInvalidInput
	}

	times, err := normalizeTimes(in.Times)
	if err != nil {
		return Medicine{}, err
	}

	food := FoodInstruction(strings.TrimSpace(in.FoodInstruction))
	if food == "" {
		food = FoodAfter
	}
	if !ValidFoodInstruction(food) {
		return Medicine{}, ErrInvalidInput
	}

	m := Medicine{
		ID:              uuid.NewString(),
		UserID:          userID,
		Name:            strings.TrimSpace(in.Name),
		Dosage:          strings.TrimSpace(in.Dosage),
		Times:           times,
		FoodInstruction: food,
		DurationDays:    in.DurationDays,
		DaysLeft:        float64(in.DurationDays),
		Critical:        in.Critical,
		CreatedAt:       s.now().Format(dateLayout),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medicine{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Medicine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medicine{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Medicine, error) {
	return s.repo.ListByUser(ctx, userID)
}

// UpdateDaysLeft es la vía de mutación explícita de DaysLeft (edición del usuario).
// El valor queda acotado a [0, DurationDays].
func (s *Service) UpdateDaysLeft(ctx context.Context, id string, daysLeft float64) (Medicine, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return Medicine{}, err
	}

	m.DaysLeft = clampDays(daysLeft, m.DurationDays)
	if err := s.repo.Update(ctx, m); err != nil {
		return Medicine{}, err
	}
	return m, nil
}

// AdjustDaysLeft aplica un delta (p.ej. -1/len(times) por dosis tomada)
// manteniendo el invariante [0, DurationDays]. Lo usa la supply policy per_dose.
func (s *Service) AdjustDaysLeft(ctx context.Context, id string, delta float64) (Medicine, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return Medicine{}, err
	}

	m.DaysLeft = clampDays(m.DaysLeft+delta, m.DurationDays)
	if err := s.repo.Update(ctx, m); err != nil {
		return Medicine{}, err
	}
	return m, nil
}

func clampDays(v float64, duration int) float64 {
	if v < 0 {
		return 0
	}
	if max := float64(duration); v > max {
		return max
	}
	return v
}

// normalizeTimes exige al menos un horario HH:MM 24h zero-padded.
// El orden se respeta tal como vino (la vista de hoy ordena después).
func normalizeTimes(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, raw := range in {
		t := strings.TrimSpace(raw)
		if t == "" {
			continue
		}
		// Parse solo valida el rango; acepta "9:00" sin padding. El round-trip
		// contra Format exige el zero-padding, que es lo que hace correcto el
		// orden lexicográfico de la vista diaria.
		parsed, err := time.Parse("15:04", t)
		if err != nil || t != parsed.Format("15:04") {
			return nil, ErrInvalidInput
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, ErrInvalidInput
	}
	return out, nil
}
