package doses

import (
	"context"
	"sort"

	"mediassist/internal/domain/medicines"
)

// Schedule expande la pauta de un medicamento a los slots esperados "hoy".
// La pauta no es calendar-aware: son los horarios tal cual, todos los días.
// Lista vacía => sin slots.
func Schedule(m medicines.Medicine) []string {
	return m.Times
}

// TodaysDoses reconcilia pauta vs ledger y arma la vista del día.
// Slot con evento => estado del evento; sin evento => pending.
// Orden ascendente por hora (HH:MM zero-padded hace válido el orden
// lexicográfico); empates conservan el orden de los medicamentos.
func (s *Service) TodaysDoses(ctx context.Context, userID string) ([]DailyDose, error) {
	today := s.now().Format(dateLayout)

	meds, err := s.meds.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.ListByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	bySlot := make(map[string]DoseEvent, len(events))
	for _, e := range events {
		bySlot[e.MedicineID+"|"+e.ScheduledTime] = e
	}

	out := make([]DailyDose, 0)
	for _, m := range meds {
		for _, t := range Schedule(m) {
			status := StatusPending
			if e, ok := bySlot[m.ID+"|"+t]; ok {
				status = e.Status
			}
			out = append(out, DailyDose{
				Medicine: m,
				Time:     t,
				Status:   status,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})

	return out, nil
}
