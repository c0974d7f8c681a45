package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"mediassist/internal/domain/doses"
)

type dosesRepo struct {
	mu   sync.RWMutex
	byID map[string]doses.DoseEvent
}

func NewDosesRepo() doses.Repository {
	return &dosesRepo{
		byID: make(map[string]doses.DoseEvent),
	}
}

func (r *dosesRepo) Create(ctx context.Context, e doses.DoseEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("dose event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("dose event already exists")
	}
	// Defensa extra del invariante de clave natural; el service ya
	// serializa el find-or-create, esto cubre usos directos del repo.
	for _, other := range r.byID {
		if sameSlot(other, e) {
			return errors.New("dose event slot already exists")
		}
	}

	r.byID[e.ID] = e
	return nil
}

func (r *dosesRepo) Update(ctx context.Context, e doses.DoseEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.ID]; !exists {
		return doses.ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *dosesRepo) GetBySlot(ctx context.Context, userID, medicineID, scheduledTime, date string) (doses.DoseEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.byID {
		if e.UserID == userID &&
			e.MedicineID == medicineID &&
			e.ScheduledTime == scheduledTime &&
			e.Date == date {
			return e, nil
		}
	}
	return doses.DoseEvent{}, doses.ErrNotFound
}

func (r *dosesRepo) ListByUserAndDate(ctx context.Context, userID, date string) ([]doses.DoseEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]doses.DoseEvent, 0)
	for _, e := range r.byID {
		if e.UserID == userID && e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *dosesRepo) CountByUser(ctx context.Context, userID string) (int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total, taken := 0, 0
	for _, e := range r.byID {
		if e.UserID != userID {
			continue
		}
		total++
		if e.Status == doses.StatusTaken {
			taken++
		}
	}
	return total, taken, nil
}

func sameSlot(a, b doses.DoseEvent) bool {
	return a.UserID == b.UserID &&
		a.MedicineID == b.MedicineID &&
		a.ScheduledTime == b.ScheduledTime &&
		a.Date == b.Date
}
