package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"mediassist/internal/domain/medicines"
)

type medicinesRepo struct {
	mu   sync.RWMutex
	byID map[string]medicines.Medicine
	seq  int // orden de inserción, para listar en orden de alta
	ord  map[string]int
}

func NewMedicinesRepo() medicines.Repository {
	return &medicinesRepo{
		byID: make(map[string]medicines.Medicine),
		ord:  make(map[string]int),
	}
}

func (r *medicinesRepo) Create(ctx context.Context, m medicines.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medicine id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("medicine already exists")
	}

	r.byID[m.ID] = cloneMedicine(m)
	r.seq++
	r.ord[m.ID] = r.seq
	return nil
}

func (r *medicinesRepo) Update(ctx context.Context, m medicines.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[m.ID]; !exists {
		return medicines.ErrNotFound
	}
	r.byID[m.ID] = cloneMedicine(m)
	return nil
}

func (r *medicinesRepo) GetByID(ctx context.Context, id string) (medicines.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return medicines.Medicine{}, medicines.ErrNotFound
	}
	return cloneMedicine(m), nil
}

func (r *medicinesRepo) ListByUser(ctx context.Context, userID string) ([]medicines.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicines.Medicine, 0)
	for _, m := range r.byID {
		if m.UserID == userID {
			out = append(out, cloneMedicine(m))
		}
	}

	// Orden de alta (CreatedAt es solo fecha, no alcanza para desempatar)
	sort.Slice(out, func(i, j int) bool {
		return r.ord[out[i].ID] < r.ord[out[j].ID]
	})

	return out, nil
}

// cloneMedicine evita que el caller mute el slice Times compartido.
func cloneMedicine(m medicines.Medicine) medicines.Medicine {
	times := make([]string, len(m.Times))
	copy(times, m.Times)
	m.Times = times
	return m
}
