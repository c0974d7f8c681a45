package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"mediassist/internal/domain/profiles"
)

type profilesRepo struct {
	mu       sync.RWMutex
	byUserID map[string]profiles.Profile
}

func NewProfilesRepo() profiles.Repository {
	return &profilesRepo{
		byUserID: make(map[string]profiles.Profile),
	}
}

func (r *profilesRepo) Get(ctx context.Context, userID string) (profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUserID[userID]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r *profilesRepo) Save(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("profile user id required")
	}
	r.byUserID[p.UserID] = cloneProfile(p)
	return nil
}

func cloneProfile(p profiles.Profile) profiles.Profile {
	cgs := make([]profiles.Caregiver, len(p.Caregivers))
	copy(cgs, p.Caregivers)
	p.Caregivers = cgs
	return p
}
