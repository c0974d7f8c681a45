package profiles

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("profile not found")

type Repository interface {
	Get(ctx context.Context, userID string) (Profile, error)
	// Save upserta el perfil completo (incluida la lista de caregivers).
	Save(ctx context.Context, p Profile) error
}
