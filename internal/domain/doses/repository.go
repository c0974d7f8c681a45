package doses

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("dose event not found")

type Repository interface {
	Create(ctx context.Context, e DoseEvent) error
	Update(ctx context.Context, e DoseEvent) error

	// GetBySlot busca por clave natural. ErrNotFound si el slot no fue marcado.
	GetBySlot(ctx context.Context, userID, medicineID, scheduledTime, date string) (DoseEvent, error)

	ListByUserAndDate(ctx context.Context, userID, date string) ([]DoseEvent, error)

	// CountByUser cuenta sobre el ledger completo del usuario (sin ventana).
	CountByUser(ctx context.Context, userID string) (total int, taken int, err error)
}
