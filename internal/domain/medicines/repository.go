package medicines

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("medicine not found")

type Repository interface {
	Create(ctx context.Context, m Medicine) error
	Update(ctx context.Context, m Medicine) error
	GetByID(ctx context.Context, id string) (Medicine, error)
	ListByUser(ctx context.Context, userID string) ([]Medicine, error)
}
