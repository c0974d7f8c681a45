package profiles

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, userID)
}

// GetOrCreate materializa el perfil en el primer acceso usando los claims del token.
func (s *Service) GetOrCreate(ctx context.Context, userID, name, email string) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}

	p, err := s.repo.Get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}

	p = Profile{
		UserID:     userID,
		Name:       strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		Language:   "en",
		Caregivers: []Caregiver{},
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// ReplaceCaregivers reemplaza la lista completa (semántica PUT).
// A los que vienen sin id se les asigna uno.
func (s *Service) ReplaceCaregivers(ctx context.Context, userID string, in []Caregiver) (Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	out := make([]Caregiver, 0, len(in))
	for _, c := range in {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return Profile{}, ErrInvalidInput
		}

		rel := c.Relationship
		if rel == "" {
			rel = RelationshipFamily
		}
		if !ValidRelationship(rel) {
			return Profile{}, ErrInvalidInput
		}

		id := strings.TrimSpace(c.ID)
		if id == "" {
			id = uuid.NewString()
		}

		out = append(out, Caregiver{
			ID:           id,
			Name:         name,
			Phone:        strings.TrimSpace(c.Phone),
			Email:        strings.TrimSpace(c.Email),
			Relationship: rel,
		})
	}

	p.Caregivers = out
	if err := s.repo.Save(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
