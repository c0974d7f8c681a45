package pharmacies

import (
	"context"
	"sort"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// List devuelve el directorio ordenado por distancia ascendente.
func (s *Service) List(ctx context.Context) ([]Pharmacy, error) {
	out := make([]Pharmacy, len(directory))
	copy(out, directory)

	sort.Slice(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out, nil
}

// Generics devuelve las alternativas genéricas con su ahorro.
func (s *Service) Generics(ctx context.Context) ([]GenericAlternative, error) {
	out := make([]GenericAlternative, len(generics))
	copy(out, generics)
	return out, nil
}
