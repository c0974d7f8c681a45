package pharmacies

import (
	"encoding/json"
	"net/http"
	"strings"

	"mediassist/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pharmacies", func(pr chi.Router) {
		pr.Get("/", listPharmaciesHandler(svc))
		pr.Get("/generics", listGenericsHandler(svc))
	})
}

type pharmacyResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Address           string  `json:"address"`
	DistanceKm        float64 `json:"distance_km"`
	DeliveryAvailable bool    `json:"delivery_available"`
	JanAushadhi       bool    `json:"jan_aushadhi"`
	Phone             string  `json:"phone"`
}

type genericResponse struct {
	BrandName        string  `json:"brand_name"`
	GenericName      string  `json:"generic_name"`
	Price            float64 `json:"price"`
	JanAushadhiPrice float64 `json:"jan_aushadhi_price,omitempty"`
	Savings          float64 `json:"savings"`
}

func listPharmaciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]pharmacyResponse, 0, len(items))
		for _, p := range items {
			out = append(out, pharmacyResponse{
				ID:                p.ID,
				Name:              p.Name,
				Address:           p.Address,
				DistanceKm:        p.DistanceKm,
				DeliveryAvailable: p.DeliveryAvailable,
				JanAushadhi:       p.JanAushadhi,
				Phone:             p.Phone,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func listGenericsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.Generics(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]genericResponse, 0, len(items))
		for _, g := range items {
			out = append(out, genericResponse{
				BrandName:        g.BrandName,
				GenericName:      g.GenericName,
				Price:            g.Price,
				JanAushadhiPrice: g.JanAushadhiPrice,
				Savings:          g.Savings,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// writeJSON duplicado a propósito por módulo (ver nota en medicines/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
