package profiles

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"mediassist/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/profile", func(pr chi.Router) {
		pr.Get("/", getProfileHandler(svc))
		pr.Put("/caregivers", replaceCaregiversHandler(svc))
	})
}

type caregiverPayload struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Relationship string `json:"relationship"`
}

type profileResponse struct {
	UserID     string             `json:"user_id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Language   string             `json:"language"`
	Caregivers []caregiverPayload `json:"caregivers"`
}

type replaceCaregiversRequest struct {
	Caregivers []caregiverPayload `json:"caregivers"`
}

func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetOrCreate(r.Context(), claims.UserID, claims.Name, claims.Email)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func replaceCaregiversHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req replaceCaregiversRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// El perfil puede no existir todavía (primer PUT antes del primer GET).
		if _, err := svc.GetOrCreate(r.Context(), claims.UserID, claims.Name, claims.Email); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		in := make([]Caregiver, 0, len(req.Caregivers))
		for _, c := range req.Caregivers {
			in = append(in, Caregiver{
				ID:           c.ID,
				Name:         c.Name,
				Phone:        c.Phone,
				Email:        c.Email,
				Relationship: Relationship(c.Relationship),
			})
		}

		p, err := svc.ReplaceCaregivers(r.Context(), claims.UserID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func toProfileResponse(p Profile) profileResponse {
	cgs := make([]caregiverPayload, 0, len(p.Caregivers))
	for _, c := range p.Caregivers {
		cgs = append(cgs, caregiverPayload{
			ID:           c.ID,
			Name:         c.Name,
			Phone:        c.Phone,
			Email:        c.Email,
			Relationship: string(c.Relationship),
		})
	}
	return profileResponse{
		UserID:     p.UserID,
		Name:       p.Name,
		Email:      p.Email,
		Language:   p.Language,
		Caregivers: cgs,
	}
}

// writeJSON duplicado a propósito por módulo (ver nota en medicines/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
