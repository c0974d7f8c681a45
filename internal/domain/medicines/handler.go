package medicines

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"mediassist/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medicines", func(mr chi.Router) {
		mr.Post("/", createMedicineHandler(svc))
		mr.Get("/", listMedicinesHandler(svc))
		mr.Get("/{medicineID}", getMedicineHandler(svc))

		// Mutación explícita del stock (la supply policy per_dose va por otro camino)
		mr.Patch("/{medicineID}/supply", updateSupplyHandler(svc))
	})
}

type createMedicineRequest struct {
	Name            string   `json:"name"`
	Dosage          string   `json:"dosage"`
	Times           []string `json:"times"`
	FoodInstruction string   `json:"food_instruction"`
	DurationDays    int      `json:"duration_days"`
	Critical        bool     `json:"critical"`
}

type medicineResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Dosage          string   `json:"dosage"`
	Times           []string `json:"times"`
	FoodInstruction string   `json:"food_instruction"`
	DurationDays    int      `json:"duration_days"`
	DaysLeft        float64  `json:"days_left"`
	Critical        bool     `json:"critical"`
	CreatedAt       string   `json:"created_at"`

	// Derivados para display (no se persisten)
	ProgressPercent int    `json:"progress_percent"`
	SupplyWarning   string `json:"supply_warning"`
}

type updateSupplyRequest struct {
	DaysLeft float64 `json:"days_left"`
}

func createMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createMedicineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:            req.Name,
			Dosage:          req.Dosage,
			Times:           req.Times,
			FoodInstruction: req.FoodInstruction,
			DurationDays:    req.DurationDays,
			Critical:        req.Critical,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toMedicineResponse(m))
	}
}

func listMedicinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]medicineResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicineResponse(m))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "medicineID"))
		if err != nil || m.UserID != claims.UserID {
			http.Error(w, "medicine not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toMedicineResponse(m))
	}
}

func updateSupplyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		medicineID := chi.URLParam(r, "medicineID")
		current, err := svc.GetByID(r.Context(), medicineID)
		if err != nil || current.UserID != claims.UserID {
			http.Error(w, "medicine not found", http.StatusNotFound)
			return
		}

		var req updateSupplyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.UpdateDaysLeft(r.Context(), medicineID, req.DaysLeft)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "medicine not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toMedicineResponse(updated))
	}
}

func toMedicineResponse(m Medicine) medicineResponse {
	return medicineResponse{
		ID:              m.ID,
		Name:            m.Name,
		Dosage:          m.Dosage,
		Times:           m.Times,
		FoodInstruction: string(m.FoodInstruction),
		DurationDays:    m.DurationDays,
		DaysLeft:        m.DaysLeft,
		Critical:        m.Critical,
		CreatedAt:       m.CreatedAt,
		ProgressPercent: ProgressPercent(m),
		SupplyWarning:   string(WarningFor(m.DaysLeft)),
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
