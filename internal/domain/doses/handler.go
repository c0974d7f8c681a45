package doses

import (
	"encoding/json"
	"net/http"
	"strings"

	"mediassist/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/doses", markDoseHandler(svc))
	r.Get("/doses/today", todaysDosesHandler(svc))
	r.Get("/adherence", adherenceHandler(svc))
}

type markDoseRequest struct {
	MedicineID    string `json:"medicine_id"`
	ScheduledTime string `json:"scheduled_time"`
	Status        string `json:"status"` // taken | missed
}

type doseEventResponse struct {
	ID            string `json:"id"`
	MedicineID    string `json:"medicine_id"`
	ScheduledTime string `json:"scheduled_time"`
	ActualTime    string `json:"actual_time,omitempty"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	AlertSent     bool   `json:"alert_sent"`
}

// Vista reducida del medicamento dentro de la fila de hoy.
type doseMedicine struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Dosage          string  `json:"dosage"`
	FoodInstruction string  `json:"food_instruction"`
	DaysLeft        float64 `json:"days_left"`
	Critical        bool    `json:"critical"`
}

type dailyDoseResponse struct {
	Medicine doseMedicine `json:"medicine"`
	Time     string       `json:"time"`
	Status   string       `json:"status"`
}

type adherenceResponse struct {
	Score int    `json:"score"`
	Level string `json:"level"`
}

func markDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req markDoseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		status, ok := ParseMarkStatus(req.Status)
		if !ok {
			http.Error(w, "status must be taken or missed", http.StatusBadRequest)
			return
		}

		ev, err := svc.MarkDose(r.Context(), claims.UserID, req.MedicineID, req.ScheduledTime, status)
		if err != nil {
			if err == ErrInvalidInput {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toDoseEventResponse(ev))
	}
}

func todaysDosesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.TodaysDoses(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]dailyDoseResponse, 0, len(items))
		for _, d := range items {
			out = append(out, dailyDoseResponse{
				Medicine: doseMedicine{
					ID:              d.Medicine.ID,
					Name:            d.Medicine.Name,
					Dosage:          d.Medicine.Dosage,
					FoodInstruction: string(d.Medicine.FoodInstruction),
					DaysLeft:        d.Medicine.DaysLeft,
					Critical:        d.Medicine.Critical,
				},
				Time:   d.Time,
				Status: string(d.Status),
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func adherenceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		score, err := svc.AdherenceScore(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, adherenceResponse{
			Score: score,
			Level: string(LevelFor(score)),
		})
	}
}

func toDoseEventResponse(e DoseEvent) doseEventResponse {
	return doseEventResponse{
		ID:            e.ID,
		MedicineID:    e.MedicineID,
		ScheduledTime: e.ScheduledTime,
		ActualTime:    e.ActualTime,
		Status:        string(e.Status),
		Date:          e.Date,
		AlertSent:     e.AlertSent,
	}
}

// writeJSON duplicado a propósito por módulo (ver nota en medicines/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
