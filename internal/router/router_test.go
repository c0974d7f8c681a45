package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mediassist/internal/ports/notify"
	"mediassist/internal/router"
)

type captureNotifier struct {
	ch chan notify.MissedDose
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{ch: make(chan notify.MissedDose, 8)}
}

func (c *captureNotifier) NotifyMissedDose(ctx context.Context, m notify.MissedDose) error {
	c.ch <- m
	return nil
}

func newTestServer(t *testing.T, notifier notify.MissedDoseNotifier) *httptest.Server {
	t.Helper()

	// Fuerza storage in-memory aunque el entorno tenga DSN configurado
	t.Setenv("DB_DSN", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("ALERT_POLICY", "")
	t.Setenv("SUPPLY_POLICY", "")

	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil, // modo dev: X-Debug-User-ID
		Notifier:     notifier,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_DoseTracking(t *testing.T) {
	nt := newCaptureNotifier()
	ts := newTestServer(t, nt)

	userID := "user-1"

	// 1) Registrar caregiver con email (receptor de alertas)
	{
		st, body := doReq(t, ts.URL, "PUT", "/profile/caregivers", userID, map[string]any{
			"caregivers": []map[string]any{
				{"name": "Ravi", "email": "ravi@example.com", "relationship": "family"},
			},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 put caregivers, got %d body=%s", st, string(body))
		}
	}

	// 2) Crear medicamento con dos horarios
	medID := createMedicine(t, ts.URL, userID, map[string]any{
		"name":          "Paracetamol",
		"dosage":        "500mg",
		"times":         []string{"09:00", "21:00"},
		"duration_days": 10,
	})

	// 3) Vista de hoy: dos pendientes ordenados por hora
	{
		st, body := doReq(t, ts.URL, "GET", "/doses/today", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 today, got %d body=%s", st, string(body))
		}

		var today []struct {
			Time   string `json:"time"`
			Status string `json:"status"`
			Medicine struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"medicine"`
		}
		if err := json.Unmarshal(body, &today); err != nil {
			t.Fatalf("unmarshal today: %v body=%s", err, string(body))
		}
		if len(today) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(today))
		}
		if today[0].Time != "09:00" || today[1].Time != "21:00" {
			t.Fatalf("wrong order: %s, %s", today[0].Time, today[1].Time)
		}
		for _, d := range today {
			if d.Status != "pending" {
				t.Fatalf("expected pending, got %s at %s", d.Status, d.Time)
			}
			if d.Medicine.ID != medID {
				t.Fatalf("wrong medicine id %s", d.Medicine.ID)
			}
		}
	}

	// 4) Marcar la dosis de las 09:00 como tomada
	var eventID string
	{
		st, body := doReq(t, ts.URL, "POST", "/doses", userID, map[string]any{
			"medicine_id":    medID,
			"scheduled_time": "09:00",
			"status":         "taken",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 mark taken, got %d body=%s", st, string(body))
		}

		var ev struct {
			ID         string `json:"id"`
			Status     string `json:"status"`
			ActualTime string `json:"actual_time"`
		}
		_ = json.Unmarshal(body, &ev)
		if ev.Status != "taken" || ev.ActualTime == "" {
			t.Fatalf("expected taken with actual_time, got %+v", ev)
		}
		eventID = ev.ID
	}

	// 5) La vista de hoy refleja el cambio
	{
		st, body := doReq(t, ts.URL, "GET", "/doses/today", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 today, got %d", st)
		}
		var today []struct {
			Time   string `json:"time"`
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &today)
		if today[0].Status != "taken" || today[1].Status != "pending" {
			t.Fatalf("expected taken/pending, got %s/%s", today[0].Status, today[1].Status)
		}
	}

	// 6) Re-marcar la misma dosis como perdida: mismo evento, actual_time limpio
	{
		st, body := doReq(t, ts.URL, "POST", "/doses", userID, map[string]any{
			"medicine_id":    medID,
			"scheduled_time": "09:00",
			"status":         "missed",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 re-mark, got %d body=%s", st, string(body))
		}

		var ev struct {
			ID         string `json:"id"`
			Status     string `json:"status"`
			ActualTime string `json:"actual_time"`
		}
		_ = json.Unmarshal(body, &ev)
		if ev.ID != eventID {
			t.Fatalf("re-mark created new event: %s != %s", ev.ID, eventID)
		}
		if ev.Status != "missed" || ev.ActualTime != "" {
			t.Fatalf("expected missed without actual_time, got %+v", ev)
		}
	}

	// 7) La dosis perdida dispara aviso al primer caregiver con email
	select {
	case msg := <-nt.ch:
		if msg.CaregiverEmail != "ravi@example.com" {
			t.Fatalf("expected ravi@example.com, got %q", msg.CaregiverEmail)
		}
		if msg.MedicineName != "Paracetamol" || msg.ScheduledTime != "09:00" {
			t.Fatalf("unexpected alert payload %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a missed dose alert dispatch")
	}
}

func TestHTTP_Adherence(t *testing.T) {
	ts := newTestServer(t, newCaptureNotifier())
	userID := "user-1"

	// Sin eventos => 100 excellent
	{
		st, body := doReq(t, ts.URL, "GET", "/adherence", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 adherence, got %d", st)
		}
		var resp struct {
			Score int    `json:"score"`
			Level string `json:"level"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Score != 100 || resp.Level != "excellent" {
			t.Fatalf("expected 100/excellent on empty ledger, got %+v", resp)
		}
	}

	medID := createMedicine(t, ts.URL, userID, map[string]any{
		"name":          "Metformin",
		"times":         []string{"08:00"},
		"duration_days": 30,
	})

	// 3 tomadas + 1 perdida => 75 needs_improvement
	marks := []struct {
		time   string
		status string
	}{
		{"08:00", "taken"},
		{"12:00", "taken"},
		{"16:00", "taken"},
		{"20:00", "missed"},
	}
	for _, m := range marks {
		st, body := doReq(t, ts.URL, "POST", "/doses", userID, map[string]any{
			"medicine_id":    medID,
			"scheduled_time": m.time,
			"status":         m.status,
		})
		if st != http.StatusOK {
			t.Fatalf("mark %s: expected 200, got %d body=%s", m.time, st, string(body))
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/adherence", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 adherence, got %d", st)
		}
		var resp struct {
			Score int    `json:"score"`
			Level string `json:"level"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Score != 75 || resp.Level != "needs_improvement" {
			t.Fatalf("expected 75/needs_improvement, got %+v", resp)
		}
	}

	// El ledger es por usuario: otro usuario sigue en 100
	{
		st, body := doReq(t, ts.URL, "GET", "/adherence", "user-2", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 adherence, got %d", st)
		}
		var resp struct {
			Score int `json:"score"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Score != 100 {
			t.Fatalf("expected 100 for other user, got %d", resp.Score)
		}
	}
}

func TestHTTP_MarkDose_Validation(t *testing.T) {
	ts := newTestServer(t, newCaptureNotifier())
	userID := "user-1"

	// Status inválido => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/doses", userID, map[string]any{
			"medicine_id":    "whatever",
			"scheduled_time": "09:00",
			"status":         "pending",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for pending status, got %d", st)
		}
	}

	// Medicamento desconocido se acepta igual (evento huérfano)
	{
		st, body := doReq(t, ts.URL, "POST", "/doses", userID, map[string]any{
			"medicine_id":    "ghost-med",
			"scheduled_time": "09:00",
			"status":         "taken",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 for orphan medicine, got %d body=%s", st, string(body))
		}
	}

	// Hora mal formada => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/doses", userID, map[string]any{
			"medicine_id":    "ghost-med",
			"scheduled_time": "9am",
			"status":         "taken",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad time, got %d", st)
		}
	}
}

func TestHTTP_Medicines_OwnershipAndSupply(t *testing.T) {
	ts := newTestServer(t, newCaptureNotifier())

	medID := createMedicine(t, ts.URL, "user-1", map[string]any{
		"name":          "Atorvastatin",
		"times":         []string{"22:00"},
		"duration_days": 30,
	})

	// Otro usuario no lo ve
	{
		st, _ := doReq(t, ts.URL, "GET", "/medicines/"+medID, "user-2", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for other user, got %d", st)
		}
	}

	// PATCH supply ajusta y deriva warning
	{
		st, body := doReq(t, ts.URL, "PATCH", "/medicines/"+medID+"/supply", "user-1", map[string]any{
			"days_left": 4,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch supply, got %d body=%s", st, string(body))
		}
		var resp struct {
			DaysLeft      float64 `json:"days_left"`
			SupplyWarning string  `json:"supply_warning"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.DaysLeft != 4 || resp.SupplyWarning != "warn" {
			t.Fatalf("expected 4/warn, got %+v", resp)
		}
	}

	// Duración inválida => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/medicines", "user-1", map[string]any{
			"name":  "X",
			"times": []string{"09:00"},
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 without duration, got %d", st)
		}
	}
}

func TestHTTP_Profile(t *testing.T) {
	ts := newTestServer(t, newCaptureNotifier())

	// Primer GET materializa el perfil con el nombre del token
	{
		req, err := http.NewRequest("GET", ts.URL+"/profile", nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("X-Debug-User-ID", "user-1")
		req.Header.Set("X-Debug-User-Name", "Asha")

		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)
		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 profile, got %d body=%s", res.StatusCode, string(body))
		}

		var resp struct {
			UserID   string `json:"user_id"`
			Name     string `json:"name"`
			Language string `json:"language"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.UserID != "user-1" || resp.Name != "Asha" || resp.Language != "en" {
			t.Fatalf("unexpected profile %+v", resp)
		}
	}

	// Relationship inválido => 400
	{
		st, _ := doReq(t, ts.URL, "PUT", "/profile/caregivers", "user-1", map[string]any{
			"caregivers": []map[string]any{
				{"name": "X", "relationship": "roommate"},
			},
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad relationship, got %d", st)
		}
	}
}

func TestHTTP_Pharmacies(t *testing.T) {
	ts := newTestServer(t, newCaptureNotifier())

	{
		st, body := doReq(t, ts.URL, "GET", "/pharmacies", "user-1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pharmacies, got %d", st)
		}
		var items []struct {
			DistanceKm float64 `json:"distance_km"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) == 0 {
			t.Fatal("expected pharmacies in directory")
		}
		for i := 1; i < len(items); i++ {
			if items[i].DistanceKm < items[i-1].DistanceKm {
				t.Fatalf("directory not sorted by distance at %d", i)
			}
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/pharmacies/generics", "user-1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 generics, got %d", st)
		}
		var items []struct {
			Savings float64 `json:"savings"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) == 0 {
			t.Fatal("expected generic alternatives")
		}
	}
}

func TestHTTP_RequiresUser(t *testing.T) {
	ts := newTestServer(t, newCaptureNotifier())

	// Health es público
	{
		st, _ := doReq(t, ts.URL, "GET", "/health", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 health without auth, got %d", st)
		}
	}

	// Todo lo demás exige user
	for _, path := range []string{"/medicines", "/doses/today", "/adherence", "/profile", "/pharmacies"} {
		st, _ := doReq(t, ts.URL, "GET", path, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 on %s without user, got %d", path, st)
		}
	}
}

func createMedicine(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/medicines", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create medicine, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create medicine: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
