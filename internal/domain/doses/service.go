package doses

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mediassist/internal/domain/medicines"
	"mediassist/internal/domain/profiles"
	"mediassist/internal/platform/logger"
	"mediassist/internal/ports/notify"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	alertTimeout = 10 * time.Second
)

// MedicineSource es lo que el motor de dosis necesita del módulo medicines.
// Interface chica para no acoplar el servicio completo.
type MedicineSource interface {
	GetByID(ctx context.Context, id string) (medicines.Medicine, error)
	ListByUser(ctx context.Context, userID string) ([]medicines.Medicine, error)
	AdjustDaysLeft(ctx context.Context, id string, delta float64) (medicines.Medicine, error)
}

// ProfileSource provee el perfil (nombre del paciente + caregivers) para el aviso.
type ProfileSource interface {
	Get(ctx context.Context, userID string) (profiles.Profile, error)
}

type Config struct {
	AlertPolicy  AlertPolicy
	SupplyPolicy SupplyPolicy
}

type Service struct {
	repo     Repository
	meds     MedicineSource
	profiles ProfileSource
	notifier notify.MissedDoseNotifier
	log      logger.Logger
	cfg      Config
	now      func() time.Time

	// Serializa el find-or-create por slot: sin esto, dos marks simultáneos
	// del mismo slot podrían duplicar la clave natural.
	mu sync.Mutex
}

func NewService(
	repo Repository,
	meds MedicineSource,
	prof ProfileSource,
	notifier notify.MissedDoseNotifier,
	log logger.Logger,
	cfg Config,
) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if log == nil {
		log = logger.NewFromEnv()
	}
	if cfg.AlertPolicy == "" {
		cfg.AlertPolicy = AlertEveryTransition
	}
	if cfg.SupplyPolicy == "" {
		cfg.SupplyPolicy = SupplyStatic
	}

	return &Service{
		repo:     repo,
		meds:     meds,
		profiles: prof,
		notifier: notifier,
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}
}

// MarkDose es el único mutador del ledger.
// Busca el evento del slot (medicineID, scheduledTime, hoy); si existe lo
// actualiza in place, si no lo crea. ActualTime solo se setea al tomar.
// Un medicineID desconocido NO es error: produce un evento huérfano
// (comportamiento aceptado, no se valida contra el set de medicamentos).
func (s *Service) MarkDose(ctx context.Context, userID, medicineID, scheduledTime string, status Status) (DoseEvent, error) {
	userID = strings.TrimSpace(userID)
	medicineID = strings.TrimSpace(medicineID)
	scheduledTime = strings.TrimSpace(scheduledTime)

	if userID == "" || medicineID == "" || scheduledTime == "" {
		return DoseEvent{}, ErrInvalidInput
	}
	if status != StatusTaken && status != StatusMissed {
		return DoseEvent{}, ErrInvalidInput
	}
	// Mismo formato HH:MM zero-padded que exige el alta de medicamentos.
	// El round-trip descarta horas sin padding ("9:00"), que romperían el
	// lookup por slot y el orden de la vista diaria.
	if parsed, err := time.Parse(timeLayout, scheduledTime); err != nil || scheduledTime != parsed.Format(timeLayout) {
		return DoseEvent{}, ErrInvalidInput
	}

	now := s.now()
	today := now.Format(dateLayout)

	ev, prevStatus, err := s.upsertSlot(ctx, userID, medicineID, scheduledTime, today, status, now)
	if err != nil {
		return DoseEvent{}, err
	}

	s.applySupplyPolicy(ctx, medicineID, prevStatus, status)

	if status == StatusMissed {
		ev = s.dispatchMissedAlert(ctx, ev)
	}

	return ev, nil
}

// upsertSlot hace el find-or-create bajo lock (atómico por slot).
// Devuelve también el estado previo del slot (pending si no existía).
func (s *Service) upsertSlot(ctx context.Context, userID, medicineID, scheduledTime, date string, status Status, now time.Time) (DoseEvent, Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actualTime := ""
	if status == StatusTaken {
		actualTime = now.Format(timeLayout)
	}

	ev, err := s.repo.GetBySlot(ctx, userID, medicineID, scheduledTime, date)
	switch {
	case err == nil:
		prev := ev.Status
		ev.Status = status
		ev.ActualTime = actualTime
		if err := s.repo.Update(ctx, ev); err != nil {
			return DoseEvent{}, "", err
		}
		return ev, prev, nil

	case errors.Is(err, ErrNotFound):
		ev = DoseEvent{
			ID:            uuid.NewString(),
			UserID:        userID,
			MedicineID:    medicineID,
			ScheduledTime: scheduledTime,
			ActualTime:    actualTime,
			Status:        status,
			Date:          date,
			AlertSent:     false,
		}
		if err := s.repo.Create(ctx, ev); err != nil {
			return DoseEvent{}, "", err
		}
		return ev, StatusPending, nil

	default:
		return DoseEvent{}, "", err
	}
}

// applySupplyPolicy mueve daysLeft solo con SupplyPerDose y solo en
// transiciones hacia/desde taken. Best-effort: el stock es display,
// un fallo acá no voltea el mark.
func (s *Service) applySupplyPolicy(ctx context.Context, medicineID string, prev, next Status) {
	if s.cfg.SupplyPolicy != SupplyPerDose || prev == next {
		return
	}

	var direction float64
	switch {
	case next == StatusTaken && prev != StatusTaken:
		direction = -1
	case prev == StatusTaken && next != StatusTaken:
		direction = 1
	default:
		return
	}

	m, err := s.meds.GetByID(ctx, medicineID)
	if err != nil || len(m.Times) == 0 {
		// huérfano o sin horarios: no hay stock que mover
		return
	}

	delta := direction / float64(len(m.Times))
	if _, err := s.meds.AdjustDaysLeft(ctx, medicineID, delta); err != nil {
		s.log.Warn("supply adjust failed", map[string]any{
			"medicine_id": medicineID,
			"error":       err.Error(),
		})
	}
}

// dispatchMissedAlert resuelve destinatario y dispara el aviso en background.
// Nunca bloquea ni falla hacia el caller: entrega no garantizada, solo log.
func (s *Service) dispatchMissedAlert(ctx context.Context, ev DoseEvent) DoseEvent {
	m, err := s.meds.GetByID(ctx, ev.MedicineID)
	if err != nil {
		// evento huérfano: no hay nombre de medicamento que avisar
		return ev
	}

	p, err := s.profiles.Get(ctx, ev.UserID)
	if err != nil {
		return ev
	}

	cg, ok := p.FirstNotifiableCaregiver()
	if !ok {
		return ev
	}

	if s.cfg.AlertPolicy == AlertOncePerSlot {
		claimed, cur := s.claimAlertSlot(ctx, ev)
		if !claimed {
			return cur
		}
		ev = cur
	}

	msg := notify.MissedDose{
		CaregiverEmail: cg.Email,
		CaregiverName:  cg.Name,
		PatientName:    p.Name,
		MedicineName:   m.Name,
		ScheduledTime:  ev.ScheduledTime,
		Date:           ev.Date,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
		defer cancel()

		if err := s.notifier.NotifyMissedDose(ctx, msg); err != nil {
			s.log.Error("missed dose alert failed", map[string]any{
				"medicine": msg.MedicineName,
				"slot":     msg.ScheduledTime,
				"date":     msg.Date,
				"error":    err.Error(),
			})
		}
	}()

	return ev
}

// claimAlertSlot reserva el aviso del slot bajo el mismo lock que el upsert:
// relee el evento, y si AlertSent sigue en false lo marca y persiste. De dos
// marks concurrentes del mismo slot, a lo sumo uno gana el claim. "A lo sumo
// una vez" cuenta intentos, no entregas (el resultado es invisible acá).
func (s *Service) claimAlertSlot(ctx context.Context, ev DoseEvent) (bool, DoseEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.repo.GetBySlot(ctx, ev.UserID, ev.MedicineID, ev.ScheduledTime, ev.Date)
	if err != nil {
		s.log.Warn("alert claim reload failed", map[string]any{
			"event_id": ev.ID,
			"error":    err.Error(),
		})
		return true, ev
	}
	if cur.AlertSent {
		return false, cur
	}

	cur.AlertSent = true
	if err := s.repo.Update(ctx, cur); err != nil {
		s.log.Warn("alert flag update failed", map[string]any{
			"event_id": cur.ID,
			"error":    err.Error(),
		})
	}
	return true, cur
}
