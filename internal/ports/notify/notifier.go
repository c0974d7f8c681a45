package notify

import "context"

// MissedDose es el payload mínimo que necesita cualquier canal de aviso.
// Los nombres calzan con lo que espera el template de email del lado del proveedor.
type MissedDose struct {
	CaregiverEmail string
	CaregiverName  string
	PatientName    string
	MedicineName   string
	ScheduledTime  string // HH:MM
	Date           string // YYYY-MM-DD
}

// MissedDoseNotifier envía un aviso de dosis perdida al caregiver.
// El caller NO debe bloquear su transición de estado esperando esto:
// se invoca fire-and-forget y los errores solo se loguean.
type MissedDoseNotifier interface {
	NotifyMissedDose(ctx context.Context, m MissedDose) error
}

// Noop es el notifier por defecto cuando no hay proveedor configurado (dev/tests).
type Noop struct{}

func (Noop) NotifyMissedDose(ctx context.Context, m MissedDose) error {
	return nil
}
