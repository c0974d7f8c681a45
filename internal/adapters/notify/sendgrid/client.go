package sendgrid

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"mediassist/internal/platform/httpclient"
	"mediassist/internal/ports/notify"
)

const (
	defaultBaseURL = "https://api.sendgrid.com"
	mailSendPath   = "/v3/mail/send"

	defaultFromName = "MediAssist Alerts"
)

var (
	ErrNotConfigured = errors.New("sendgrid client not configured")
)

// Config del cliente SendGrid.
// FromEmail debe ser un sender verificado; TemplateID es el dynamic template
// del aviso de dosis perdida.
type Config struct {
	APIKey     string
	FromEmail  string
	FromName   string
	TemplateID string

	// Opcional: override para tests (httptest server).
	BaseURL string
	Timeout time.Duration
}

// Notifier implementa notify.MissedDoseNotifier contra el mail API v3.
type Notifier struct {
	client *httpclient.Client
	cfg    Config
}

func New(cfg Config) (*Notifier, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.FromEmail = strings.TrimSpace(cfg.FromEmail)
	cfg.TemplateID = strings.TrimSpace(cfg.TemplateID)
	if cfg.FromName == "" {
		cfg.FromName = defaultFromName
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	client, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Notifier{client: client, cfg: cfg}, nil
}

// NewFromEnv arma el notifier desde env vars; ok=false si falta config
// (el router cae a Noop en ese caso).
func NewFromEnv() (*Notifier, bool) {
	cfg := Config{
		APIKey:     os.Getenv("SENDGRID_API_KEY"),
		FromEmail:  os.Getenv("SENDGRID_FROM_EMAIL"),
		FromName:   os.Getenv("SENDGRID_FROM_NAME"),
		TemplateID: os.Getenv("SENDGRID_TEMPLATE_ID"),
	}

	n, err := New(cfg)
	if err != nil || !n.IsConfigured() {
		return nil, false
	}
	return n, true
}

func (n *Notifier) IsConfigured() bool {
	return n != nil && n.cfg.APIKey != "" && n.cfg.FromEmail != "" && n.cfg.TemplateID != ""
}

// Formato del mail API v3 con dynamic template.
// Los nombres de template data son los que espera el template del lado SendGrid.
type mailRequest struct {
	From             emailAddress      `json:"from"`
	Personalizations []personalization `json:"personalizations"`
	TemplateID       string            `json:"template_id"`
}

type personalization struct {
	To           []emailAddress `json:"to"`
	TemplateData templateData   `json:"dynamic_template_data"`
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type templateData struct {
	CaretakerName string `json:"caretakerName"`
	PatientName   string `json:"patientName"`
	MedicineName  string `json:"medicineName"`
	Time          string `json:"time"`
	Date          string `json:"date"`
}

func (n *Notifier) NotifyMissedDose(ctx context.Context, m notify.MissedDose) error {
	if !n.IsConfigured() {
		return ErrNotConfigured
	}

	req := mailRequest{
		From: emailAddress{
			Email: n.cfg.FromEmail,
			Name:  n.cfg.FromName,
		},
		Personalizations: []personalization{
			{
				To: []emailAddress{
					{Email: m.CaregiverEmail, Name: m.CaregiverName},
				},
				TemplateData: templateData{
					CaretakerName: m.CaregiverName,
					PatientName:   m.PatientName,
					MedicineName:  m.MedicineName,
					Time:          m.ScheduledTime,
					Date:          m.Date,
				},
			},
		},
		TemplateID: n.cfg.TemplateID,
	}

	headers := map[string]string{
		"Authorization": "Bearer " + n.cfg.APIKey,
	}

	return n.client.DoJSON(ctx, http.MethodPost, mailSendPath, headers, req, nil)
}
