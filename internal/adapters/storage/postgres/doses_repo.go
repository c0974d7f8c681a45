package postgres

import (
	"context"
	"database/sql"
	"strings"

	"mediassist/internal/domain/doses"
)

type DosesRepo struct {
	db *sql.DB
}

func NewDosesRepo(db *sql.DB) *DosesRepo {
	return &DosesRepo{db: db}
}

func (r *DosesRepo) Create(ctx context.Context, e doses.DoseEvent) error {
	// El índice único sobre la clave natural respalda al lock del service:
	// un duplicado concurrente falla acá en vez de insertarse dos veces.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dose_events (
			id, user_id, medicine_id, scheduled_time, actual_time,
			status, date, alert_sent
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		e.ID,
		e.UserID,
		e.MedicineID,
		e.ScheduledTime,
		e.ActualTime,
		string(e.Status),
		e.Date,
		e.AlertSent,
	)
	return err
}

func (r *DosesRepo) Update(ctx context.Context, e doses.DoseEvent) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dose_events
		SET
			actual_time = $2,
			status = $3,
			alert_sent = $4
		WHERE id = $1
	`,
		e.ID,
		e.ActualTime,
		string(e.Status),
		e.AlertSent,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return doses.ErrNotFound
	}
	return nil
}

func (r *DosesRepo) GetBySlot(ctx context.Context, userID, medicineID, scheduledTime, date string) (doses.DoseEvent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, medicine_id, scheduled_time, actual_time, status, date, alert_sent
		FROM dose_events
		WHERE user_id = $1 AND medicine_id = $2 AND scheduled_time = $3 AND date = $4
	`, userID, medicineID, scheduledTime, date)

	e, err := scanDoseEvent(row.Scan)
	if err == sql.ErrNoRows {
		return doses.DoseEvent{}, doses.ErrNotFound
	}
	return e, err
}

func (r *DosesRepo) ListByUserAndDate(ctx context.Context, userID, date string) ([]doses.DoseEvent, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, medicine_id, scheduled_time, actual_time, status, date, alert_sent
		FROM dose_events
		WHERE user_id = $1 AND date = $2
	`, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]doses.DoseEvent, 0)
	for rows.Next() {
		e, err := scanDoseEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *DosesRepo) CountByUser(ctx context.Context, userID string) (int, int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'taken')
		FROM dose_events
		WHERE user_id = $1
	`, userID)

	var total, taken int
	if err := row.Scan(&total, &taken); err != nil {
		return 0, 0, err
	}
	return total, taken, nil
}

func scanDoseEvent(scan func(dest ...any) error) (doses.DoseEvent, error) {
	var (
		e      doses.DoseEvent
		status string
	)
	if err := scan(
		&e.ID,
		&e.UserID,
		&e.MedicineID,
		&e.ScheduledTime,
		&e.ActualTime,
		&status,
		&e.Date,
		&e.AlertSent,
	); err != nil {
		return doses.DoseEvent{}, err
	}
	e.Status = doses.Status(status)
	return e, nil
}
