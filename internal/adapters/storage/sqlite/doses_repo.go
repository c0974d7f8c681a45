package sqlite

import (
	"context"
	"database/sql"

	"mediassist/internal/domain/doses"
)

type DosesRepo struct {
	db *sql.DB
}

func NewDosesRepo(db *sql.DB) *DosesRepo {
	return &DosesRepo{db: db}
}

func (r *DosesRepo) Create(ctx context.Context, e doses.DoseEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dose_events (
			id, user_id, medicine_id, scheduled_time, actual_time,
			status, date, alert_sent
		) VALUES (?,?,?,?,?,?,?,?)
	`,
		e.ID,
		e.UserID,
		e.MedicineID,
		e.ScheduledTime,
		e.ActualTime,
		string(e.Status),
		e.Date,
		boolToInt(e.AlertSent),
	)
	return err
}

func (r *DosesRepo) Update(ctx context.Context, e doses.DoseEvent) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dose_events
		SET actual_time = ?, status = ?, alert_sent = ?
		WHERE id = ?
	`,
		e.ActualTime,
		string(e.Status),
		boolToInt(e.AlertSent),
		e.ID,
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
		WHERE user_id = ? AND medicine_id = ? AND scheduled_time = ? AND date = ?
	`, userID, medicineID, scheduledTime, date)

	e, err := scanDoseEvent(row.Scan)
	if err == sql.ErrNoRows {
		return doses.DoseEvent{}, doses.ErrNotFound
	}
	return e, err
}

func (r *DosesRepo) ListByUserAndDate(ctx context.Context, userID, date string) ([]doses.DoseEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, medicine_id, scheduled_time, actual_time, status, date, alert_sent
		FROM dose_events
		WHERE user_id = ? AND date = ?
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
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = 'taken' THEN 1 ELSE 0 END), 0)
		FROM dose_events
		WHERE user_id = ?
	`, userID)

	var total, taken int
	if err := row.Scan(&total, &taken); err != nil {
		return 0, 0, err
	}
	return total, taken, nil
}

func scanDoseEvent(scan func(dest ...any) error) (doses.DoseEvent, error) {
	var (
		e         doses.DoseEvent
		status    string
		alertSent int
	)
	if err := scan(
		&e.ID,
		&e.UserID,
		&e.MedicineID,
		&e.ScheduledTime,
		&e.ActualTime,
		&status,
		&e.Date,
		&alertSent,
	); err != nil {
		return doses.DoseEvent{}, err
	}

	e.Status = doses.Status(status)
	e.AlertSent = alertSent != 0
	return e, nil
}
