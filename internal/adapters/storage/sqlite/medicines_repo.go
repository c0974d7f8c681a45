package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"mediassist/internal/domain/medicines"
)

type MedicinesRepo struct {
	db *sql.DB
}

func NewMedicinesRepo(db *sql.DB) *MedicinesRepo {
	return &MedicinesRepo{db: db}
}

func (r *MedicinesRepo) Create(ctx context.Context, m medicines.Medicine) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medicines (
			id, user_id, name, dosage, times, food_instruction,
			duration_days, days_left, critical, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?)
	`,
		m.ID,
		m.UserID,
		m.Name,
		m.Dosage,
		joinTimes(m.Times),
		string(m.FoodInstruction),
		m.DurationDays,
		m.DaysLeft,
		boolToInt(m.Critical),
		m.CreatedAt,
	)
	return err
}

func (r *MedicinesRepo) Update(ctx context.Context, m medicines.Medicine) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medicines
		SET name = ?, dosage = ?, times = ?, food_instruction = ?,
		    duration_days = ?, days_left = ?, critical = ?
		WHERE id = ?
	`,
		m.Name,
		m.Dosage,
		joinTimes(m.Times),
		string(m.FoodInstruction),
		m.DurationDays,
		m.DaysLeft,
		boolToInt(m.Critical),
		m.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medicines.ErrNotFound
	}
	return nil
}

func (r *MedicinesRepo) GetByID(ctx context.Context, id string) (medicines.Medicine, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, dosage, times, food_instruction,
		       duration_days, days_left, critical, created_at
		FROM medicines
		WHERE id = ?
	`, id)

	m, err := scanMedicine(row.Scan)
	if err == sql.ErrNoRows {
		return medicines.Medicine{}, medicines.ErrNotFound
	}
	return m, err
}

func (r *MedicinesRepo) ListByUser(ctx context.Context, userID string) ([]medicines.Medicine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, dosage, times, food_instruction,
		       duration_days, days_left, critical, created_at
		FROM medicines
		WHERE user_id = ?
		ORDER BY rowid ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicines.Medicine, 0)
	for rows.Next() {
		m, err := scanMedicine(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMedicine(scan func(dest ...any) error) (medicines.Medicine, error) {
	var (
		m        medicines.Medicine
		times    string
		food     string
		critical int
	)
	if err := scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Dosage,
		&times,
		&food,
		&m.DurationDays,
		&m.DaysLeft,
		&critical,
		&m.CreatedAt,
	); err != nil {
		return medicines.Medicine{}, err
	}

	m.Times = splitTimes(times)
	m.FoodInstruction = medicines.FoodInstruction(food)
	m.Critical = critical != 0
	return m, nil
}

// Los horarios HH:MM van como texto separado por coma; nunca contienen comas
// así que el roundtrip es seguro.
func joinTimes(times []string) string {
	return strings.Join(times, ",")
}

func splitTimes(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
