package postgres

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
			id, user_id,
			name, dosage, times, food_instruction,
			duration_days, days_left, critical,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		m.ID,
		m.UserID,
		m.Name,
		m.Dosage,
		strings.Join(m.Times, ","),
		string(m.FoodInstruction),
		m.DurationDays,
		m.DaysLeft,
		m.Critical,
		m.CreatedAt,
	)
	return err
}

func (r *MedicinesRepo) Update(ctx context.Context, m medicines.Medicine) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medicines
		SET
			name = $2,
			dosage = $3,
			times = $4,
			food_instruction = $5,
			duration_days = $6,
			days_left = $7,
			critical = $8
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.Dosage,
		strings.Join(m.Times, ","),
		string(m.FoodInstruction),
		m.DurationDays,
		m.DaysLeft,
		m.Critical,
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
	id = strings.TrimSpace(id)
	if id == "" {
		return medicines.Medicine{}, medicines.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, user_id,
			name, dosage, times, food_instruction,
			duration_days, days_left, critical,
			created_at
		FROM medicines
		WHERE id = $1
	`, id)

	m, err := scanMedicine(row.Scan)
	if err == sql.ErrNoRows {
		return medicines.Medicine{}, medicines.ErrNotFound
	}
	return m, err
}

func (r *MedicinesRepo) ListByUser(ctx context.Context, userID string) ([]medicines.Medicine, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id,
			name, dosage, times, food_instruction,
			duration_days, days_left, critical,
			created_at
		FROM medicines
		WHERE user_id = $1
		ORDER BY created_at ASC, ctid ASC
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
		m     medicines.Medicine
		times string
		food  string
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
		&m.Critical,
		&m.CreatedAt,
	); err != nil {
		return medicines.Medicine{}, err
	}

	if times != "" {
		m.Times = strings.Split(times, ",")
	} else {
		m.Times = []string{}
	}
	m.FoodInstruction = medicines.FoodInstruction(food)
	return m, nil
}
