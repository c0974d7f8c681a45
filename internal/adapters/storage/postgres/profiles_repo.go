package postgres

import (
	"context"
	"database/sql"

	"mediassist/internal/domain/profiles"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

func (r *ProfilesRepo) Get(ctx context.Context, userID string) (profiles.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, email, language
		FROM profiles
		WHERE user_id = $1
	`, userID)

	var p profiles.Profile
	if err := row.Scan(&p.UserID, &p.Name, &p.Email, &p.Language); err != nil {
		if err == sql.ErrNoRows {
			return profiles.Profile{}, profiles.ErrNotFound
		}
		return profiles.Profile{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, email, relationship
		FROM caregivers
		WHERE user_id = $1
		ORDER BY position ASC
	`, userID)
	if err != nil {
		return profiles.Profile{}, err
	}
	defer rows.Close()

	p.Caregivers = make([]profiles.Caregiver, 0)
	for rows.Next() {
		var c profiles.Caregiver
		var rel string
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &rel); err != nil {
			return profiles.Profile{}, err
		}
		c.Relationship = profiles.Relationship(rel)
		p.Caregivers = append(p.Caregivers, c)
	}
	return p, rows.Err()
}

// Save upserta perfil + reemplaza caregivers en una transacción.
func (r *ProfilesRepo) Save(ctx context.Context, p profiles.Profile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (user_id, name, email, language)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			language = EXCLUDED.language
	`, p.UserID, p.Name, p.Email, p.Language)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM caregivers WHERE user_id = $1`, p.UserID); err != nil {
		return err
	}

	for i, c := range p.Caregivers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO caregivers (id, user_id, name, phone, email, relationship, position)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, c.ID, p.UserID, c.Name, c.Phone, c.Email, string(c.Relationship), i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
