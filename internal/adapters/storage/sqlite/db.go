package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open abre (o crea) la base embebida y asegura el esquema.
// Pensado para despliegues locales single-user; reemplaza el rol que
// cumplía el storage del browser en la app original.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func initSchema(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS medicines (
        id TEXT PRIMARY KEY,
        user_id TEXT NOT NULL,
        name TEXT NOT NULL,
        dosage TEXT NOT NULL,
        times TEXT NOT NULL,
        food_instruction TEXT NOT NULL,
        duration_days INTEGER NOT NULL,
        days_left REAL NOT NULL,
        critical INTEGER NOT NULL,
        created_at TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS dose_events (
        id TEXT PRIMARY KEY,
        user_id TEXT NOT NULL,
        medicine_id TEXT NOT NULL,
        scheduled_time TEXT NOT NULL,
        actual_time TEXT NOT NULL,
        status TEXT NOT NULL,
        date TEXT NOT NULL,
        alert_sent INTEGER NOT NULL
    );

    CREATE TABLE IF NOT EXISTS profiles (
        user_id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        email TEXT NOT NULL,
        language TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS caregivers (
        id TEXT PRIMARY KEY,
        user_id TEXT NOT NULL,
        name TEXT NOT NULL,
        phone TEXT NOT NULL,
        email TEXT NOT NULL,
        relationship TEXT NOT NULL,
        position INTEGER NOT NULL,
        FOREIGN KEY (user_id) REFERENCES profiles(user_id) ON DELETE CASCADE
    );

    CREATE UNIQUE INDEX IF NOT EXISTS idx_dose_events_slot
        ON dose_events(user_id, medicine_id, scheduled_time, date);
    CREATE INDEX IF NOT EXISTS idx_dose_events_user_date ON dose_events(user_id, date);
    CREATE INDEX IF NOT EXISTS idx_medicines_user ON medicines(user_id);
    CREATE INDEX IF NOT EXISTS idx_caregivers_user ON caregivers(user_id);
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
