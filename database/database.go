package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"jobpilot/config"
)

// Connect opens a Postgres connection using the supplied configuration and
// verifies it with a ping.
func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	return db, nil
}

// Migrate creates the applications table if it does not exist.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS applications (
			id SERIAL PRIMARY KEY,
			profile_id INTEGER NOT NULL,
			url TEXT NOT NULL,
			platform TEXT NOT NULL,
			company TEXT,
			job_title TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			generated_resume TEXT,
			generated_cover_letter TEXT,
			form_data TEXT,
			custom_questions TEXT,
			error_message TEXT,
			applied_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}
