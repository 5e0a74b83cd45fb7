package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Application is the persisted record of one application attempt.
type Application struct {
	ID                   int               `json:"id"`
	ProfileID            int               `json:"profile_id"`
	URL                  string            `json:"url"`
	Platform             string            `json:"platform"`
	Company              string            `json:"company"`
	JobTitle             string            `json:"job_title"`
	Status               string            `json:"status"` // pending, submitted, failed, skipped
	GeneratedResume      string            `json:"generated_resume,omitempty"`
	GeneratedCoverLetter string            `json:"generated_cover_letter,omitempty"`
	FormData             map[string]string `json:"form_data,omitempty"`
	CustomQuestions      []CustomQuestion  `json:"custom_questions,omitempty"`
	ErrorMessage         string            `json:"error_message,omitempty"`
	AppliedAt            *time.Time        `json:"applied_at,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
}

type ApplicationModel struct {
	DB *sql.DB
}

func NewApplicationModel(db *sql.DB) *ApplicationModel {
	return &ApplicationModel{DB: db}
}

// Save inserts the application record and fills in its generated id.
func (m *ApplicationModel) Save(app *Application) error {
	formData, err := json.Marshal(app.FormData)
	if err != nil {
		return err
	}
	questions, err := json.Marshal(app.CustomQuestions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO applications (profile_id, url, platform, company, job_title, status,
			generated_resume, generated_cover_letter, form_data, custom_questions, error_message, applied_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`
	now := time.Now()
	return m.DB.QueryRow(query,
		app.ProfileID, app.URL, app.Platform, app.Company, app.JobTitle, app.Status,
		nullable(app.GeneratedResume), nullable(app.GeneratedCoverLetter),
		string(formData), string(questions), nullable(app.ErrorMessage), app.AppliedAt, now,
	).Scan(&app.ID, &app.CreatedAt)
}

// UpdateStatus moves a stored application to a new status, recording the
// error message and submission time where relevant.
func (m *ApplicationModel) UpdateStatus(id int, status, errorMessage string) error {
	var appliedAt interface{}
	if status == "submitted" {
		appliedAt = time.Now()
	}
	_, err := m.DB.Exec(
		`UPDATE applications SET status = $1, error_message = $2, applied_at = COALESCE($3, applied_at) WHERE id = $4`,
		status, nullable(errorMessage), appliedAt, id,
	)
	return err
}

// RecentAnsweredQuestions returns answered custom questions from previously
// submitted applications, newest first. Used as few-shot examples when
// answering new questions.
func (m *ApplicationModel) RecentAnsweredQuestions(profileID, limit int) ([]CustomQuestion, error) {
	rows, err := m.DB.Query(
		`SELECT custom_questions FROM applications
		 WHERE profile_id = $1 AND status = 'submitted' AND custom_questions IS NOT NULL
		 ORDER BY created_at DESC LIMIT $2`,
		profileID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answered []CustomQuestion
	for rows.Next() {
		var raw sql.NullString
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		if !raw.Valid {
			continue
		}
		var questions []CustomQuestion
		if err := json.Unmarshal([]byte(raw.String), &questions); err != nil {
			continue
		}
		for _, q := range questions {
			if q.Answer != "" {
				answered = append(answered, q)
			}
		}
	}
	return answered, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
