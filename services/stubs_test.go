package services

import (
	"errors"

	"jobpilot/models"
)

// fakeAI is a scripted AIProvider for tests. Responses are returned in
// order; after they run out the last one repeats.
type fakeAI struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (f *fakeAI) GenerateText(prompt, systemPrompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	idx := f.calls - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx], nil
}

func (f *fakeAI) IsAvailable() bool { return true }

// fakePrompter answers every question with a fixed value.
type fakePrompter struct {
	answer string
	asked  []string
}

func (f *fakePrompter) Ask(question string, options []string) (string, error) {
	f.asked = append(f.asked, question)
	return f.answer, nil
}

// stubScraper is a canned Scraper for orchestrator tests.
type stubScraper struct {
	platform    string
	job         *models.JobData
	extractErr  error
	submitted   int
	submitRes   *models.SubmissionResult
	submitErr   error
	lastOptions SubmitOptions
}

func (s *stubScraper) Platform() string { return s.platform }

func (s *stubScraper) ExtractJobData(url string) (*models.JobData, error) {
	if s.extractErr != nil {
		return nil, s.extractErr
	}
	return s.job, nil
}

func (s *stubScraper) SubmitApplication(url string, opts SubmitOptions) (*models.SubmissionResult, error) {
	s.submitted++
	s.lastOptions = opts
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	if s.submitRes != nil {
		return s.submitRes, nil
	}
	return &models.SubmissionResult{Success: true, Message: "application submitted"}, nil
}

// stubStore records persistence calls in memory.
type stubStore struct {
	saved   []*models.Application
	updates []string
	saveErr error
}

func (s *stubStore) Save(app *models.Application) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	app.ID = len(s.saved) + 1
	s.saved = append(s.saved, app)
	return nil
}

func (s *stubStore) UpdateStatus(id int, status, errorMessage string) error {
	s.updates = append(s.updates, status)
	return nil
}
