package services

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jobpilot/config"
	"jobpilot/models"
	"jobpilot/utils"
)

func testOrchestrator(t *testing.T, cfg config.AutomationConfig, scraper *stubScraper, ai AIProvider, store ApplicationStore) *Orchestrator {
	t.Helper()
	cfg.QueueFile = filepath.Join(t.TempDir(), "queue.json")

	registry := NewScraperRegistry()
	registry.Register(PlatformGreenhouse, func(deps ScraperDeps) Scraper { return scraper })

	queue := NewApplicationQueue(cfg.QueueFile)
	logger := utils.NewLoggerWithWriter(&bytes.Buffer{})

	o := NewOrchestrator(cfg, queue, registry, ScraperDeps{}, ai, store, logger)
	o.sleep = func(time.Duration) {}
	return o
}

func extractedJob() *models.JobData {
	return &models.JobData{
		URL:          "https://boards.greenhouse.io/acme/jobs/1",
		Platform:     PlatformGreenhouse,
		Title:        "Backend Engineer",
		Company:      "Acme",
		Requirements: []string{"Go"},
	}
}

func TestApplyToJobDryRun(t *testing.T) {
	scraper := &stubScraper{platform: PlatformGreenhouse, job: extractedJob()}
	store := &stubStore{}
	cfg := config.AutomationConfig{DryRun: true}
	o := testOrchestrator(t, cfg, scraper, nil, store)

	result, err := o.ApplyToJob("https://boards.greenhouse.io/acme/jobs/1?utm_source=x", testProfile())

	assert.NoError(t, err)
	assert.Equal(t, PlatformGreenhouse, result.Platform)
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/1", result.URL, "URL is normalized before processing")
	assert.Equal(t, "pending", result.Status, "dry runs never report submitted")
	assert.Equal(t, "Backend Engineer", result.JobTitle)

	assert.Len(t, store.saved, 1)
	assert.Equal(t, "pending", store.saved[0].Status)
	assert.True(t, scraper.lastOptions.DryRun)
}

func TestApplyToJobRejectsInvalidURL(t *testing.T) {
	o := testOrchestrator(t, config.AutomationConfig{DryRun: true}, &stubScraper{platform: PlatformGreenhouse}, nil, nil)

	_, err := o.ApplyToJob("ftp://nope", testProfile())
	assert.Error(t, err)
}

func TestApplyToJobBlocksSubmissionOnUnresolvedTitle(t *testing.T) {
	job := extractedJob()
	job.Title = models.UnknownTitle
	scraper := &stubScraper{platform: PlatformGreenhouse, job: job}
	cfg := config.AutomationConfig{AutoSubmit: true}
	o := testOrchestrator(t, cfg, scraper, &fakeAI{responses: []string{"resume"}}, nil)

	result, err := o.ApplyToJob("https://boards.greenhouse.io/acme/jobs/1", testProfile())

	assert.NoError(t, err)
	assert.Equal(t, "failed", result.Status)
	assert.Contains(t, result.Error, "title")
	assert.Zero(t, scraper.submitted, "nothing is submitted for an unidentified posting")
}

func TestApplyToJobSkipsBelowFitThreshold(t *testing.T) {
	scraper := &stubScraper{platform: PlatformGreenhouse, job: extractedJob()}
	ai := &fakeAI{responses: []string{"42"}}
	cfg := config.AutomationConfig{AutoSubmit: true, MinFitScore: 50}
	o := testOrchestrator(t, cfg, scraper, ai, nil)

	result, err := o.ApplyToJob("https://boards.greenhouse.io/acme/jobs/1", testProfile())

	assert.NoError(t, err)
	assert.Equal(t, "skipped", result.Status)
	assert.Equal(t, 42, result.FitScore)
	assert.Zero(t, scraper.submitted)
}

func TestApplyToJobSubmitsAndRecords(t *testing.T) {
	scraper := &stubScraper{platform: PlatformGreenhouse, job: extractedJob()}
	ai := &fakeAI{responses: []string{"Tailored resume", "Cover letter"}}
	store := &stubStore{}
	cfg := config.AutomationConfig{AutoSubmit: true}
	o := testOrchestrator(t, cfg, scraper, ai, store)

	result, err := o.ApplyToJob("https://boards.greenhouse.io/acme/jobs/1", testProfile())

	assert.NoError(t, err)
	assert.Equal(t, "submitted", result.Status)
	assert.Equal(t, 1, scraper.submitted)
	assert.False(t, scraper.lastOptions.DryRun)
	assert.Equal(t, "Tailored resume", store.saved[0].GeneratedResume)
	assert.Contains(t, store.updates, "submitted")
}

func TestApplyToJobSubmissionErrorMarksEverythingFailed(t *testing.T) {
	scraper := &stubScraper{
		platform:  PlatformGreenhouse,
		job:       extractedJob(),
		submitErr: errors.New("browser crashed mid-submit"),
	}
	ai := &fakeAI{responses: []string{"Resume", "Letter"}}
	store := &stubStore{}
	cfg := config.AutomationConfig{AutoSubmit: true}
	o := testOrchestrator(t, cfg, scraper, ai, store)

	result, err := o.ApplyToJob("https://boards.greenhouse.io/acme/jobs/1", testProfile())

	assert.NoError(t, err)
	assert.Equal(t, "failed", result.Status)
	assert.Contains(t, result.Error, "browser crashed mid-submit")
	assert.Contains(t, store.updates, "failed")

	// The queue view has to agree with the result and the store.
	batch := o.ApplyToMultipleJobs([]string{"https://boards.greenhouse.io/acme/jobs/2"}, testProfile())
	assert.Equal(t, 1, batch.Total)
	assert.Equal(t, 1, batch.Failed)
	assert.Zero(t, batch.Succeeded)
	for _, item := range o.Queue().Items() {
		assert.Equal(t, models.QueueFailed, item.Status)
	}
}

func TestApplyToJobWithoutAIFailsOutsideDryRun(t *testing.T) {
	scraper := &stubScraper{platform: PlatformGreenhouse, job: extractedJob()}
	cfg := config.AutomationConfig{AutoSubmit: true}
	o := testOrchestrator(t, cfg, scraper, nil, nil)

	result, err := o.ApplyToJob("https://boards.greenhouse.io/acme/jobs/1", testProfile())

	assert.NoError(t, err)
	assert.Equal(t, "failed", result.Status)
	assert.Contains(t, result.Error, "resume generation failed")
	assert.Zero(t, scraper.submitted)
}

func TestApplyToMultipleJobsDrainsSequentially(t *testing.T) {
	scraper := &stubScraper{platform: PlatformGreenhouse, job: extractedJob()}
	cfg := config.AutomationConfig{DryRun: true, JobDelaySeconds: 30}
	o := testOrchestrator(t, cfg, scraper, nil, nil)

	var sleeps []time.Duration
	o.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }

	batch := o.ApplyToMultipleJobs([]string{
		"https://boards.greenhouse.io/acme/jobs/1",
		"https://boards.greenhouse.io/acme/jobs/2",
		"not-a-url",
	}, testProfile())

	assert.Equal(t, 2, batch.Total, "the invalid URL never enters the queue")
	assert.Equal(t, 2, batch.Succeeded)
	assert.Zero(t, batch.Failed)
	assert.Len(t, sleeps, 1, "delay applies between jobs, not before the first")
	assert.Equal(t, 30*time.Second, sleeps[0])

	for _, item := range o.Queue().Items() {
		assert.Equal(t, models.QueueCompleted, item.Status)
	}
}

func TestProcessQueueContinuesPastFailures(t *testing.T) {
	job := extractedJob()
	scraper := &stubScraper{
		platform:  PlatformGreenhouse,
		job:       job,
		submitRes: &models.SubmissionResult{Success: false, Message: "submission not confirmed", Errors: []string{"validation"}},
	}
	ai := &fakeAI{responses: []string{"Resume", "Letter"}}
	cfg := config.AutomationConfig{AutoSubmit: true}
	o := testOrchestrator(t, cfg, scraper, ai, nil)

	batch := o.ApplyToMultipleJobs([]string{
		"https://boards.greenhouse.io/acme/jobs/1",
		"https://boards.greenhouse.io/acme/jobs/2",
	}, testProfile())

	assert.Equal(t, 2, batch.Total)
	assert.Equal(t, 2, batch.Failed, "each failure is recorded without aborting the batch")
	assert.Equal(t, 2, scraper.submitted, "the second job still ran after the first failed")

	for _, item := range o.Queue().Items() {
		assert.Equal(t, models.QueueFailed, item.Status)
		assert.NotNil(t, item.Result)
	}
}
