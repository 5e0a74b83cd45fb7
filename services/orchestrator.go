package services

import (
	"errors"
	"fmt"
	"time"

	"jobpilot/config"
	"jobpilot/models"
	"jobpilot/utils"
)

// ApplicationStore persists application records. Satisfied by
// models.ApplicationModel; nil means run without persistence.
type ApplicationStore interface {
	Save(app *models.Application) error
	UpdateStatus(id int, status, errorMessage string) error
}

// ApplyResult is the outcome of one job application attempt.
type ApplyResult struct {
	URL         string                   `json:"url"`
	Platform    string                   `json:"platform"`
	Company     string                   `json:"company,omitempty"`
	JobTitle    string                   `json:"job_title,omitempty"`
	Status      string                   `json:"status"` // submitted, pending, skipped, failed
	FitScore    int                      `json:"fit_score,omitempty"`
	Error       string                   `json:"error,omitempty"`
	Submission  *models.SubmissionResult `json:"submission,omitempty"`
	Application *models.Application      `json:"application,omitempty"`
}

// BatchResult summarizes a queue-draining run.
type BatchResult struct {
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Results   []ApplyResult `json:"results"`
}

// Orchestrator ties the pipeline together: detect, extract, score, generate
// documents, answer questions, persist, submit. Jobs run strictly one at a
// time; target sites treat parallel sessions from one identity as abuse.
type Orchestrator struct {
	cfg      config.AutomationConfig
	queue    *ApplicationQueue
	registry *ScraperRegistry
	deps     ScraperDeps
	ai       AIProvider
	fit      *FitScorer
	docs     *DocumentService
	store    ApplicationStore
	logger   *utils.Logger
	sleep    func(time.Duration) // injectable for tests
}

func NewOrchestrator(cfg config.AutomationConfig, queue *ApplicationQueue, registry *ScraperRegistry, deps ScraperDeps, ai AIProvider, store ApplicationStore, logger *utils.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		queue:    queue,
		registry: registry,
		deps:     deps,
		ai:       ai,
		fit:      NewFitScorer(ai),
		docs:     NewDocumentService(ai),
		store:    store,
		logger:   logger,
		sleep:    time.Sleep,
	}
}

// ApplyToJob runs the full pipeline for a single job URL. Errors are
// reported in the result; only a malformed URL returns a Go error.
func (o *Orchestrator) ApplyToJob(rawURL string, profile *models.Profile) (*ApplyResult, error) {
	if err := ValidateJobURL(rawURL); err != nil {
		return nil, err
	}
	jobURL := NormalizeURL(rawURL)

	scraper := o.registry.ScraperFor(jobURL, o.deps)
	result := &ApplyResult{URL: jobURL, Platform: scraper.Platform(), Status: "failed"}
	o.logger.JobEvent(utils.INFO, jobURL, result.Platform, "starting application", nil)

	job, err := scraper.ExtractJobData(jobURL)
	if err != nil {
		result.Error = err.Error()
		o.logger.JobEvent(utils.ERROR, jobURL, result.Platform, "extraction failed", err)
		return result, nil
	}
	result.Company = job.Company
	result.JobTitle = job.Title

	// Never submit a live application for a posting whose title could not
	// be established. Dry runs may proceed for inspection.
	if !job.TitleResolved() && !o.cfg.DryRun {
		err := &ValidationGateError{URL: jobURL}
		result.Error = err.Error()
		o.logger.JobEvent(utils.WARN, jobURL, result.Platform, "skipping: job title unresolved", nil)
		return result, nil
	}

	if o.cfg.MinFitScore > 0 {
		score, err := o.fit.Score(job, profile)
		if err != nil {
			o.logger.JobEvent(utils.WARN, jobURL, result.Platform, "fit scoring unavailable, proceeding", err)
		} else {
			result.FitScore = score
			if score < o.cfg.MinFitScore {
				result.Status = "skipped"
				result.Error = fmt.Sprintf("fit score %d below threshold %d", score, o.cfg.MinFitScore)
				o.logger.JobEvent(utils.INFO, jobURL, result.Platform, result.Error, nil)
				return result, nil
			}
		}
	}

	app := &models.Application{
		ProfileID: profile.ID,
		URL:       jobURL,
		Platform:  result.Platform,
		Company:   job.Company,
		JobTitle:  job.Title,
		Status:    "pending",
	}

	resume, err := o.docs.GenerateResume(job, profile)
	if err != nil {
		if errors.Is(err, ErrAIUnavailable) && o.cfg.DryRun {
			o.logger.JobEvent(utils.WARN, jobURL, result.Platform, "no AI provider, dry run continues without documents", nil)
		} else {
			result.Error = fmt.Sprintf("resume generation failed: %v", err)
			o.logger.JobEvent(utils.ERROR, jobURL, result.Platform, "resume generation failed", err)
			return result, nil
		}
	}
	app.GeneratedResume = resume

	coverLetter, err := o.docs.GenerateCoverLetter(job, profile)
	if err != nil {
		o.logger.JobEvent(utils.WARN, jobURL, result.Platform, "cover letter generation failed, continuing", err)
	}
	app.GeneratedCoverLetter = coverLetter

	if answered, err := NewQuestionAnswerer(o.ai, o.recentAnswers(profile)).AnswerAll(job, profile); err != nil {
		o.logger.JobEvent(utils.WARN, jobURL, result.Platform, "custom questions left unanswered", err)
	} else if answered > 0 {
		o.logger.JobEvent(utils.INFO, jobURL, result.Platform, fmt.Sprintf("answered %d custom questions", answered), nil)
	}
	app.CustomQuestions = job.CustomQuestions

	if o.store != nil {
		if err := o.store.Save(app); err != nil {
			o.logger.JobEvent(utils.WARN, jobURL, result.Platform, "could not persist application record", err)
		}
	}
	result.Application = app
	result.Status = "pending"

	if !o.cfg.AutoSubmit && !o.cfg.DryRun {
		o.logger.JobEvent(utils.INFO, jobURL, result.Platform, "auto-submit disabled, application prepared only", nil)
		return result, nil
	}

	submission, err := scraper.SubmitApplication(jobURL, SubmitOptions{
		Profile:         profile,
		Job:             job,
		ResumePath:      o.cfg.ResumePath,
		CoverLetterPath: o.cfg.CoverLetterPath,
		DryRun:          o.cfg.DryRun,
	})
	if err != nil {
		result.Status = "failed"
		result.Error = err.Error()
		o.updateStored(app, "failed", result.Error)
		o.logger.JobEvent(utils.ERROR, jobURL, result.Platform, "submission attempt errored", err)
		return result, nil
	}
	result.Submission = submission

	if submission.Success {
		result.Status = "submitted"
		if o.cfg.DryRun {
			result.Status = "pending"
		} else {
			o.updateStored(app, "submitted", "")
		}
		o.logger.JobEvent(utils.INFO, jobURL, result.Platform, submission.Message, nil)
	} else {
		result.Status = "failed"
		result.Error = submission.Message
		o.updateStored(app, "failed", submission.Message)
		o.logger.JobEvent(utils.ERROR, jobURL, result.Platform, "submission failed", &SubmissionError{
			Platform: result.Platform, URL: jobURL, Errors: submission.Errors,
		})
	}
	return result, nil
}

// ApplyToMultipleJobs enqueues the URLs and drains the queue.
func (o *Orchestrator) ApplyToMultipleJobs(urls []string, profile *models.Profile) *BatchResult {
	for _, u := range urls {
		if err := ValidateJobURL(u); err != nil {
			o.logger.Warn("Skipping invalid URL", map[string]string{"url": u, "error": err.Error()})
			continue
		}
		o.queue.Add(NormalizeURL(u))
	}
	return o.ProcessQueue(profile)
}

// ProcessQueue drains pending items strictly sequentially with a delay
// between jobs. A failing item marks itself failed and never aborts the
// batch.
func (o *Orchestrator) ProcessQueue(profile *models.Profile) *BatchResult {
	batch := &BatchResult{}
	o.queue.SetProcessing(true)
	defer o.queue.SetProcessing(false)

	first := true
	for {
		item := o.queue.GetNext()
		if item == nil {
			break
		}
		if !first {
			o.sleep(time.Duration(o.cfg.JobDelaySeconds) * time.Second)
		}
		first = false

		o.queue.UpdateStatus(item.ID, models.QueueProcessing, "")
		result, err := o.ApplyToJob(item.URL, profile)
		batch.Total++

		if err != nil {
			o.queue.UpdateStatus(item.ID, models.QueueFailed, err.Error())
			batch.Failed++
			batch.Results = append(batch.Results, ApplyResult{URL: item.URL, Status: "failed", Error: err.Error()})
			continue
		}

		batch.Results = append(batch.Results, *result)
		if result.Submission != nil {
			o.queue.SetResult(item.ID, result.Submission)
		}
		switch result.Status {
		case "failed":
			o.queue.UpdateStatus(item.ID, models.QueueFailed, result.Error)
			batch.Failed++
		default:
			o.queue.UpdateStatus(item.ID, models.QueueCompleted, "")
			batch.Succeeded++
		}
	}
	return batch
}

// Queue exposes the orchestrator's queue for the HTTP surface.
func (o *Orchestrator) Queue() *ApplicationQueue { return o.queue }

// recentAnswers pulls few-shot examples from previously submitted
// applications when a store is configured.
func (o *Orchestrator) recentAnswers(profile *models.Profile) []models.CustomQuestion {
	model, ok := o.store.(*models.ApplicationModel)
	if !ok || model == nil {
		return nil
	}
	answered, err := model.RecentAnsweredQuestions(profile.ID, 10)
	if err != nil {
		return nil
	}
	return answered
}

func (o *Orchestrator) updateStored(app *models.Application, status, errorMessage string) {
	if o.store == nil || app.ID == 0 {
		return
	}
	if err := o.store.UpdateStatus(app.ID, status, errorMessage); err != nil {
		o.logger.Warn("Could not update stored application", map[string]string{"error": err.Error()})
	}
}
