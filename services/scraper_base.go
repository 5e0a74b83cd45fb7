package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"

	"jobpilot/models"
)

// selectorSet holds the per-platform CSS heuristics. Each list is tried in
// order; the first visible element with text wins.
type selectorSet struct {
	Ready       string // readiness wait; empty means network-idle
	Title       []string
	Company     []string
	Description []string
	Location    []string
	Salary      []string
	Apply       []string // controls that open the application form
}

// BaseScraper implements the shared scraper lifecycle. Platform scrapers
// embed it with their own selector set and override the steps that differ.
type BaseScraper struct {
	platform string
	deps     ScraperDeps
	sel      selectorSet
}

func newBaseScraper(platform string, deps ScraperDeps, sel selectorSet) *BaseScraper {
	return &BaseScraper{platform: platform, deps: deps, sel: sel}
}

func (b *BaseScraper) Platform() string { return b.platform }

// navigate loads the job page. A failure here is terminal for this job only.
func (b *BaseScraper) navigate(page playwright.Page, url string) error {
	_, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(b.deps.Config.NavigationTimeoutMs),
	})
	if err != nil {
		return &NavigationError{Platform: b.platform, URL: url, Err: err}
	}
	return nil
}

// waitForContent waits for the platform's readiness signal. A timeout here
// is tolerated, not fatal: extraction proceeds best-effort.
func (b *BaseScraper) waitForContent(page playwright.Page) {
	if b.sel.Ready != "" {
		_, err := page.WaitForSelector(b.sel.Ready, playwright.PageWaitForSelectorOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: playwright.Float(b.deps.Config.ContentTimeoutMs),
		})
		if err != nil {
			log.Printf("Readiness selector %q did not appear on %s, extracting anyway", b.sel.Ready, b.platform)
		}
		return
	}
	page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(b.deps.Config.ContentTimeoutMs),
	})
}

// ExtractJobData runs the shared extraction pipeline: structural selectors,
// then AI extraction, then pure heuristics. It never fails on thin pages;
// the worst case is sparse JobData with the sentinel title.
func (b *BaseScraper) ExtractJobData(url string) (*models.JobData, error) {
	ctx, page, err := b.deps.Browser.NewSession()
	if err != nil {
		return nil, err
	}
	defer ctx.Close()

	if err := b.navigate(page, url); err != nil {
		return nil, err
	}
	b.waitForContent(page)

	job := &models.JobData{
		URL:      url,
		Platform: b.platform,
		Title:    models.UnknownTitle,
	}

	b.extractWithSelectors(page, job)

	if !job.TitleResolved() || job.Description == "" {
		text := b.pageText(page)
		if !b.aiExtract(text, job) {
			b.heuristicExtract(text, job)
		}
	}

	if len(job.Requirements) == 0 && len(job.Qualifications) == 0 {
		job.Requirements, job.Qualifications = PartitionDescription(job.Description)
	}

	// Inventory the application form while the session is open. Opening the
	// form is best-effort; some platforms keep it on the posting page.
	b.openApplyForm(page)
	job.FormFields, job.CustomQuestions = SplitCustomQuestions(ScanFormFields(page))

	return job, nil
}

func (b *BaseScraper) extractWithSelectors(page playwright.Page, job *models.JobData) {
	if title := b.firstText(page, b.sel.Title); title != "" {
		job.Title = title
	}
	if company := b.firstText(page, b.sel.Company); company != "" {
		job.Company = company
	}
	if description := b.firstText(page, b.sel.Description); description != "" {
		job.Description = description
	}
	if location := b.firstText(page, b.sel.Location); location != "" {
		job.Location = location
	}
	if salary := b.firstText(page, b.sel.Salary); salary != "" {
		job.Salary = salary
	}
}

// firstText returns the text of the first selector that matches a non-empty
// element.
func (b *BaseScraper) firstText(page playwright.Page, selectors []string) string {
	for _, selector := range selectors {
		element := page.Locator(selector).First()
		count, err := element.Count()
		if err != nil || count == 0 {
			continue
		}
		text, err := element.InnerText()
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return ""
}

func (b *BaseScraper) pageText(page playwright.Page) string {
	text, err := page.Locator("body").InnerText()
	if err != nil {
		return ""
	}
	return text
}

// aiExtractionSchema is the fixed response shape the AI fallback must fill.
type aiExtractionSchema struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Description    string   `json:"description"`
	Requirements   []string `json:"requirements"`
	Qualifications []string `json:"qualifications"`
	Location       string   `json:"location"`
}

// aiExtract hands the raw page text to the AI provider with a fixed
// extraction schema. Returns false (caller falls back to heuristics) when
// the provider is unavailable or its response does not parse.
func (b *BaseScraper) aiExtract(pageText string, job *models.JobData) bool {
	if b.deps.AI == nil || !b.deps.AI.IsAvailable() || pageText == "" {
		return false
	}

	const maxChars = 8000
	if len(pageText) > maxChars {
		pageText = pageText[:maxChars]
	}

	prompt := fmt.Sprintf(`Extract the job posting below into JSON with exactly these keys:
{"title": "", "company": "", "description": "", "requirements": [], "qualifications": [], "location": ""}
Respond with only the JSON object.

Page text:
%s`, pageText)

	response, err := b.deps.AI.GenerateText(prompt, "")
	if err != nil {
		log.Printf("AI extraction failed on %s: %v", b.platform, err)
		return false
	}

	var extracted aiExtractionSchema
	if err := json.Unmarshal([]byte(StripCodeFences(response)), &extracted); err != nil {
		log.Printf("AI extraction response did not parse on %s: %v", b.platform, err)
		return false
	}
	if extracted.Title == "" {
		return false
	}

	job.Title = extracted.Title
	if extracted.Company != "" {
		job.Company = extracted.Company
	}
	if extracted.Description != "" {
		job.Description = extracted.Description
	}
	if len(extracted.Requirements) > 0 {
		job.Requirements = extracted.Requirements
	}
	if len(extracted.Qualifications) > 0 {
		job.Qualifications = extracted.Qualifications
	}
	if extracted.Location != "" {
		job.Location = extracted.Location
	}
	return true
}

// heuristicExtract is the last-resort extraction: first plausible line as
// the title, full text as the description, bullets partitioned by headers.
func (b *BaseScraper) heuristicExtract(pageText string, job *models.JobData) {
	if job.Description == "" {
		job.Description = strings.TrimSpace(pageText)
	}
	if !job.TitleResolved() {
		for _, line := range strings.Split(pageText, "\n") {
			line = strings.TrimSpace(line)
			if len(line) >= 8 && len(line) <= 100 {
				job.Title = line
				break
			}
		}
	}
	job.Requirements, job.Qualifications = PartitionDescription(job.Description)
}

// openApplyForm clicks the first visible apply control, if any, and waits
// for the form to settle. Best-effort: some platforms render the form on
// the posting page itself.
func (b *BaseScraper) openApplyForm(page playwright.Page) bool {
	for _, selector := range b.sel.Apply {
		button := page.Locator(selector).First()
		if visible, _ := button.IsVisible(); !visible {
			continue
		}
		b.deps.Browser.HumanDelay(page)
		if err := button.Click(); err != nil {
			continue
		}
		page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
			State:   playwright.LoadStateNetworkidle,
			Timeout: playwright.Float(b.deps.Config.ContentTimeoutMs),
		})
		return true
	}
	return false
}

// SubmitApplication drives the shared submission flow: open the form, fill
// known fields, answer custom questions, upload documents, submit, run one
// validation-repair pass, and detect confirmation. Errors collect into the
// result; a failed submission never crashes the batch.
func (b *BaseScraper) SubmitApplication(url string, opts SubmitOptions) (*models.SubmissionResult, error) {
	result := &models.SubmissionResult{}

	if opts.DryRun {
		result.Success = true
		result.Message = "dry run, submission skipped"
		return result, nil
	}

	ctx, page, err := b.deps.Browser.NewSession()
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Message = "could not open browser session"
		return result, nil
	}
	defer ctx.Close()
	defer b.deps.Browser.SaveStorageState(ctx)

	if err := b.navigate(page, url); err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Message = "could not load application page"
		return result, nil
	}
	b.waitForContent(page)
	b.openApplyForm(page)

	delay := func() { b.deps.Browser.HumanDelay(page) }

	fields := opts.Job.FormFields
	if len(fields) == 0 {
		fields, _ = SplitCustomQuestions(ScanFormFields(page))
	}

	report := b.deps.Filler.FillFormFields(page, fields, opts.Profile, delay)
	b.fillCustomAnswers(page, opts.Job, delay)

	if opts.ResumePath != "" && !b.deps.Checker.UploadResume(page, opts.ResumePath) {
		result.Errors = append(result.Errors, "resume upload failed")
	}
	if opts.CoverLetterPath != "" {
		b.deps.Checker.UploadCoverLetter(page, opts.CoverLetterPath)
	}

	if screenshot, err := b.deps.Browser.SaveScreenshot(page, b.platform+"_filled_form"); err == nil {
		result.ScreenshotPath = screenshot
	}

	delay()
	if !b.deps.Checker.FindAndClickSubmitButton(page) {
		result.Errors = append(result.Errors, "no submit button found")
		result.Message = "could not find a submit control"
		return result, nil
	}
	b.waitForContent(page)

	if b.deps.Checker.CheckForSuccess(page) {
		b.finishSuccess(page, result, "application submitted")
		return result, nil
	}

	// Validation-repair pass: fill fields the site flagged after the first
	// attempt, then submit once more.
	if repaired := b.deps.Filler.RepairPass(page, opts.Profile, delay); repaired > 0 {
		log.Printf("Repaired %d empty required fields on %s, resubmitting", repaired, b.platform)
		b.deps.Checker.FindAndClickSubmitButton(page)
		b.waitForContent(page)
	}

	switch {
	case b.deps.Checker.CheckForSuccess(page):
		b.finishSuccess(page, result, "application submitted")
	case !b.deps.Checker.HasVisibleErrors(page):
		b.finishSuccess(page, result, "submitted, no errors detected")
	default:
		result.Errors = append(result.Errors, "page still shows validation errors after repair pass")
		if len(report.Skipped) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("unresolved fields: %s", strings.Join(report.Skipped, ", ")))
		}
		result.Message = "submission not confirmed"
		if screenshot, err := b.deps.Browser.SaveScreenshot(page, b.platform+"_failed"); err == nil {
			result.ScreenshotPath = screenshot
		}
	}

	return result, nil
}

func (b *BaseScraper) finishSuccess(page playwright.Page, result *models.SubmissionResult, message string) {
	result.Success = true
	result.Message = message
	if screenshot, err := b.deps.Browser.SaveScreenshot(page, b.platform+"_confirmation"); err == nil {
		result.ScreenshotPath = screenshot
	}
}

// fillCustomAnswers writes the resolved custom-question answers into their
// form controls.
func (b *BaseScraper) fillCustomAnswers(page playwright.Page, job *models.JobData, delay func()) {
	for _, q := range job.CustomQuestions {
		if q.Answer == "" {
			continue
		}
		field := models.FormField{
			Name:    q.ID,
			Type:    q.Type,
			Label:   q.Question,
			Options: q.Options,
		}
		if b.deps.Filler.fillControl(page, field, q.Answer) {
			log.Printf("✓ Answered %q", q.Question)
		}
		delay()
	}
}
