package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"

	"jobpilot/models"
)

// LinkedInScraper handles linkedin.com job postings. LinkedIn needs an
// authenticated session (restored from storage state) and uses its own
// multi-step Easy Apply modal instead of a single form page.
type LinkedInScraper struct {
	*BaseScraper
}

func NewLinkedInScraper(deps ScraperDeps) Scraper {
	return &LinkedInScraper{
		BaseScraper: newBaseScraper(PlatformLinkedIn, deps, selectorSet{
			Ready: "h1.top-card-layout__title, .job-details-jobs-unified-top-card__job-title",
			Title: []string{
				"h1.top-card-layout__title",
				".job-details-jobs-unified-top-card__job-title h1",
				"h1",
			},
			Company: []string{
				".topcard__org-name-link",
				".job-details-jobs-unified-top-card__company-name a",
				"a.topcard__flavor--black-link",
			},
			Description: []string{
				".description__text",
				".jobs-description-content__text",
				"#job-details",
			},
			Location: []string{
				".topcard__flavor--bullet",
				".job-details-jobs-unified-top-card__primary-description-container span",
			},
			Apply: []string{
				"button.jobs-apply-button",
				"button:has-text('Easy Apply')",
			},
		}),
	}
}

// loggedIn reports whether the page carries an authenticated LinkedIn
// session. Postings render without one, but applying does not.
func (s *LinkedInScraper) loggedIn(page playwright.Page) bool {
	if strings.Contains(page.URL(), "authwall") || strings.Contains(page.URL(), "/login") {
		return false
	}
	count, err := page.Locator("a[href*='/login'], a.nav__button-secondary").Count()
	return err == nil && count == 0
}

// SubmitApplication drives the Easy Apply modal: open it, then fill and
// advance step by step until the final submit control appears.
func (s *LinkedInScraper) SubmitApplication(url string, opts SubmitOptions) (*models.SubmissionResult, error) {
	result := &models.SubmissionResult{}

	if opts.DryRun {
		result.Success = true
		result.Message = "dry run, submission skipped"
		return result, nil
	}

	ctx, page, err := s.deps.Browser.NewSession()
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Message = "could not open browser session"
		return result, nil
	}
	defer ctx.Close()
	defer s.deps.Browser.SaveStorageState(ctx)

	if err := s.navigate(page, url); err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Message = "could not load application page"
		return result, nil
	}
	s.waitForContent(page)

	if !s.loggedIn(page) {
		result.Errors = append(result.Errors, "no authenticated LinkedIn session")
		result.Message = "log in to LinkedIn and persist storage state first"
		return result, nil
	}

	if !s.openApplyForm(page) {
		result.Errors = append(result.Errors, "Easy Apply button not found")
		result.Message = "posting has no Easy Apply option"
		return result, nil
	}

	delay := func() { s.deps.Browser.HumanDelay(page) }

	// The modal presents one page of fields at a time. Fill whatever is
	// visible, advance, and stop when the submit control shows up or the
	// modal stops making progress.
	const maxSteps = 10
	for step := 0; step < maxSteps; step++ {
		fields, _ := SplitCustomQuestions(ScanFormFields(page))
		report := s.deps.Filler.FillFormFields(page, fields, opts.Profile, delay)
		if len(report.Skipped) > 0 {
			log.Printf("LinkedIn step %d left %d fields unresolved", step+1, len(report.Skipped))
		}

		if opts.ResumePath != "" {
			s.deps.Checker.UploadResume(page, opts.ResumePath)
		}

		submit := page.Locator("button[aria-label='Submit application'], button:has-text('Submit application')").First()
		if visible, _ := submit.IsVisible(); visible {
			if screenshot, err := s.deps.Browser.SaveScreenshot(page, "linkedin_filled_form"); err == nil {
				result.ScreenshotPath = screenshot
			}
			delay()
			if err := submit.Click(); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("submit click failed: %v", err))
				result.Message = "submission not confirmed"
				return result, nil
			}
			s.waitForContent(page)
			s.finishSuccess(page, result, "application submitted")
			return result, nil
		}

		next := page.Locator("button[aria-label='Continue to next step'], button[aria-label='Review your application'], button:has-text('Next'), button:has-text('Review')").First()
		if visible, _ := next.IsVisible(); !visible {
			break
		}
		delay()
		if err := next.Click(); err != nil {
			break
		}
		page.WaitForTimeout(500)
	}

	result.Errors = append(result.Errors, "Easy Apply flow did not reach the submit step")
	result.Message = "submission not confirmed"
	if screenshot, err := s.deps.Browser.SaveScreenshot(page, "linkedin_failed"); err == nil {
		result.ScreenshotPath = screenshot
	}
	return result, nil
}
