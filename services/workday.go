package services

import (
	"fmt"
	"log"

	"jobpilot/models"
)

// WorkdayScraper handles *.myworkdayjobs.com postings. Workday spreads the
// application across several wizard pages joined by a Next button, each one
// rendered client-side behind data-automation-id attributes.
type WorkdayScraper struct {
	*BaseScraper
}

func NewWorkdayScraper(deps ScraperDeps) Scraper {
	return &WorkdayScraper{
		BaseScraper: newBaseScraper(PlatformWorkday, deps, selectorSet{
			Ready: "h2[data-automation-id='jobPostingHeader'], h1",
			Title: []string{
				"h2[data-automation-id='jobPostingHeader']",
				"h1[data-automation-id='jobPostingHeader']",
				"h1",
			},
			Company: []string{
				"div[data-automation-id='jobPostingCompany']",
				"img[data-automation-id='logo'][alt]",
			},
			Description: []string{
				"div[data-automation-id='jobPostingDescription']",
				"#mainContent",
			},
			Location: []string{
				"div[data-automation-id='locations'] dd",
				"span[data-automation-id='location']",
			},
			Apply: []string{
				"a[data-automation-id='adventureButton']",
				"button:has-text('Apply')",
				"a[data-uxi-element-id='Apply_adventureButton']",
			},
		}),
	}
}

// SubmitApplication walks the Workday wizard: open the application, pick the
// manual path, then fill and advance each page until the review submit.
func (s *WorkdayScraper) SubmitApplication(url string, opts SubmitOptions) (*models.SubmissionResult, error) {
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
	s.openApplyForm(page)

	delay := func() { s.deps.Browser.HumanDelay(page) }

	// Workday offers autofill-from-resume and manual entry; manual is the
	// path the filler understands.
	manual := page.Locator("a[data-automation-id='applyManually'], button:has-text('Apply Manually')").First()
	if visible, _ := manual.IsVisible(); visible {
		delay()
		manual.Click()
		s.waitForContent(page)
	}

	const maxPages = 8
	for pageNum := 0; pageNum < maxPages; pageNum++ {
		fields, _ := SplitCustomQuestions(ScanFormFields(page))
		report := s.deps.Filler.FillFormFields(page, fields, opts.Profile, delay)
		if len(report.Skipped) > 0 {
			log.Printf("Workday page %d left %d fields unresolved", pageNum+1, len(report.Skipped))
		}

		if opts.ResumePath != "" {
			s.deps.Checker.UploadResume(page, opts.ResumePath)
		}

		submit := page.Locator("button[data-automation-id='bottom-navigation-next-button']:has-text('Submit'), button:has-text('Submit')").First()
		if visible, _ := submit.IsVisible(); visible {
			if screenshot, err := s.deps.Browser.SaveScreenshot(page, "workday_filled_form"); err == nil {
				result.ScreenshotPath = screenshot
			}
			delay()
			if err := submit.Click(); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("submit click failed: %v", err))
				result.Message = "submission not confirmed"
				return result, nil
			}
			s.waitForContent(page)
			if s.deps.Checker.CheckForSuccess(page) || !s.deps.Checker.HasVisibleErrors(page) {
				s.finishSuccess(page, result, "application submitted")
			} else {
				result.Errors = append(result.Errors, "page still shows validation errors")
				result.Message = "submission not confirmed"
			}
			return result, nil
		}

		next := page.Locator("button[data-automation-id='bottom-navigation-next-button'], button:has-text('Next'), button:has-text('Save and Continue')").First()
		if visible, _ := next.IsVisible(); !visible {
			break
		}
		delay()
		if err := next.Click(); err != nil {
			break
		}
		s.waitForContent(page)
	}

	result.Errors = append(result.Errors, "wizard did not reach the submit step")
	result.Message = "submission not confirmed"
	if screenshot, err := s.deps.Browser.SaveScreenshot(page, "workday_failed"); err == nil {
		result.ScreenshotPath = screenshot
	}
	return result, nil
}
