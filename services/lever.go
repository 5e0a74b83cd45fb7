package services

import (
	"strings"

	"jobpilot/models"
)

// LeverScraper handles jobs.lever.co postings. Lever splits the posting and
// the application form across two URLs; the form lives at <posting>/apply.
type LeverScraper struct {
	*BaseScraper
}

func NewLeverScraper(deps ScraperDeps) Scraper {
	return &LeverScraper{
		BaseScraper: newBaseScraper(PlatformLever, deps, selectorSet{
			Ready: ".posting-headline h2",
			Title: []string{
				".posting-headline h2",
				"h2[data-qa='posting-name']",
				"h2",
			},
			Company: []string{
				".main-header-logo img[alt]",
				".posting-categories .sort-by-team",
			},
			Description: []string{
				".section-wrapper .section:not(.last-section-apply)",
				"div[data-qa='job-description']",
				".content",
			},
			Location: []string{
				".posting-categories .location",
				".sort-by-location",
			},
			Salary: []string{
				".salary-range",
			},
			Apply: []string{
				"a.postings-btn[href*='/apply']",
				"a:has-text('Apply for this job')",
				"a[href*='/apply']",
			},
		}),
	}
}

// SubmitApplication navigates straight to Lever's dedicated /apply page
// before running the shared flow, so no apply click is needed.
func (s *LeverScraper) SubmitApplication(url string, opts SubmitOptions) (*models.SubmissionResult, error) {
	if !strings.HasSuffix(strings.TrimRight(url, "/"), "/apply") {
		url = strings.TrimRight(url, "/") + "/apply"
	}
	return s.BaseScraper.SubmitApplication(url, opts)
}
