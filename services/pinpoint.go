package services

// PinpointScraper handles <company>.pinpointhq.com postings.
type PinpointScraper struct {
	*BaseScraper
}

func NewPinpointScraper(deps ScraperDeps) Scraper {
	return &PinpointScraper{
		BaseScraper: newBaseScraper(PlatformPinpoint, deps, selectorSet{
			Ready: "h1",
			Title: []string{
				"h1.job-title",
				"header h1",
				"h1",
			},
			Company: []string{
				".navbar-brand img[alt]",
				".company-name",
			},
			Description: []string{
				".job-description",
				"section.description",
				"main article",
			},
			Location: []string{
				".job-location",
				"li:has-text('Location')",
			},
			Salary: []string{
				".job-salary",
				"li:has-text('Salary')",
			},
			Apply: []string{
				"a:has-text('Apply for this position')",
				"a[href*='/applications/new']",
				"button:has-text('Apply')",
			},
		}),
	}
}
