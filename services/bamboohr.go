package services

// BambooHRScraper handles <company>.bamboohr.com career pages. BambooHR
// renders the posting client-side, so the readiness wait matters more here
// than on the static boards.
type BambooHRScraper struct {
	*BaseScraper
}

func NewBambooHRScraper(deps ScraperDeps) Scraper {
	return &BambooHRScraper{
		BaseScraper: newBaseScraper(PlatformBambooHR, deps, selectorSet{
			Ready: "h2, .js-jobs-left h2",
			Title: []string{
				"h2",
				".posting-title",
				"meta[property='og:title']",
			},
			Company: []string{
				".company-name",
				"img.companyLogo[alt]",
			},
			Description: []string{
				".js-jobs-description",
				"#descriptionWrapper",
				".description",
			},
			Location: []string{
				".jss-location",
				"span[class*='location']",
			},
			Apply: []string{
				"a:has-text('Apply for this Position')",
				"button:has-text('Apply')",
				"a[href*='careers'][href*='apply']",
			},
		}),
	}
}
