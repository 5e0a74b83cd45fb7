package services

// GreenhouseScraper handles boards.greenhouse.io and embedded Greenhouse
// boards. The application form lives on the posting page, below the
// description.
type GreenhouseScraper struct {
	*BaseScraper
}

func NewGreenhouseScraper(deps ScraperDeps) Scraper {
	return &GreenhouseScraper{
		BaseScraper: newBaseScraper(PlatformGreenhouse, deps, selectorSet{
			Ready: ".app-title, h1.section-header, .job__title h1",
			Title: []string{
				".app-title",
				"h1.section-header",
				".job__title h1",
				"h1",
			},
			Company: []string{
				".company-name",
				".app-company",
				"span.company-name",
			},
			Description: []string{
				"#content",
				".job__description",
				"#app_body section",
			},
			Location: []string{
				".location",
				".job__location",
				"div.location",
			},
			Salary: []string{
				".pay-range",
				".job__salary",
			},
			Apply: []string{
				"a[href='#app']",
				"#apply_button",
				"a:has-text('Apply for this job')",
				"button:has-text('Apply')",
			},
		}),
	}
}
