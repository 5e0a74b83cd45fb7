package services

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jobpilot/models"
)

var titleCaser = cases.Title(language.English)

// GenericScraper is the catch-all for career sites with no dedicated
// strategy. It tries a cheap static-HTML fetch first and only falls back to
// a full browser session when the page needs JavaScript to render.
type GenericScraper struct {
	*BaseScraper
	client *http.Client
}

func NewGenericScraper(deps ScraperDeps) Scraper {
	return &GenericScraper{
		BaseScraper: newBaseScraper(PlatformGeneric, deps, selectorSet{
			Title: []string{
				"h1",
				".job-title",
				"[class*='job'][class*='title']",
				"h2",
			},
			Company: []string{
				".company-name",
				"[class*='company']",
				"meta[property='og:site_name']",
			},
			Description: []string{
				".job-description",
				"[class*='description']",
				"main",
				"article",
			},
			Location: []string{
				".job-location",
				"[class*='location']",
			},
			Salary: []string{
				".salary",
				"[class*='salary']",
				"[class*='compensation']",
			},
			Apply: []string{
				"a:has-text('Apply')",
				"button:has-text('Apply')",
				"a[href*='apply']",
			},
		}),
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// ExtractJobData tries the static path first. When that yields a resolved
// title and a description, the browser never launches for this job.
func (s *GenericScraper) ExtractJobData(jobURL string) (*models.JobData, error) {
	if job, ok := s.extractStatic(jobURL); ok {
		return job, nil
	}
	log.Printf("Static extraction insufficient for %s, using browser", jobURL)
	job, err := s.BaseScraper.ExtractJobData(jobURL)
	if err != nil {
		return nil, err
	}
	if job.Company == "" {
		job.Company = companyFromURL(jobURL)
	}
	return job, nil
}

// extractStatic fetches the raw HTML and parses it without a browser.
func (s *GenericScraper) extractStatic(jobURL string) (*models.JobData, bool) {
	req, err := http.NewRequest(http.MethodGet, jobURL, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", automationUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, false
	}

	job := &models.JobData{
		URL:      jobURL,
		Platform: PlatformGeneric,
		Title:    models.UnknownTitle,
	}

	if title := firstDocText(doc, "h1", ".job-title", "h2"); title != "" {
		job.Title = title
	} else if og, ok := doc.Find("meta[property='og:title']").Attr("content"); ok && strings.TrimSpace(og) != "" {
		job.Title = strings.TrimSpace(og)
	}

	if company := firstDocText(doc, ".company-name", "[class*='company-name']"); company != "" {
		job.Company = company
	} else if site, ok := doc.Find("meta[property='og:site_name']").Attr("content"); ok && strings.TrimSpace(site) != "" {
		job.Company = strings.TrimSpace(site)
	} else {
		job.Company = companyFromURL(jobURL)
	}

	job.Description = firstDocText(doc, ".job-description", "[class*='description']", "main", "article", "body")
	job.Location = firstDocText(doc, ".job-location", "[class*='location']")
	job.Requirements, job.Qualifications = PartitionDescription(job.Description)

	// A page that renders everything client-side comes back with a bare
	// shell; treat that as a miss and let the browser path handle it.
	if !job.TitleResolved() || len(job.Description) < 200 {
		return nil, false
	}
	return job, true
}

func firstDocText(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// companyFromURL prettifies the host's first label into a display name, e.g.
// "careers.acme-corp.com" becomes "Acme Corp".
func companyFromURL(jobURL string) string {
	parsed, err := url.Parse(jobURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	labels := strings.Split(host, ".")
	slug := labels[0]
	if (slug == "careers" || slug == "jobs" || slug == "apply") && len(labels) > 1 {
		slug = labels[1]
	}
	slug = strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return titleCaser.String(strings.TrimSpace(slug))
}
