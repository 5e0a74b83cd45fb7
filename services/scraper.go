package services

import (
	"sync"

	"jobpilot/config"
	"jobpilot/models"
)

// Scraper is the per-platform strategy contract: extract structured job data
// from a posting URL, and drive the application form through to submission.
type Scraper interface {
	Platform() string
	ExtractJobData(url string) (*models.JobData, error)
	SubmitApplication(url string, opts SubmitOptions) (*models.SubmissionResult, error)
}

// SubmitOptions carries everything a scraper needs for one submission
// attempt.
type SubmitOptions struct {
	Profile         *models.Profile
	Job             *models.JobData
	ResumePath      string
	CoverLetterPath string
	DryRun          bool
}

// ScraperDeps bundles the shared collaborators a scraper is built with.
type ScraperDeps struct {
	Browser *BrowserService
	AI      AIProvider
	Filler  *FormFiller
	Checker *SubmissionChecker
	Config  config.AutomationConfig
}

// ScraperFactory builds a scraper bound to shared collaborators.
type ScraperFactory func(deps ScraperDeps) Scraper

// ScraperRegistry maps platform identifiers to scraper factories. The
// orchestrator resolves the concrete strategy once per job; unknown
// platforms get the generic scraper.
type ScraperRegistry struct {
	mu        sync.RWMutex
	factories map[string]ScraperFactory
}

// NewScraperRegistry returns a registry with every built-in platform
// registered.
func NewScraperRegistry() *ScraperRegistry {
	r := &ScraperRegistry{factories: make(map[string]ScraperFactory)}
	r.Register(PlatformGreenhouse, NewGreenhouseScraper)
	r.Register(PlatformLever, NewLeverScraper)
	r.Register(PlatformLinkedIn, NewLinkedInScraper)
	r.Register(PlatformWorkday, NewWorkdayScraper)
	r.Register(PlatformBambooHR, NewBambooHRScraper)
	r.Register(PlatformPinpoint, NewPinpointScraper)
	r.Register(PlatformGeneric, NewGenericScraper)
	return r
}

func (r *ScraperRegistry) Register(platform string, factory ScraperFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[platform] = factory
}

// ScraperFor detects the URL's platform and builds the matching scraper,
// falling back to the generic strategy.
func (r *ScraperRegistry) ScraperFor(url string, deps ScraperDeps) Scraper {
	platform := DetectPlatform(url)

	r.mu.RLock()
	factory, ok := r.factories[platform]
	if !ok {
		factory = r.factories[PlatformGeneric]
	}
	r.mu.RUnlock()

	return factory(deps)
}
