package services

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"jobpilot/config"
)

const automationUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36"

// BrowserService owns the Playwright lifecycle and hands out browser
// sessions to scrapers. The browser launches lazily on the first session so
// the process can start (and dry-run paths can work) without one installed.
type BrowserService struct {
	cfg     config.AutomationConfig
	s3      *S3Service
	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewBrowserService(cfg config.AutomationConfig) *BrowserService {
	s3Service, err := NewS3Service()
	if err != nil {
		log.Printf("S3 not available for screenshots, saving locally: %v", err)
	}
	return &BrowserService{cfg: cfg, s3: s3Service}
}

func (s *BrowserService) launch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser != nil {
		return nil
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.cfg.Headless),
		Args: []string{
			"--no-sandbox",
			"--disable-blink-features=AutomationControlled",
			"--disable-extensions",
			"--disable-plugins-discovery",
		},
	})
	if err != nil {
		pw.Stop()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	s.pw = pw
	s.browser = browser
	return nil
}

// NewSession creates a fresh browser context and page, reusing persisted
// storage state (cookies, auth) when configured.
func (s *BrowserService) NewSession() (playwright.BrowserContext, playwright.Page, error) {
	if err := s.launch(); err != nil {
		return nil, nil, err
	}

	opts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1920,
			Height: 1080,
		},
		UserAgent: playwright.String(automationUserAgent),
	}
	if s.cfg.StorageStatePath != "" {
		if _, err := os.Stat(s.cfg.StorageStatePath); err == nil {
			opts.StorageStatePath = playwright.String(s.cfg.StorageStatePath)
		}
	}

	context, err := s.browser.NewContext(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create context: %v", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		return nil, nil, fmt.Errorf("could not create page: %v", err)
	}

	return context, page, nil
}

// HumanDelay pauses for a randomized interval between UI actions. Target
// sites rate-limit or flag scripted cadences, so every interaction goes
// through this.
func (s *BrowserService) HumanDelay(page playwright.Page) {
	min := s.cfg.ActionDelayMinMs
	max := s.cfg.ActionDelayMaxMs
	if max <= min {
		max = min + 1
	}
	page.WaitForTimeout(float64(min + rand.Intn(max-min)))
}

// SaveScreenshot takes a full-page screenshot, uploads it to S3 when
// configured and falls back to the local screenshot directory otherwise.
// Returns the S3 key or local path.
func (s *BrowserService) SaveScreenshot(page playwright.Page, name string) (string, error) {
	filename := fmt.Sprintf("%s_%d.png", name, time.Now().Unix())
	tempPath := filepath.Join(os.TempDir(), filename)

	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(tempPath),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to take screenshot: %w", err)
	}

	if s.s3 != nil {
		key := fmt.Sprintf("screenshots/%s", filename)
		if _, err := s.s3.UploadScreenshot(tempPath, key); err == nil {
			os.Remove(tempPath)
			log.Printf("✓ Screenshot uploaded to S3: %s", key)
			return key, nil
		}
		log.Printf("S3 upload failed, keeping screenshot locally")
	}

	if err := os.MkdirAll(s.cfg.ScreenshotDir, 0o755); err != nil {
		return "", err
	}
	localPath := filepath.Join(s.cfg.ScreenshotDir, filename)
	if err := os.Rename(tempPath, localPath); err != nil {
		return "", fmt.Errorf("failed to save screenshot locally: %w", err)
	}
	return localPath, nil
}

// SaveStorageState persists the context's cookies and storage so the next
// run can reuse an authenticated session.
func (s *BrowserService) SaveStorageState(context playwright.BrowserContext) {
	if s.cfg.StorageStatePath == "" || context == nil {
		return
	}
	if _, err := context.StorageState(s.cfg.StorageStatePath); err != nil {
		log.Printf("Failed to persist storage state: %v", err)
	}
}

func (s *BrowserService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			log.Printf("Error closing browser: %v", err)
		}
		s.browser = nil
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			return err
		}
		s.pw = nil
	}
	return nil
}
