package services

import (
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// SubmissionChecker detects submit controls, uploads documents and decides
// whether a submission went through. Shared by every platform scraper.
type SubmissionChecker struct{}

var successSelectors = []string{
	"text=Thank you for your application",
	"text=Application submitted successfully",
	"text=Your application has been submitted",
	"text=Application received",
	"text=Thank you for applying",
	"text=We have received your application",
	"text=Successfully submitted",
	"[class*='success']",
	"[class*='confirmation']",
	"[data-testid*='success']",
	"[data-testid*='confirmation']",
	"h1:has-text('Thank you')",
	"h2:has-text('Thank you')",
	"h1:has-text('Submitted')",
	"h2:has-text('Submitted')",
}

var successKeywords = []string{"success", "confirmation", "thank", "complete", "submitted", "received"}

// CheckForSuccess looks for confirmation of a submitted application via
// success-text selectors, the page title and URL heuristics.
func (s *SubmissionChecker) CheckForSuccess(page playwright.Page) bool {
	pageURL := page.URL()
	pageTitle, _ := page.Title()

	if containsSuccessKeyword(pageURL) {
		log.Printf("Found success keyword in URL: %s", pageURL)
		return true
	}
	if containsSuccessKeyword(pageTitle) {
		log.Printf("Found success keyword in title: %s", pageTitle)
		return true
	}

	for _, selector := range successSelectors {
		element := page.Locator(selector).First()
		if visible, _ := element.IsVisible(); visible {
			log.Printf("Found success indicator: %s", selector)
			return true
		}
	}

	return false
}

func containsSuccessKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range successKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// HasVisibleErrors reports whether the page shows validation or submission
// errors. Absence of errors after a submit is treated as tentative success.
func (s *SubmissionChecker) HasVisibleErrors(page playwright.Page) bool {
	errorSelectors := []string{
		"[class*='error']:visible",
		"[role='alert']:visible",
		"[aria-invalid='true']",
		".field-error:visible",
	}
	for _, selector := range errorSelectors {
		if count, _ := page.Locator(selector).Count(); count > 0 {
			return true
		}
	}
	return false
}

// FindAndClickSubmitButton clicks the first enabled submit control.
func (s *SubmissionChecker) FindAndClickSubmitButton(page playwright.Page) bool {
	submitSelectors := []string{
		"button[type='submit']:visible",
		"input[type='submit']:visible",
		"button:has-text('Submit Application'):visible",
		"button:has-text('Submit'):visible",
		"button:has-text('Send Application'):visible",
		"button:has-text('Apply'):visible",
		"button[class*='submit']:visible",
	}

	for _, selector := range submitSelectors {
		button := page.Locator(selector).First()
		visible, _ := button.IsVisible()
		if !visible {
			continue
		}
		if disabled, _ := button.IsDisabled(); disabled {
			log.Printf("Submit button %s is disabled", selector)
			continue
		}
		if err := button.Click(); err == nil {
			log.Printf("✓ Clicked submit button: %s", selector)
			return true
		}
	}

	log.Printf("No submit button found")
	return false
}

var resumeLabelPatterns = []string{"resume", "cv", "curriculum"}
var coverLetterLabelPatterns = []string{"cover letter", "cover_letter", "coverletter", "motivation"}

// UploadDocument attaches a file to the first file input whose nearby label
// matches one of the given patterns. Falls back to the first file input when
// no label matches and fallbackToFirst is set.
func (s *SubmissionChecker) UploadDocument(page playwright.Page, filePath string, labelPatterns []string, fallbackToFirst bool) bool {
	if filePath == "" {
		return false
	}

	inputs, err := page.Locator("input[type='file']").All()
	if err != nil || len(inputs) == 0 {
		return false
	}

	for _, input := range inputs {
		labelValue, _ := input.Evaluate(labelScript, nil)
		label, _ := labelValue.(string)
		name, _ := input.GetAttribute("name")
		combined := strings.ToLower(label + " " + name)

		for _, pattern := range labelPatterns {
			if strings.Contains(combined, pattern) {
				if err := input.SetInputFiles(filePath); err == nil {
					log.Printf("✓ Uploaded %s to field %q", filePath, label)
					return true
				}
				log.Printf("Failed to upload %s: field %q rejected the file", filePath, label)
			}
		}
	}

	if fallbackToFirst {
		if err := inputs[0].SetInputFiles(filePath); err == nil {
			log.Printf("✓ Uploaded %s to first file input", filePath)
			return true
		}
	}
	return false
}

// UploadResume attaches the resume to the matching file input.
func (s *SubmissionChecker) UploadResume(page playwright.Page, resumePath string) bool {
	return s.UploadDocument(page, resumePath, resumeLabelPatterns, true)
}

// UploadCoverLetter attaches the cover letter; no fallback since attaching
// a cover letter to an arbitrary input does more harm than skipping it.
func (s *SubmissionChecker) UploadCoverLetter(page playwright.Page, coverLetterPath string) bool {
	return s.UploadDocument(page, coverLetterPath, coverLetterLabelPatterns, false)
}
