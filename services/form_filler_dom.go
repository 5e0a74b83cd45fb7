package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"

	"jobpilot/models"
)

// FillReport summarizes one fill pass over a form.
type FillReport struct {
	Filled  map[string]string
	Skipped []string
}

// FillFormFields fills every resolvable field on the page. Exactly one value
// is attempted per field per pass, and a control already holding a non-empty
// value is never overwritten. delay runs between UI actions to keep human
// timing.
func (f *FormFiller) FillFormFields(page playwright.Page, fields []models.FormField, profile *models.Profile, delay func()) *FillReport {
	report := &FillReport{Filled: make(map[string]string)}

	for _, field := range fields {
		if field.Type == "file" {
			continue // document uploads are handled separately
		}

		value, source, ok := f.ResolveFieldValue(field, profile)
		if !ok {
			report.Skipped = append(report.Skipped, field.Name)
			continue
		}

		if f.fillControl(page, field, value) {
			log.Printf("✓ Filled %q from %s", field.Label, source)
			report.Filled[field.Name] = value
		} else {
			report.Skipped = append(report.Skipped, field.Name)
		}
		delay()
	}

	return report
}

// RepairPass scans for required fields still empty after a submit attempt
// and fills them with pattern-keyed defaults.
func (f *FormFiller) RepairPass(page playwright.Page, profile *models.Profile, delay func()) int {
	repaired := 0
	for _, field := range ScanEmptyRequiredFields(page) {
		value := f.repairDefault(field, profile)
		if value == "" {
			continue
		}
		if f.fillControl(page, field, value) {
			log.Printf("✓ Repaired empty required field %q", field.Label)
			repaired++
		}
		delay()
	}
	return repaired
}

func (f *FormFiller) fillControl(page playwright.Page, field models.FormField, value string) bool {
	control := locateControl(page, field)
	if control == nil {
		return false
	}

	switch field.Type {
	case "select":
		option := MatchOption(value, field.Options)
		if option == "" {
			return false
		}
		_, err := control.SelectOption(playwright.SelectOptionValues{Labels: &[]string{option}})
		return err == nil

	case "checkbox":
		if MatchOption(value, []string{"Yes"}) == "" {
			return false
		}
		return control.Check() == nil

	case "radio":
		return checkRadio(page, field, value)

	default:
		if current, err := control.InputValue(); err == nil && current != "" {
			return false // never overwrite an existing value
		}
		return control.Fill(value) == nil
	}
}

// locateControl finds the DOM control for a field: exact name or id first,
// then a label-text search.
func locateControl(page playwright.Page, field models.FormField) playwright.Locator {
	name := escapeSelectorValue(field.Name)
	selectors := []string{
		fmt.Sprintf("[name='%s']", name),
		fmt.Sprintf("#%s", name),
	}
	if field.Label != "" {
		label := escapeSelectorValue(field.Label)
		selectors = append(selectors,
			fmt.Sprintf("label:has-text('%s') + input", label),
			fmt.Sprintf("label:has-text('%s') + select", label),
			fmt.Sprintf("label:has-text('%s') + textarea", label),
			fmt.Sprintf("[aria-label='%s']", label),
		)
	}

	for _, selector := range selectors {
		control := page.Locator(selector).First()
		if count, err := control.Count(); err == nil && count > 0 {
			return control
		}
	}
	return nil
}

func checkRadio(page playwright.Page, field models.FormField, value string) bool {
	radios, err := page.Locator(fmt.Sprintf("input[type='radio'][name='%s']", escapeSelectorValue(field.Name))).All()
	if err != nil || len(radios) == 0 {
		return false
	}

	lower := strings.ToLower(value)
	for _, radio := range radios {
		radioValue, _ := radio.GetAttribute("value")
		aria, _ := radio.GetAttribute("aria-label")
		candidate := strings.ToLower(radioValue + " " + aria)
		if strings.Contains(candidate, lower) || MatchOption(value, []string{radioValue, aria}) != "" {
			return radio.Check() == nil
		}
	}
	return false
}

func escapeSelectorValue(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
