package services

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"jobpilot/models"
)

// labelScript finds the visible label text for a form control: an explicit
// <label for=...>, a wrapping label, or the nearest preceding label element.
const labelScript = `el => {
	if (el.id) {
		const byFor = document.querySelector('label[for="' + el.id + '"]');
		if (byFor) return byFor.textContent.trim();
	}
	const wrapping = el.closest('label');
	if (wrapping) return wrapping.textContent.trim();
	let node = el.parentElement;
	for (let depth = 0; node && depth < 3; depth++) {
		const label = node.querySelector('label, .field__label, legend');
		if (label) return label.textContent.trim();
		node = node.parentElement;
	}
	return el.getAttribute('aria-label') || el.getAttribute('placeholder') || '';
}`

// ScanFormFields inventories the visible controls of the application form on
// the current page. Best-effort: locator failures skip the control rather
// than abort the scan.
func ScanFormFields(page playwright.Page) []models.FormField {
	var fields []models.FormField

	controls, err := page.Locator("input:visible, select:visible, textarea:visible").All()
	if err != nil {
		return fields
	}

	for i, control := range controls {
		tag, err := control.Evaluate(`el => el.tagName.toLowerCase()`, nil)
		if err != nil {
			continue
		}

		fieldType, _ := control.GetAttribute("type")
		switch tag {
		case "select":
			fieldType = "select"
		case "textarea":
			fieldType = "textarea"
		default:
			if fieldType == "" {
				fieldType = "text"
			}
		}
		switch fieldType {
		case "hidden", "submit", "button", "image", "reset":
			continue
		}

		name, _ := control.GetAttribute("name")
		if name == "" {
			name, _ = control.GetAttribute("id")
		}
		if name == "" {
			name = fmt.Sprintf("field_%d", i)
		}

		labelValue, _ := control.Evaluate(labelScript, nil)
		label, _ := labelValue.(string)

		required := false
		if req, _ := control.GetAttribute("required"); req != "" {
			required = true
		} else if aria, _ := control.GetAttribute("aria-required"); aria == "true" {
			required = true
		}

		field := models.FormField{
			Name:     name,
			Type:     fieldType,
			Label:    strings.TrimSpace(label),
			Required: required,
		}

		if fieldType == "select" {
			field.Options = selectOptions(control)
		}
		if fieldType != "file" && fieldType != "checkbox" && fieldType != "radio" {
			if value, err := control.InputValue(); err == nil {
				field.Value = value
			}
		}

		fields = append(fields, field)
	}

	return fields
}

func selectOptions(control playwright.Locator) []string {
	var options []string
	optionLocators, err := control.Locator("option").All()
	if err != nil {
		return options
	}
	for _, opt := range optionLocators {
		text, err := opt.TextContent()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" || strings.Contains(strings.ToLower(text), "select") {
			continue
		}
		options = append(options, text)
	}
	return options
}

// SplitCustomQuestions separates question-like controls (free-form prompts a
// profile cannot answer structurally) from standard form fields.
func SplitCustomQuestions(fields []models.FormField) ([]models.FormField, []models.CustomQuestion) {
	var standard []models.FormField
	var questions []models.CustomQuestion

	for _, field := range fields {
		if isCustomQuestion(field) {
			questions = append(questions, models.CustomQuestion{
				ID:       field.Name,
				Question: field.Label,
				Type:     field.Type,
				Required: field.Required,
				Options:  field.Options,
			})
			continue
		}
		standard = append(standard, field)
	}

	return standard, questions
}

func isCustomQuestion(field models.FormField) bool {
	label := strings.TrimSpace(field.Label)
	if label == "" {
		return false
	}
	// Anything a semantic pattern recognizes is a standard field even when
	// phrased as a question ("Are you authorized to work...?").
	probe := strings.ToLower(label + " " + field.Name)
	for _, fp := range fieldPatterns {
		if fp.pattern.MatchString(probe) {
			return false
		}
	}
	if field.Type == "textarea" {
		return true
	}
	return strings.HasSuffix(label, "?") || len(label) > 60
}

// ScanEmptyRequiredFields finds fields still empty after a submit attempt,
// for the validation-repair pass.
func ScanEmptyRequiredFields(page playwright.Page) []models.FormField {
	var empty []models.FormField
	for _, field := range ScanFormFields(page) {
		if !field.Required || field.Value != "" {
			continue
		}
		if field.Type == "file" || field.Type == "checkbox" || field.Type == "radio" {
			continue
		}
		empty = append(empty, field)
	}
	return empty
}
