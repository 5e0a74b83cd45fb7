package services

import (
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"jobpilot/models"
)

// FormFiller resolves a value for each form field through a fixed priority
// chain: semantic profile mapping, prefilled value from extraction, cached
// prior answer, AI-generated answer, then an interactive operator prompt
// whose answer is cached for reuse. A field that still resolves to nothing
// is reported as skipped, never fatal.
type FormFiller struct {
	cache       *AnswerCache
	prompter    Prompter
	ai          AIProvider
	interactive bool
}

func NewFormFiller(cache *AnswerCache, prompter Prompter, ai AIProvider, interactive bool) *FormFiller {
	return &FormFiller{
		cache:       cache,
		prompter:    prompter,
		ai:          ai,
		interactive: interactive,
	}
}

// fieldPattern maps a semantic label/name pattern to a profile-derived value.
type fieldPattern struct {
	name    string
	pattern *regexp.Regexp
	resolve func(p *models.Profile) string
}

// fieldPatterns is tested in order against the combined "label name" string.
// Order is significant: specific patterns (relocate, sponsorship) must come
// before the general ones (location, work authorization) that would swallow
// them.
var fieldPatterns = []fieldPattern{
	{"relocation", regexp.MustCompile(`relocat`), func(p *models.Profile) string {
		if p.Preferences.RemoteOnly {
			return "No"
		}
		return "Yes"
	}},
	{"sponsorship", regexp.MustCompile(`sponsor`), func(p *models.Profile) string { return "No" }},
	{"work_authorization", regexp.MustCompile(`work\s*auth|authoriz|legally\s+(allowed|entitled)|eligible\s+to\s+work|visa`), func(p *models.Profile) string { return "Yes" }},
	{"first_name", regexp.MustCompile(`first\s*name|given\s*name|\bfname\b`), func(p *models.Profile) string { return p.FirstName() }},
	{"last_name", regexp.MustCompile(`last\s*name|family\s*name|surname|\blname\b`), func(p *models.Profile) string { return p.LastName() }},
	{"full_name", regexp.MustCompile(`full\s*name|your\s*name|legal\s*name`), func(p *models.Profile) string { return p.Name }},
	{"email", regexp.MustCompile(`e-?mail`), func(p *models.Profile) string { return p.Email }},
	{"phone", regexp.MustCompile(`phone|mobile|telephone`), func(p *models.Profile) string { return p.Phone }},
	{"linkedin", regexp.MustCompile(`linked\s*-?in`), func(p *models.Profile) string { return p.LinkedIn }},
	{"github", regexp.MustCompile(`git\s*hub`), func(p *models.Profile) string { return p.GitHub }},
	{"portfolio", regexp.MustCompile(`portfolio|personal\s+(web)?site|website`), func(p *models.Profile) string { return p.Portfolio }},
	{"years_experience", regexp.MustCompile(`years?\s+of\s+experience|experience\s+\(?years|how\s+many\s+years`), func(p *models.Profile) string { return YearsOfExperience(p.Experience) }},
	{"current_company", regexp.MustCompile(`current\s+(company|employer)|most\s+recent\s+(company|employer)`), func(p *models.Profile) string { return p.CurrentCompany() }},
	{"current_title", regexp.MustCompile(`current\s+(title|role|position)|job\s*title`), func(p *models.Profile) string { return p.CurrentTitle() }},
	{"salary", regexp.MustCompile(`salary|compensation|desired\s+pay|pay\s+expectation`), func(p *models.Profile) string { return p.Preferences.DesiredSalary }},
	{"start_date", regexp.MustCompile(`start\s*date|notice\s*period|availab|when\s+can\s+you\s+start`), func(p *models.Profile) string {
		if p.Preferences.NoticePeriod != "" {
			return p.Preferences.NoticePeriod
		}
		if p.Preferences.StartDate != "" {
			return p.Preferences.StartDate
		}
		return "Immediately"
	}},
	{"referral", regexp.MustCompile(`referr|hear\s+about|how\s+did\s+you\s+(find|learn)`), func(p *models.Profile) string { return "Other" }},
	{"cover_letter", regexp.MustCompile(`cover\s*letter|motivation`), func(p *models.Profile) string { return p.BaseCoverLetter }},
	{"demographic", regexp.MustCompile(`gender|ethnicit|race\b|veteran|disabilit|sexual\s+orientation|transgender|pronouns`), func(p *models.Profile) string { return "Prefer not to say" }},
	{"location", regexp.MustCompile(`location|\bcity\b|address|where\s+are\s+you\s+based`), func(p *models.Profile) string { return p.Location }},
}

// ResolveProfileValue maps a field to a profile-derived value via the ordered
// semantic pattern table. Returns ok=false when no pattern matches or the
// matched pattern resolves to an empty value.
func (f *FormFiller) ResolveProfileValue(field models.FormField, profile *models.Profile) (string, bool) {
	combined := strings.ToLower(field.Label + " " + field.Name)
	for _, fp := range fieldPatterns {
		if fp.pattern.MatchString(combined) {
			value := fp.resolve(profile)
			if value == "" {
				return "", false
			}
			return value, true
		}
	}
	return "", false
}

// ResolveFieldValue runs the full priority chain for one field and reports
// the value and which resolver produced it. An empty value with ok=false
// means the field is skipped.
func (f *FormFiller) ResolveFieldValue(field models.FormField, profile *models.Profile) (value, source string, ok bool) {
	if v, matched := f.ResolveProfileValue(field, profile); matched {
		return v, "profile", true
	}

	if field.Value != "" {
		return field.Value, "prefilled", true
	}

	if f.cache != nil {
		if v, hit := f.cache.Get(field.Label); hit && v != "" {
			return v, "cache", true
		}
	}

	if f.ai != nil && f.ai.IsAvailable() && field.Label != "" {
		if v, err := f.aiAnswer(field, profile); err == nil && v != "" {
			if f.cache != nil {
				f.cache.Set(field.Label, v)
			}
			return v, "ai", true
		}
	}

	if f.interactive && f.prompter != nil && field.Required && field.Label != "" {
		if v, err := f.prompter.Ask(field.Label, field.Options); err == nil && v != "" {
			if f.cache != nil {
				f.cache.Set(field.Label, v)
			}
			return v, "prompt", true
		}
	}

	return "", "", false
}

func (f *FormFiller) aiAnswer(field models.FormField, profile *models.Profile) (string, error) {
	prompt := fmt.Sprintf(`You are filling out a job application on behalf of a candidate.

Candidate:
- Name: %s
- Location: %s
- Skills: %s
- Current role: %s at %s

Form field: %q`, profile.Name, profile.Location, strings.Join(profile.Skills, ", "),
		profile.CurrentTitle(), profile.CurrentCompany(), field.Label)

	if len(field.Options) > 0 {
		prompt += fmt.Sprintf("\nAllowed options: %s\nAnswer with exactly one of the options.", strings.Join(field.Options, " | "))
	} else {
		prompt += "\nAnswer concisely with only the value to enter, no explanation."
	}

	answer, err := f.ai.GenerateText(prompt, "")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(StripCodeFences(answer)), nil
}

var (
	yesSynonyms = map[string]bool{"yes": true, "true": true, "y": true, "affirmative": true, "correct": true}
	noSynonyms  = map[string]bool{"no": true, "false": true, "n": true, "negative": true}
)

// MatchOption picks the option best matching a resolved value: exact
// case-insensitive match, then substring containment in either direction,
// then a yes/no synonym table. Empty result means leave the control unset.
func MatchOption(value string, options []string) string {
	if value == "" || len(options) == 0 {
		return ""
	}
	lower := strings.ToLower(strings.TrimSpace(value))

	for _, opt := range options {
		if strings.ToLower(strings.TrimSpace(opt)) == lower {
			return opt
		}
	}

	for _, opt := range options {
		optLower := strings.ToLower(strings.TrimSpace(opt))
		if strings.Contains(optLower, lower) || strings.Contains(lower, optLower) {
			return opt
		}
	}

	wantYes := yesSynonyms[lower]
	wantNo := noSynonyms[lower]
	if wantYes || wantNo {
		for _, opt := range options {
			optLower := strings.ToLower(strings.TrimSpace(opt))
			if (wantYes && yesSynonyms[optLower]) || (wantNo && noSynonyms[optLower]) {
				return opt
			}
		}
	}

	return ""
}

// YearsOfExperience sums the months spanned by every experience entry and
// rounds the total to the nearest whole year (18 months reads as 2 years).
func YearsOfExperience(experience []models.Experience) string {
	totalMonths := 0
	now := time.Now()

	for _, exp := range experience {
		start, err := parseMonth(exp.StartDate)
		if err != nil {
			continue
		}
		end := now
		if exp.EndDate != "" && !exp.IsCurrent {
			if parsed, err := parseMonth(exp.EndDate); err == nil {
				end = parsed
			}
		}
		months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
		if months > 0 {
			totalMonths += months
		}
	}

	years := int(math.Round(float64(totalMonths) / 12.0))
	return strconv.Itoa(years)
}

func parseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "2006-01", "01/2006", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// repairDefault picks a sensible value for a field that is still empty after
// the first submit attempt, keyed by its label pattern.
func (f *FormFiller) repairDefault(field models.FormField, profile *models.Profile) string {
	if v, ok := f.ResolveProfileValue(field, profile); ok {
		return v
	}
	switch field.Type {
	case "checkbox":
		return "Yes"
	case "select", "radio":
		if len(field.Options) > 0 {
			return field.Options[0]
		}
		return ""
	default:
		log.Printf("No repair default for field %q, using N/A", field.Label)
		return "N/A"
	}
}
