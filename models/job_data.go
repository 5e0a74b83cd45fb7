package models

// UnknownTitle is the sentinel used when no scraper strategy could resolve a
// job title. Submission is refused while the title is still the sentinel
// unless the run is a dry run.
const UnknownTitle = "Unknown Position"

// FormField represents one input control discovered on an application form.
// Fields are ephemeral: they are scoped to a single scrape of a single page.
type FormField struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"` // text, email, tel, select, textarea, file, checkbox, radio
	Label    string   `json:"label"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	Value    string   `json:"value,omitempty"`
}

// CustomQuestion is a platform-specific free-form question that does not map
// onto a standard profile field. Answer stays empty until resolved and is
// written at most once per question per job.
type CustomQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	Answer   string   `json:"answer,omitempty"`
}

// JobData is the structured representation of a scraped job posting. It is
// produced once per scrape and treated as immutable afterwards, except for
// CustomQuestions[i].Answer which is filled progressively.
type JobData struct {
	URL             string           `json:"url"`
	Platform        string           `json:"platform"`
	Title           string           `json:"title"`
	Company         string           `json:"company"`
	Description     string           `json:"description"`
	Requirements    []string         `json:"requirements"`
	Qualifications  []string         `json:"qualifications"`
	Location        string           `json:"location,omitempty"`
	Salary          string           `json:"salary,omitempty"`
	JobType         string           `json:"job_type,omitempty"`
	FormFields      []FormField      `json:"form_fields"`
	CustomQuestions []CustomQuestion `json:"custom_questions"`
}

// TitleResolved reports whether extraction produced a real title rather than
// the sentinel.
func (j *JobData) TitleResolved() bool {
	return j.Title != "" && j.Title != UnknownTitle
}

// SubmissionResult is the terminal record of one submission attempt.
// Written once, never mutated.
type SubmissionResult struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	ScreenshotPath string   `json:"screenshot_path,omitempty"`
	Errors         []string `json:"errors"`
}
