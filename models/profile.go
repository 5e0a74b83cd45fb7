package models

import "strings"

// Profile is the candidate's data as supplied by the caller. The automation
// engine only reads it.
type Profile struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	Location        string       `json:"location"`
	LinkedIn        string       `json:"linkedin"`
	GitHub          string       `json:"github"`
	Portfolio       string       `json:"portfolio"`
	Skills          []string     `json:"skills"`
	Experience      []Experience `json:"experience"`
	Education       []Education  `json:"education"`
	Preferences     Preferences  `json:"preferences"`
	BaseResume      string       `json:"base_resume"`
	BaseCoverLetter string       `json:"base_cover_letter"`
}

// Experience is one work history entry. Dates use "2006-01" or
// "2006-01-02" formats; EndDate empty means current.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	IsCurrent   bool   `json:"is_current"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Field       string `json:"field"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type Preferences struct {
	RemoteOnly    bool   `json:"remote_only"`
	DesiredSalary string `json:"desired_salary"`
	NoticePeriod  string `json:"notice_period"`
	StartDate     string `json:"start_date"`
}

// FirstName returns the first whitespace-separated token of Name.
func (p *Profile) FirstName() string {
	parts := strings.Fields(p.Name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// LastName returns everything after the first token, joined.
func (p *Profile) LastName() string {
	parts := strings.Fields(p.Name)
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], " ")
}

// CurrentCompany returns the company of the most recent experience entry.
func (p *Profile) CurrentCompany() string {
	for _, exp := range p.Experience {
		if exp.IsCurrent || exp.EndDate == "" {
			return exp.Company
		}
	}
	if len(p.Experience) > 0 {
		return p.Experience[0].Company
	}
	return ""
}

// CurrentTitle returns the title of the most recent experience entry.
func (p *Profile) CurrentTitle() string {
	for _, exp := range p.Experience {
		if exp.IsCurrent || exp.EndDate == "" {
			return exp.Title
		}
	}
	if len(p.Experience) > 0 {
		return p.Experience[0].Title
	}
	return ""
}
