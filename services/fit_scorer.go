package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"jobpilot/models"
)

var scorePattern = regexp.MustCompile(`\b(\d{1,3})\b`)

// FitScorer produces a 0-100 estimate of how well the candidate matches a
// job. Used as an optional submission gate; a scoring failure never fails
// the job.
type FitScorer struct {
	ai AIProvider
}

func NewFitScorer(ai AIProvider) *FitScorer {
	return &FitScorer{ai: ai}
}

// Score asks the AI provider for a match score and parses the first number
// in the response, clamped to [0, 100].
func (s *FitScorer) Score(job *models.JobData, profile *models.Profile) (int, error) {
	if s.ai == nil || !s.ai.IsAvailable() {
		return 0, ErrAIUnavailable
	}

	prompt := fmt.Sprintf(`Rate how well this candidate matches the job on a scale of 0 to 100.
Respond with only the number.

Job: %s at %s
Requirements:
%s
Nice to have:
%s

Candidate skills: %s
Candidate experience: %s years
Current role: %s at %s`,
		job.Title, job.Company,
		bulletList(job.Requirements), bulletList(job.Qualifications),
		strings.Join(profile.Skills, ", "),
		YearsOfExperience(profile.Experience),
		profile.CurrentTitle(), profile.CurrentCompany())

	response, err := s.ai.GenerateText(prompt, "You are a technical recruiter scoring candidate/job fit.")
	if err != nil {
		return 0, err
	}

	match := scorePattern.FindStringSubmatch(StripCodeFences(response))
	if match == nil {
		return 0, fmt.Errorf("no score found in response %q", response)
	}
	score, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, err
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "- (none listed)"
	}
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
