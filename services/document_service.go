package services

import (
	"fmt"
	"strings"

	"jobpilot/models"
)

// DocumentService generates a tailored resume and cover letter through the
// AI provider. Rendering the text into a document format happens outside
// this engine.
type DocumentService struct {
	ai AIProvider
}

func NewDocumentService(ai AIProvider) *DocumentService {
	return &DocumentService{ai: ai}
}

// GenerateResume tailors the candidate's base resume to the job. Returns
// ErrAIUnavailable when no provider is configured, which is fatal for the
// current job only.
func (s *DocumentService) GenerateResume(job *models.JobData, profile *models.Profile) (string, error) {
	if s.ai == nil || !s.ai.IsAvailable() {
		return "", ErrAIUnavailable
	}

	prompt := fmt.Sprintf(`You are an expert resume writer.

Tailor the candidate's resume below for the following job. Emphasize the
skills and experience matching the requirements. Keep it truthful; never
invent experience.

Job: %s at %s
Requirements:
%s

Candidate skills: %s

Base resume:
%s

Return only the tailored resume text in clear, concise bullet points.`,
		job.Title, job.Company, bulletList(job.Requirements),
		strings.Join(profile.Skills, ", "), profile.BaseResume)

	text, err := s.ai.GenerateText(prompt, "")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GenerateCoverLetter writes a cover letter for the job in the candidate's
// voice, seeded with their base cover letter when present.
func (s *DocumentService) GenerateCoverLetter(job *models.JobData, profile *models.Profile) (string, error) {
	if s.ai == nil || !s.ai.IsAvailable() {
		return "", ErrAIUnavailable
	}

	seed := profile.BaseCoverLetter
	if seed == "" {
		seed = "(no base cover letter, write from the resume)"
	}

	prompt := fmt.Sprintf(`Write a concise cover letter (under 300 words) for this application.

Job: %s at %s
Key requirements:
%s

Candidate: %s, currently %s at %s
Skills: %s

Base cover letter for tone and voice:
%s

Return only the letter text.`,
		job.Title, job.Company, bulletList(job.Requirements),
		profile.Name, profile.CurrentTitle(), profile.CurrentCompany(),
		strings.Join(profile.Skills, ", "), seed)

	text, err := s.ai.GenerateText(prompt, "")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
