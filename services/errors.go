package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAIUnavailable is returned when document generation needs the AI provider
// and it is not configured. Fatal for the current job only.
var ErrAIUnavailable = errors.New("AI provider is not available")

// NavigationError means the job page failed to load. Fatal for that job;
// the batch continues.
type NavigationError struct {
	Platform string
	URL      string
	Err      error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("failed to load %s page %s: %v", e.Platform, e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// ValidationGateError blocks a real submission when the job title could not
// be resolved during extraction.
type ValidationGateError struct {
	URL string
}

func (e *ValidationGateError) Error() string {
	return fmt.Sprintf("job title could not be resolved for %s; refusing to submit (use dry run to record anyway)", e.URL)
}

// SubmissionError collects everything that went wrong during one submission
// attempt. The job is marked failed with the clearest available message.
type SubmissionError struct {
	Platform string
	URL      string
	Errors   []string
}

func (e *SubmissionError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("submission failed on %s for %s", e.Platform, e.URL)
	}
	return fmt.Sprintf("submission failed on %s for %s: %s", e.Platform, e.URL, strings.Join(e.Errors, "; "))
}
