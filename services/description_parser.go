package services

import (
	"regexp"
	"strings"
)

// Header and boundary keywords for partitioning a free-text job description
// into requirements and qualifications. A line matching a header keyword
// starts (or ends) a section; only bullet lines inside an active section are
// collected.
//
// Known limitation, kept on purpose: a bullet whose own text contains a
// header keyword ("- You must have 3+ years...") is treated as a new header
// and dropped. Downstream consumers rely on the current behavior, so it is
// pinned by tests rather than fixed.
var (
	requirementsHeader   = regexp.MustCompile(`(?i)\b(requirements|must have|you will need)\b`)
	qualificationsHeader = regexp.MustCompile(`(?i)\b(nice to have|preferred|qualifications)\b`)
	sectionBoundary      = regexp.MustCompile(`(?i)\b(responsibilities|benefits|bonus|what we offer|about (the )?(role|team|company|us)|perks|compensation|how to apply|interview process|our values)\b`)
	bulletLine           = regexp.MustCompile(`^\s*[-•*]\s+(.+)$`)
)

type descriptionSection int

const (
	sectionNone descriptionSection = iota
	sectionRequirements
	sectionQualifications
)

// PartitionDescription splits bullet points in a job description into
// requirements and qualifications using header-keyword detection.
func PartitionDescription(description string) (requirements, qualifications []string) {
	section := sectionNone

	for _, line := range strings.Split(description, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Header checks come before the bullet check; that ordering is what
		// produces the documented bullet-as-header artifact.
		switch {
		case qualificationsHeader.MatchString(trimmed):
			section = sectionQualifications
			continue
		case requirementsHeader.MatchString(trimmed):
			section = sectionRequirements
			continue
		case sectionBoundary.MatchString(trimmed):
			section = sectionNone
			continue
		}

		if section == sectionNone {
			continue
		}
		m := bulletLine.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[1])
		if text == "" {
			continue
		}
		switch section {
		case sectionRequirements:
			requirements = append(requirements, text)
		case sectionQualifications:
			qualifications = append(qualifications, text)
		}
	}

	return requirements, qualifications
}
