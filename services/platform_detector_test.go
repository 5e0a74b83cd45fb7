package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://boards.greenhouse.io/acme/jobs/4031985008", PlatformGreenhouse},
		{"https://job-boards.greenhouse.io/stripe/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/netflix/9aa1a323", PlatformLever},
		{"https://www.linkedin.com/jobs/view/3754892610", PlatformLinkedIn},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/REQ-1234", PlatformWorkday},
		{"https://acme.myworkday.com/careers", PlatformWorkday},
		{"https://acme.bamboohr.com/careers/42", PlatformBambooHR},
		{"https://acme.pinpointhq.com/en/postings/8f3", PlatformPinpoint},
		{"https://careers.acme.com/jobs/senior-engineer", PlatformGeneric},
		{"https://example.org/opening", PlatformGeneric},
		{"", PlatformGeneric},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetectPlatform(tt.url), "url: %s", tt.url)
	}
}

func TestDetectPlatformIsDeterministic(t *testing.T) {
	url := "https://boards.greenhouse.io/acme/jobs/1"
	first := DetectPlatform(url)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DetectPlatform(url))
	}
}

func TestDetectPlatformCaseInsensitive(t *testing.T) {
	assert.Equal(t, PlatformGreenhouse, DetectPlatform("HTTPS://BOARDS.GREENHOUSE.IO/ACME/JOBS/1"))
	assert.Equal(t, PlatformLever, DetectPlatform("https://JOBS.LEVER.CO/acme/1"))
}

func TestKnownPlatforms(t *testing.T) {
	platforms := KnownPlatforms()

	assert.Len(t, platforms, 7)
	assert.Equal(t, PlatformGeneric, platforms[len(platforms)-1], "generic must be last")

	seen := make(map[string]bool)
	for _, p := range platforms {
		assert.False(t, seen[p], "duplicate platform %s", p)
		seen[p] = true
	}
}
