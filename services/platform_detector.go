package services

import "regexp"

// Platform identifiers. PlatformGeneric is the catch-all: detection is total
// and never fails.
const (
	PlatformGreenhouse = "greenhouse"
	PlatformLever      = "lever"
	PlatformLinkedIn   = "linkedin"
	PlatformWorkday    = "workday"
	PlatformBambooHR   = "bamboohr"
	PlatformPinpoint   = "pinpoint"
	PlatformGeneric    = "generic"
)

// platformPatterns is an ordered table of (platform, pattern) pairs. The
// first match wins. Patterns must stay mutually exclusive on real-world
// URLs; the test suite enforces that.
var platformPatterns = []struct {
	platform string
	pattern  *regexp.Regexp
}{
	{PlatformGreenhouse, regexp.MustCompile(`(?i)greenhouse\.io`)},
	{PlatformLever, regexp.MustCompile(`(?i)lever\.co`)},
	{PlatformLinkedIn, regexp.MustCompile(`(?i)linkedin\.com`)},
	{PlatformWorkday, regexp.MustCompile(`(?i)myworkday(jobs)?\.com`)},
	{PlatformBambooHR, regexp.MustCompile(`(?i)bamboohr\.com`)},
	{PlatformPinpoint, regexp.MustCompile(`(?i)pinpointhq\.com`)},
}

// DetectPlatform maps a job URL to a platform identifier. Unrecognized URLs
// map to PlatformGeneric.
func DetectPlatform(rawURL string) string {
	for _, entry := range platformPatterns {
		if entry.pattern.MatchString(rawURL) {
			return entry.platform
		}
	}
	return PlatformGeneric
}

// KnownPlatforms lists every platform identifier, generic last.
func KnownPlatforms() []string {
	platforms := make([]string, 0, len(platformPatterns)+1)
	for _, entry := range platformPatterns {
		platforms = append(platforms, entry.platform)
	}
	return append(platforms, PlatformGeneric)
}
