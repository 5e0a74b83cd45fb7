package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleDescription = `About the Role
We build payment infrastructure for marketplaces.

Responsibilities
- Own the settlement pipeline
- Review code

Requirements
- 5+ years of Go experience
- Production experience with PostgreSQL
- Strong written communication

Nice to have
- Kubernetes operations
- Payments domain background

Benefits
- Health insurance
- 401k matching`

func TestPartitionDescription(t *testing.T) {
	requirements, qualifications := PartitionDescription(sampleDescription)

	assert.Equal(t, []string{
		"5+ years of Go experience",
		"Production experience with PostgreSQL",
		"Strong written communication",
	}, requirements)

	assert.Equal(t, []string{
		"Kubernetes operations",
		"Payments domain background",
	}, qualifications)
}

func TestPartitionDescriptionNoOverlap(t *testing.T) {
	requirements, qualifications := PartitionDescription(sampleDescription)

	seen := make(map[string]bool)
	for _, r := range requirements {
		seen[r] = true
	}
	for _, q := range qualifications {
		assert.False(t, seen[q], "%q appears in both sections", q)
	}

	// Bullets outside the two sections never leak in.
	for _, r := range append(requirements, qualifications...) {
		assert.NotContains(t, r, "settlement pipeline")
		assert.NotContains(t, r, "Health insurance")
	}
}

func TestPartitionDescriptionEmptyAndHeaderless(t *testing.T) {
	requirements, qualifications := PartitionDescription("")
	assert.Empty(t, requirements)
	assert.Empty(t, qualifications)

	requirements, qualifications = PartitionDescription("Just a paragraph.\n- a stray bullet\nAnother paragraph.")
	assert.Empty(t, requirements, "bullets before any header are ignored")
	assert.Empty(t, qualifications)
}

// "Bonus" ends a section; it does not open the qualifications section the
// way "Nice to have" does.
func TestPartitionDescriptionBonusHeadingEndsSection(t *testing.T) {
	description := `Requirements
- 5+ years of Go experience

Bonus
- Kubernetes operations
- Payments domain background`

	requirements, qualifications := PartitionDescription(description)

	assert.Equal(t, []string{"5+ years of Go experience"}, requirements)
	assert.Empty(t, qualifications, "bullets under a Bonus heading are outside both sections")
}

// A bullet whose own text contains a header keyword is consumed as a header
// instead of being collected. That behavior is documented and relied upon
// downstream; this test pins it.
func TestPartitionDescriptionBulletContainingHeaderKeyword(t *testing.T) {
	description := `Requirements
- Solid Go skills
- You must have strong SQL knowledge
- Great teamwork`

	requirements, qualifications := PartitionDescription(description)

	assert.Equal(t, []string{"Solid Go skills", "Great teamwork"}, requirements)
	assert.Empty(t, qualifications)
	assert.NotContains(t, requirements, "You must have strong SQL knowledge")
}
