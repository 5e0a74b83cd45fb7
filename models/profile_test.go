package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileNameSplitting(t *testing.T) {
	p := &Profile{Name: "Ada Lovelace"}
	assert.Equal(t, "Ada", p.FirstName())
	assert.Equal(t, "Lovelace", p.LastName())

	p = &Profile{Name: "Madonna"}
	assert.Equal(t, "Madonna", p.FirstName())
	assert.Equal(t, "", p.LastName())

	p = &Profile{Name: "Jean Claude Van Damme"}
	assert.Equal(t, "Jean", p.FirstName())
	assert.Equal(t, "Claude Van Damme", p.LastName())

	p = &Profile{}
	assert.Equal(t, "", p.FirstName())
	assert.Equal(t, "", p.LastName())
}

func TestProfileCurrentRole(t *testing.T) {
	p := &Profile{Experience: []Experience{
		{Title: "Staff Engineer", Company: "Initech", StartDate: "2022-01", IsCurrent: true},
		{Title: "Engineer", Company: "Hooli", StartDate: "2019-01", EndDate: "2021-12"},
	}}
	assert.Equal(t, "Initech", p.CurrentCompany())
	assert.Equal(t, "Staff Engineer", p.CurrentTitle())

	empty := &Profile{}
	assert.Equal(t, "", empty.CurrentCompany())
	assert.Equal(t, "", empty.CurrentTitle())
}

func TestTitleResolved(t *testing.T) {
	assert.False(t, (&JobData{Title: UnknownTitle}).TitleResolved())
	assert.False(t, (&JobData{}).TitleResolved())
	assert.True(t, (&JobData{Title: "Backend Engineer"}).TitleResolved())
}
