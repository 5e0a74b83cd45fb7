package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanyFromURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://careers.acme-corp.com/jobs/1", "Acme Corp"},
		{"https://www.initech.com/careers", "Initech"},
		{"https://jobs.hooli.io/opening/2", "Hooli"},
		{"https://big_data_labs.com/positions", "Big Data Labs"},
		{"://bad", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, companyFromURL(tt.url), "url: %s", tt.url)
	}
}
