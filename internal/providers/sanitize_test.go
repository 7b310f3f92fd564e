package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rented123/tenant-screener/internal/types"
)

func TestValidCompanyName(t *testing.T) {
	tests := []struct {
		company string
		want    bool
	}{
		{"", false},
		{"X", false},
		{"xxx", false},
		{"XXX", false},
		{"ccc", false},
		{"zzz", false},
		{"abc", false},   // short all-letter placeholder
		{"abcd", false},  // still within the 1-4 letter reject
		{"Inc", false},
		{"LLC", false},
		{"Test", false},
		{"Unknown", false},
		{"n/a", false},
		{"TBD", false},
		{"Fraud", false},
		{"fake", false},
		{"Fraud AI", false},
		{"Fraud AI Inc", false},
		{"Acme Corporation", true},
		{"Testing Labs", true},
		{"IBM Canada", true},
		{"7-Eleven", true},
	}
	for _, tt := range tests {
		t.Run(tt.company, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCompanyName(tt.company), "company %q", tt.company)
		})
	}
}

func TestSanitizeEmployment(t *testing.T) {
	good := types.Employment{Company: "Acme Corporation", Position: "Engineer"}

	t.Run("drops placeholder entries", func(t *testing.T) {
		jobs := []types.Employment{
			good,
			{Company: "xxx", Position: "Engineer"},
			{Company: "Beta Industries", Position: ""},
			{Company: "Beta Industries", Position: "QA"},
			{Company: "Beta Industries", Position: "xxx"},
		}
		assert.Equal(t, []types.Employment{good}, SanitizeEmployment(jobs))
	})

	t.Run("restores original list when filter empties it", func(t *testing.T) {
		jobs := []types.Employment{
			{Company: "xxx", Position: "Engineer"},
			{Company: "Fraud AI", Position: "Engineer"},
		}
		assert.Equal(t, jobs, SanitizeEmployment(jobs))
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		assert.Empty(t, SanitizeEmployment(nil))
	})
}
