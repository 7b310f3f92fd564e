// Package types provides type definitions for structured data used throughout the tenant-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ProspectInfo holds the identifying fields collected from the intake form.
// Only the name is consumed by the fusion pipeline itself; the rest is passed
// through to the lookup providers.
type ProspectInfo struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	OtherNames string `json:"other_names,omitempty"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	City2      string `json:"city2,omitempty"`
	State2     string `json:"state2,omitempty"`
	DOB        string `json:"dob" validate:"required,datetime=2006-01-02"`
}

// FullName returns the display name, collapsing absent middle names.
func (p ProspectInfo) FullName() string {
	parts := []string{p.FirstName, p.OtherNames, p.LastName}
	kept := parts[:0]
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, strings.TrimSpace(part))
		}
	}
	return strings.Join(kept, " ")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the prospect fields against their validation tags.
func (p ProspectInfo) Validate() error {
	return validate.Struct(p)
}
