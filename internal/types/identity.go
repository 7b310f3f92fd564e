package types

import (
	"encoding/json"
	"strings"
)

// IdentityMatch is the best-matching record returned by the identity-graph
// provider, together with its match confidence. The confidence scale is
// ambiguous upstream (0-1 or 0-100); normalization happens in the risk
// assessor, not here.
type IdentityMatch struct {
	Profile    IdentityProfile `json:"data"`
	MatchScore float64         `json:"match_score"`
	MatchedOn  []string        `json:"matched_on,omitempty"`
}

// IdentityProfile is the structured person record from the identity-graph
// provider. Nested objects are pointers so a missing object degrades to an
// absent field instead of a decode error.
type IdentityProfile struct {
	FullName       string               `json:"full_name,omitempty"`
	JobTitle       string               `json:"job_title,omitempty"`
	JobCompanyName string               `json:"job_company_name,omitempty"`
	Regions        []string             `json:"regions,omitempty"`
	Experience     []IdentityExperience `json:"experience,omitempty"`
	Education      []IdentityEducation  `json:"education,omitempty"`
	Profiles       []IdentityNetwork    `json:"profiles,omitempty"`
}

// HasPrimaryJob reports whether the profile carries a top-level current job.
// When it does, the provider's experience list wins outright over AI-sourced
// employment to avoid two conflicting "current job" narratives.
func (p IdentityProfile) HasPrimaryJob() bool {
	return p.JobTitle != "" || p.JobCompanyName != ""
}

// IdentityExperience is a single experience entry.
type IdentityExperience struct {
	StartDate string           `json:"start_date,omitempty"`
	EndDate   string           `json:"end_date,omitempty"`
	Company   *IdentityCompany `json:"company,omitempty"`
	Title     *IdentityTitle   `json:"title,omitempty"`
}

// IdentityCompany is the employer half of an experience entry.
type IdentityCompany struct {
	Name     string            `json:"name,omitempty"`
	Location *IdentityLocation `json:"location,omitempty"`
}

// IdentityTitle is the role half of an experience entry.
type IdentityTitle struct {
	Name string `json:"name,omitempty"`
}

// IdentityLocation is a structured place reference.
type IdentityLocation struct {
	Locality string `json:"locality,omitempty"`
	Region   string `json:"region,omitempty"`
	Country  string `json:"country,omitempty"`
}

// Label joins the non-empty parts as "locality, region, country".
func (l *IdentityLocation) Label() string {
	if l == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Locality, l.Region, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// IdentityEducation is a single education entry.
type IdentityEducation struct {
	StartDate string          `json:"start_date,omitempty"`
	EndDate   string          `json:"end_date,omitempty"`
	School    *IdentitySchool `json:"school,omitempty"`
	Degrees   []DegreeList    `json:"degrees,omitempty"`
}

// IdentitySchool describes the institution of an education entry.
type IdentitySchool struct {
	Name     string            `json:"name,omitempty"`
	Type     string            `json:"type,omitempty"`
	Location *IdentityLocation `json:"location,omitempty"`
}

// IdentityNetwork is an online profile reference (network + url).
type IdentityNetwork struct {
	Network string `json:"network,omitempty"`
	URL     string `json:"url,omitempty"`
}

// DegreeList is a degree entry that upstream sometimes encodes as a plain
// string and sometimes as an array of strings.
type DegreeList []string

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (d *DegreeList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*d = DegreeList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*d = DegreeList(many)
	return nil
}

// Join flattens the degree list with ", ".
func (d DegreeList) Join() string { return strings.Join(d, ", ") }
