package types

import (
	"encoding/json"
	"strings"
)

// AiFindings is the payload returned by the AI web-search investigator.
// Every field inside the array entries is optional; absent values decode to
// empty strings rather than failing.
type AiFindings struct {
	EmploymentHistory    []Employment          `json:"employment_history"`
	LocationHistory      []Location            `json:"location_history"`
	PressMentions        []PressMention        `json:"press_mentions"`
	LegalAppearances     []LegalAppearance     `json:"legal_appearances"`
	SocialMediaProfiles  []SocialProfile       `json:"social_media_profiles"`
	CompanyRegistrations []CompanyRegistration `json:"company_registrations"`
	PublicComments       []PublicComment       `json:"public_comments"`
	Others               []OtherFinding        `json:"others"`
	ShortSummary         string                `json:"short_summary"`
	ResearchLog          []string              `json:"research_log,omitempty"`
	FoundPerson          bool                  `json:"found_person"`
}

// Employment is a single work-history entry. All fields optional.
type Employment struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Company   string `json:"company,omitempty"`
	Position  string `json:"position,omitempty"`
}

// Education is a single education-history entry.
type Education struct {
	StartDate       string `json:"start_date,omitempty"`
	EndDate         string `json:"end_date,omitempty"`
	School          string `json:"school,omitempty"`
	InstitutionType string `json:"institution_type,omitempty"`
	Location        string `json:"location,omitempty"`
	Degree          string `json:"degree,omitempty"`
}

// LegalAppearance is a court or tribunal record surfaced by a provider.
type LegalAppearance struct {
	Date        string `json:"date,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Plaintiff   string `json:"plaintiff,omitempty"`
	Link        string `json:"link,omitempty"`
}

// PressMention is a news or media reference.
type PressMention struct {
	Date        string `json:"date,omitempty"`
	Topic       string `json:"topic,omitempty"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// SocialProfile is an online profile reference.
type SocialProfile struct {
	Platform string `json:"platform,omitempty"`
	Link     string `json:"link,omitempty"`
}

// CompanyRegistration is a business registration or board affiliation.
type CompanyRegistration struct {
	Name string `json:"name,omitempty"`
	Link string `json:"link,omitempty"`
}

// PublicComment is a public forum/blog/social comment.
type PublicComment struct {
	Date     string `json:"date,omitempty"`
	Platform string `json:"platform,omitempty"`
	Content  string `json:"content,omitempty"`
	Link     string `json:"link,omitempty"`
}

// OtherFinding covers anything that does not fit another category.
type OtherFinding struct {
	Note     string `json:"note,omitempty"`
	Link     string `json:"link,omitempty"`
	Platform string `json:"platform,omitempty"`
}

// Location is a location-history entry. Providers return either a plain
// label string or a structured object, so decoding accepts both shapes.
type Location struct {
	// Raw holds the original label when the source was a plain string.
	Raw       string `json:"raw,omitempty"`
	City      string `json:"city,omitempty"`
	Locality  string `json:"locality,omitempty"`
	Town      string `json:"town,omitempty"`
	Region    string `json:"region,omitempty"`
	State     string `json:"state,omitempty"`
	Country   string `json:"country,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
}

// UnmarshalJSON accepts either a JSON string label or a structured object.
func (l *Location) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*l = Location{Raw: label}
		return nil
	}

	type locationAlias Location
	var obj locationAlias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*l = Location(obj)
	return nil
}

// Label assembles a display label: the raw string if present, otherwise the
// non-empty parts of city/region/country joined with ", ".
func (l Location) Label() string {
	if l.Raw != "" {
		return l.Raw
	}
	parts := make([]string, 0, 3)
	if city := firstNonEmpty(l.City, l.Locality, l.Town); city != "" {
		parts = append(parts, city)
	}
	if region := firstNonEmpty(l.Region, l.State); region != "" {
		parts = append(parts, region)
	}
	if l.Country != "" {
		parts = append(parts, l.Country)
	}
	return strings.Join(parts, ", ")
}

// Start returns the start bound, accepting both field spellings.
func (l Location) Start() string { return firstNonEmpty(l.StartDate, l.From) }

// End returns the end bound, accepting both field spellings.
func (l Location) End() string { return firstNonEmpty(l.EndDate, l.To) }

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
