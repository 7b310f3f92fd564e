package types

// CanonicalPerson is the single merged, de-duplicated representation of all
// findings about one individual. Every list field is always non-nil so
// presentation code never null-checks; NewCanonicalPerson enforces that.
type CanonicalPerson struct {
	EmploymentHistory    []Employment          `json:"employment_history"`
	EducationHistory     []Education           `json:"education_history"`
	LegalAppearances     []LegalAppearance     `json:"legal_appearances"`
	PressMentions        []PressMention        `json:"press_mentions"`
	SocialMediaProfiles  []SocialProfile       `json:"social_media_profiles"`
	CompanyRegistrations []CompanyRegistration `json:"company_registrations"`
	PublicComments       []PublicComment       `json:"public_comments"`
	LocationHistory      []Location            `json:"location_history"`
	Others               []OtherFinding        `json:"others"`
	ShortSummary         string                `json:"short_summary"`
}

// NewCanonicalPerson returns a person record with every list initialized to
// an empty (non-nil) slice. "Person not found" is this value unchanged.
func NewCanonicalPerson() CanonicalPerson {
	return CanonicalPerson{
		EmploymentHistory:    []Employment{},
		EducationHistory:     []Education{},
		LegalAppearances:     []LegalAppearance{},
		PressMentions:        []PressMention{},
		SocialMediaProfiles:  []SocialProfile{},
		CompanyRegistrations: []CompanyRegistration{},
		PublicComments:       []PublicComment{},
		LocationHistory:      []Location{},
		Others:               []OtherFinding{},
	}
}
