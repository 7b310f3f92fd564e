package fusion

import (
	"strings"

	"github.com/rented123/tenant-screener/internal/types"
)

// Merge combines the AI fragment (base) with the identity-graph fragment
// (overlay) into one canonical record:
//
//   - employment: when the identity profile reported a top-level current job,
//     its experience list replaces the AI history outright; otherwise the AI
//     entries come first with identity experience appended.
//   - education: the identity list replaces the base outright when non-empty
//     (the AI path has no education to merge against).
//   - social profiles: concatenated, AI list first.
//   - locations: concatenated base-then-overlay, then deduplicated by
//     normalized label, keeping the first occurrence.
//
// The short summary is NOT merged here; the summary builder owns that.
// With both providers failed this still returns a valid, fully-defaulted
// record: "person not found" is a representable state, not an error.
func Merge(ai, identity Fragment) types.CanonicalPerson {
	person := ai.Person

	if identity.HasPrimaryJob {
		person.EmploymentHistory = append([]types.Employment{}, identity.Person.EmploymentHistory...)
	} else {
		person.EmploymentHistory = append(person.EmploymentHistory, identity.Person.EmploymentHistory...)
	}

	if len(identity.Person.EducationHistory) > 0 {
		person.EducationHistory = append([]types.Education{}, identity.Person.EducationHistory...)
	}

	person.SocialMediaProfiles = append(person.SocialMediaProfiles, identity.Person.SocialMediaProfiles...)

	combined := append(append([]types.Location{}, person.LocationHistory...), identity.Person.LocationHistory...)
	person.LocationHistory = dedupeLocations(combined)

	return person
}

// Found reports whether either provider produced a usable person: the AI
// agent found signals, or the identity graph returned a match.
func Found(ai types.ProviderResult[types.AiFindings], identity types.ProviderResult[types.IdentityMatch]) bool {
	if identity.OK {
		return true
	}
	return ai.OK && ai.Data != nil && ai.Data.FoundPerson
}

// dedupeLocations keeps the first occurrence of each normalized label,
// preserving arrival order. A label-less entry (dates only) still counts
// as one location and is kept; only repeats of it are dropped.
func dedupeLocations(locs []types.Location) []types.Location {
	out := make([]types.Location, 0, len(locs))
	seen := make(map[string]struct{}, len(locs))
	for _, loc := range locs {
		key := NormalizeLabel(loc.Label())
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, loc)
	}
	return out
}

// NormalizeLabel lowercases, collapses internal whitespace, and trims a
// location label for duplicate comparison.
func NormalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}
