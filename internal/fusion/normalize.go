// Package fusion reconciles the two provider payloads into one canonical
// person record: per-provider normalization into a common fragment shape,
// then a merge with fixed precedence and location deduplication.
package fusion

import (
	"github.com/rented123/tenant-screener/internal/types"
)

// Fragment is a partial CanonicalPerson produced from a single provider.
// Every list is non-nil; a failed provider normalizes to an empty fragment.
type Fragment struct {
	Person types.CanonicalPerson

	// HasPrimaryJob is set on the identity-graph fragment when the profile
	// reported a top-level current job; it drives employment precedence.
	HasPrimaryJob bool
}

// EmptyFragment returns a fully-defaulted fragment.
func EmptyFragment() Fragment {
	return Fragment{Person: types.NewCanonicalPerson()}
}

// NormalizeAiFindings maps the AI investigator result into a fragment. The AI
// path supplies everything except education; field names already line up, so
// the mapping is mostly a defaulted copy. A failed call yields an empty
// fragment, never an error.
func NormalizeAiFindings(res types.ProviderResult[types.AiFindings]) Fragment {
	frag := EmptyFragment()
	if !res.OK || res.Data == nil {
		return frag
	}
	data := res.Data

	frag.Person.EmploymentHistory = append(frag.Person.EmploymentHistory, data.EmploymentHistory...)
	frag.Person.LocationHistory = append(frag.Person.LocationHistory, data.LocationHistory...)
	frag.Person.PressMentions = append(frag.Person.PressMentions, data.PressMentions...)
	frag.Person.LegalAppearances = append(frag.Person.LegalAppearances, data.LegalAppearances...)
	frag.Person.SocialMediaProfiles = append(frag.Person.SocialMediaProfiles, data.SocialMediaProfiles...)
	frag.Person.CompanyRegistrations = append(frag.Person.CompanyRegistrations, data.CompanyRegistrations...)
	frag.Person.PublicComments = append(frag.Person.PublicComments, data.PublicComments...)
	frag.Person.Others = append(frag.Person.Others, data.Others...)
	if data.FoundPerson {
		frag.Person.ShortSummary = data.ShortSummary
	}
	return frag
}

// NormalizeIdentityMatch maps the identity-graph result into a fragment. A
// low-confidence or negative match arrives as ok=false and must not leak
// partial fields, so it yields an entirely empty fragment.
func NormalizeIdentityMatch(res types.ProviderResult[types.IdentityMatch]) Fragment {
	frag := EmptyFragment()
	if !res.OK || res.Data == nil {
		return frag
	}
	profile := res.Data.Profile
	frag.HasPrimaryJob = profile.HasPrimaryJob()

	for _, exp := range profile.Experience {
		entry := types.Employment{
			StartDate: exp.StartDate,
			EndDate:   exp.EndDate,
		}
		if exp.Company != nil {
			entry.Company = exp.Company.Name
		}
		if exp.Title != nil {
			entry.Position = exp.Title.Name
		}
		frag.Person.EmploymentHistory = append(frag.Person.EmploymentHistory, entry)
	}

	for _, edu := range profile.Education {
		frag.Person.EducationHistory = append(frag.Person.EducationHistory, normalizeEducation(edu))
	}

	for _, prof := range profile.Profiles {
		frag.Person.SocialMediaProfiles = append(frag.Person.SocialMediaProfiles, types.SocialProfile{
			Platform: prof.Network,
			Link:     prof.URL,
		})
	}

	frag.Person.LocationHistory = append(frag.Person.LocationHistory, identityLocations(profile)...)
	return frag
}

func normalizeEducation(edu types.IdentityEducation) types.Education {
	entry := types.Education{
		StartDate: edu.StartDate,
		EndDate:   edu.EndDate,
	}
	if edu.School != nil {
		entry.School = edu.School.Name
		entry.InstitutionType = edu.School.Type
		if loc := edu.School.Location; loc != nil {
			entry.Location = loc.Locality
			if loc.Region != "" {
				if entry.Location != "" {
					entry.Location += ", "
				}
				entry.Location += loc.Region
			}
		}
	}
	entry.Degree = joinDegrees(edu.Degrees)
	return entry
}

func joinDegrees(degrees []types.DegreeList) string {
	out := ""
	for _, d := range degrees {
		joined := d.Join()
		if joined == "" {
			continue
		}
		if out != "" {
			out += "; "
		}
		out += joined
	}
	return out
}

// identityLocations derives location candidates from three sources, in
// order: top-level regions, experience company locations, and education
// school locations. Deduplication happens later in Merge.
func identityLocations(profile types.IdentityProfile) []types.Location {
	var locs []types.Location
	for _, region := range profile.Regions {
		if region != "" {
			locs = append(locs, types.Location{Raw: region})
		}
	}
	for _, exp := range profile.Experience {
		if exp.Company == nil || exp.Company.Location == nil {
			continue
		}
		if label := exp.Company.Location.Label(); label != "" {
			locs = append(locs, types.Location{Raw: label})
		}
	}
	for _, edu := range profile.Education {
		if edu.School == nil || edu.School.Location == nil {
			continue
		}
		if label := edu.School.Location.Label(); label != "" {
			locs = append(locs, types.Location{Raw: label})
		}
	}
	return locs
}
