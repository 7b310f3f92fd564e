// Package summary builds the deterministic profile sentence from structured
// facts and merges it with the AI provider's free-text summary without
// duplicating claims.
package summary

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rented123/tenant-screener/internal/dates"
	"github.com/rented123/tenant-screener/internal/types"
)

// degreeRanks orders credentials: doctorate > master's > bachelor's >
// associate > diploma/certificate. Unrecognized degrees rank 0.
var degreeRanks = map[string]int{
	"phd":                  5,
	"doctorate":            5,
	"doctor of philosophy": 5,
	"masters":              4,
	"master":               4,
	"msc":                  4,
	"ma":                   4,
	"meng":                 4,
	"mba":                  4,
	"mfa":                  4,
	"bachelors":            3,
	"bachelor":             3,
	"bsc":                  3,
	"ba":                   3,
	"beng":                 3,
	"bba":                  3,
	"bed":                  3,
	"associate":            2,
	"assoc":                2,
	"aa":                   2,
	"as":                   2,
	"diploma":              1,
	"cert":                 1,
	"certificate":          1,
}

var (
	canadaRe = regexp.MustCompile(`(^|[, ])canada\b`)
	usRe     = regexp.MustCompile(`united states|usa|u\.s\.a\.|u\.s\.`)
)

// Synthesize produces the deterministic sentence from the person's
// employment, education, and location facts: up to three clauses in that
// order, or "" when no clause applies.
func Synthesize(person types.CanonicalPerson, fullName string, now time.Time) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = "This person"
	}

	var parts []string
	if s := employmentClause(person.EmploymentHistory, name, now); s != "" {
		parts = append(parts, s)
	}
	if s := educationClause(person.EducationHistory); s != "" {
		parts = append(parts, s)
	}
	if s := locationClause(person.LocationHistory); s != "" {
		parts = append(parts, s)
	}
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, " ")
}

func employmentClause(jobs []types.Employment, name string, now time.Time) string {
	companies := map[string]struct{}{}
	var earliest, latest time.Time
	for _, j := range jobs {
		if co := strings.ToLower(strings.TrimSpace(j.Company)); co != "" {
			companies[co] = struct{}{}
		}
		if start, ok := dates.ParseYMD(j.StartDate); ok {
			if earliest.IsZero() || start.Before(earliest) {
				earliest = start
			}
		}
		end := now
		if parsed, ok := dates.ParseYMD(j.EndDate); ok {
			end = parsed
		}
		if latest.IsZero() || end.After(latest) {
			latest = end
		}
	}

	spanStr := ""
	if span := dates.YearsBetween(earliest, latest); span > 0 {
		if span >= 1 {
			spanStr = fmt.Sprintf("%s years", trimFloat(span))
		} else {
			spanStr = fmt.Sprintf("%d months", int(span*12+0.5))
		}
	}

	current := currentRole(jobs)
	hasSignal := len(companies) > 0 || spanStr != "" ||
		(current != nil && (current.Position != "" || current.Company != ""))
	if !hasSignal {
		return ""
	}

	sentence := name + " has "
	if spanStr != "" {
		sentence += spanStr + " experience"
	} else {
		sentence += "professional experience"
	}
	if n := len(companies); n > 0 {
		noun := "companies"
		if n == 1 {
			noun = "company"
		}
		sentence += fmt.Sprintf(" across %d %s", n, noun)
	}
	if current != nil && (current.Position != "" || current.Company != "") {
		role := "working"
		if current.Position != "" {
			role = titleCase(current.Position)
		}
		sentence += ". Currently " + role
		if current.Company != "" {
			sentence += " at " + titleCase(current.Company)
		}
	}
	return sentence + "."
}

// currentRole picks the "current" entry: first with no end date, else the
// most recent end date, else the most recent start date.
func currentRole(jobs []types.Employment) *types.Employment {
	if len(jobs) == 0 {
		return nil
	}
	for i := range jobs {
		if jobs[i].EndDate == "" {
			return &jobs[i]
		}
	}
	best := -1
	var bestEnd time.Time
	for i := range jobs {
		if end, ok := dates.ParseYMD(jobs[i].EndDate); ok && (best < 0 || end.After(bestEnd)) {
			best, bestEnd = i, end
		}
	}
	if best >= 0 {
		return &jobs[best]
	}
	best = -1
	var bestStart time.Time
	for i := range jobs {
		if start, ok := dates.ParseYMD(jobs[i].StartDate); ok && (best < 0 || start.After(bestStart)) {
			best, bestStart = i, start
		}
	}
	if best >= 0 {
		return &jobs[best]
	}
	return &jobs[0]
}

func educationClause(education []types.Education) string {
	top := pickTopEducation(education)
	if top == nil {
		return ""
	}
	deg := normalizeDegreeName(top.Degree)
	school := titleCase(top.School)
	var bits []string
	switch {
	case deg != "" && school != "":
		bits = append(bits, fmt.Sprintf("a %s from %s", deg, school))
	case deg != "":
		bits = append(bits, deg)
	case school != "":
		bits = append(bits, "studies at "+school)
	}
	if year := gradYear(*top); year > 0 {
		bits = append(bits, fmt.Sprintf("(%d)", year))
	}
	if len(bits) == 0 {
		return ""
	}
	return "Education includes " + strings.Join(bits, " ") + "."
}

// pickTopEducation chooses the highest-ranked credential, tie-broken by the
// most recent graduation year.
func pickTopEducation(education []types.Education) *types.Education {
	var best *types.Education
	bestRank, bestYear := -1, -1
	for i := range education {
		rank := degreeRank(education[i].Degree)
		year := gradYear(education[i])
		if rank > bestRank || (rank == bestRank && year > bestYear) {
			best, bestRank, bestYear = &education[i], rank, year
		}
	}
	return best
}

func degreeRank(degree string) int {
	if degree == "" {
		return 0
	}
	low := strings.ToLower(degree)
	best := 0
	for k, v := range degreeRanks {
		if strings.Contains(low, k) && v > best {
			best = v
		}
	}
	return best
}

// gradYear parses the graduation year from the end date, falling back to the
// start date. Returns 0 when neither parses.
func gradYear(edu types.Education) int {
	if d, ok := dates.ParseYMD(edu.EndDate); ok {
		return d.Year()
	}
	if d, ok := dates.ParseYMD(edu.StartDate); ok {
		return d.Year()
	}
	return 0
}

var degreeNames = []struct {
	pattern *regexp.Regexp
	name    string
}{
	{regexp.MustCompile(`phd|doctor of philosophy|doctorate`), "Ph.D."},
	{regexp.MustCompile(`mba`), "MBA"},
	{regexp.MustCompile(`msc|m\.sc|master of science|masters`), "Master of Science"},
	{regexp.MustCompile(`\bma\b|m\.a|master of arts`), "Master of Arts"},
	{regexp.MustCompile(`meng|m\.eng`), "Master of Engineering"},
	{regexp.MustCompile(`bsc|b\.sc|bachelor of science|bachelors`), "Bachelor of Science"},
	{regexp.MustCompile(`\bba\b|b\.a|bachelor of arts`), "Bachelor of Arts"},
	{regexp.MustCompile(`beng|b\.eng`), "Bachelor of Engineering"},
	{regexp.MustCompile(`associate`), "Associate Degree"},
	{regexp.MustCompile(`diploma`), "Diploma"},
	{regexp.MustCompile(`certificate|cert\b`), "Certificate"},
}

func normalizeDegreeName(degree string) string {
	if degree == "" {
		return ""
	}
	low := strings.ToLower(degree)
	for _, d := range degreeNames {
		if d.pattern.MatchString(low) {
			return d.name
		}
	}
	return titleCase(degree)
}

func locationClause(locs []types.Location) string {
	var countries []string
	seen := map[string]struct{}{}
	for _, loc := range locs {
		country := loc.Country
		if country == "" {
			country = countryFromLabel(loc.Label())
		}
		if country == "" {
			continue
		}
		if _, dup := seen[country]; dup {
			continue
		}
		seen[country] = struct{}{}
		countries = append(countries, country)
	}

	switch len(countries) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("Location history shows time in %s.", countries[0])
	case 2:
		return fmt.Sprintf("Location history spans %s and %s.", countries[0], countries[1])
	default:
		// Comma list with a final "and".
		head := strings.Join(countries[:len(countries)-1], ", ")
		return fmt.Sprintf("Location history spans %s and %s.", head, countries[len(countries)-1])
	}
}

// countryFromLabel recognizes Canada and United States spellings in a
// free-text location label.
func countryFromLabel(label string) string {
	low := strings.ToLower(label)
	if canadaRe.MatchString(low) {
		return "Canada"
	}
	if usRe.MatchString(low) {
		return "United States"
	}
	return ""
}

// titleCase uppercases the first letter of each word, collapsing whitespace.
func titleCase(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return strings.Join(fields, " ")
}

// trimFloat renders 7.0 as "7" and 7.5 as "7.5".
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.1f", f)
	return strings.TrimSuffix(s, ".0")
}
