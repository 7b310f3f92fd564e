package risk

import (
	"fmt"
	"time"

	"github.com/rented123/tenant-screener/internal/dates"
	"github.com/rented123/tenant-screener/internal/types"
)

// Lookback windows and rule weights.
const (
	legalLookbackYears    = 7
	mobilityLookbackYears = 3

	highConfidence = 0.9
	lowConfidence  = 0.6

	shortTenureMonths    = 3
	longCumulativeMonths = 60
)

// Assessor evaluates a canonical person record with a compiled keyword
// classifier. The zero-config path uses the embedded defaults.
type Assessor struct {
	classifier *Classifier
}

// NewAssessor builds an assessor over the given keyword configuration.
func NewAssessor(cfg KeywordConfig) (*Assessor, error) {
	cl, err := cfg.Compile()
	if err != nil {
		return nil, err
	}
	return &Assessor{classifier: cl}, nil
}

// DefaultAssessor returns an assessor over the embedded keyword defaults.
func DefaultAssessor() *Assessor {
	return &Assessor{classifier: DefaultKeywords().MustCompile()}
}

// Assess scores the record against the fixed rule set. Pure function: no
// I/O, deterministic for identical inputs and now. Rules run in a fixed
// order and each appends its reason only when it fires; the score is never
// clamped, only the level is bucketed.
func (a *Assessor) Assess(person types.CanonicalPerson, meta types.RiskMeta, now time.Time) types.RiskAssessment {
	score := 0
	var reasons []string

	// 1) Identity confidence.
	if conf, ok := normalizeConfidence(meta); ok {
		switch {
		case conf >= highConfidence:
			score--
			reasons = append(reasons, "High identity confidence")
		case conf < lowConfidence:
			score++
			reasons = append(reasons, "Low identity confidence")
		}
	}

	// 2) Sanctions / watchlists.
	if meta.WatchlistHits > 0 {
		score += 6
		reasons = append(reasons, "Watchlist / sanctions match")
	}

	// 3) Legal appearances within the lookback window. Tenancy-related
	// records take priority over generic adverse ones; never both.
	var tenancy, adverse int
	for _, l := range person.LegalAppearances {
		if !dates.WithinYears(l.Date, legalLookbackYears, now) {
			continue
		}
		if matches(a.classifier.tenancy, l.Title, l.Description) {
			tenancy++
		}
		if matches(a.classifier.adverseLegal, l.Title, l.Description) {
			adverse++
		}
	}
	if tenancy > 0 {
		score += min(6, 2*tenancy)
		reasons = append(reasons, fmt.Sprintf("%d recent tenancy-related legal record(s)", tenancy))
	} else if adverse > 0 {
		score += min(4, adverse)
		reasons = append(reasons, fmt.Sprintf("%d recent adverse legal record(s)", adverse))
	}

	// 4) Residential mobility. An entry counts once if either bound is in
	// range; an entry with only a start counts as still-current.
	moves := 0
	for _, loc := range person.LocationHistory {
		start, end := loc.Start(), loc.End()
		if start == "" && end == "" {
			continue
		}
		endInRange := end == "" || dates.WithinYears(end, mobilityLookbackYears, now)
		if endInRange || dates.WithinYears(start, mobilityLookbackYears, now) {
			moves++
		}
	}
	if moves >= 5 {
		score += 3
		reasons = append(reasons, "Frequent moves in last 3 years")
	} else if moves >= 3 {
		score += 2
		reasons = append(reasons, "Several moves in last 3 years")
	}

	// 5) Employment stability. The short-tenure and long-cumulative checks
	// can both fire in the same run.
	jobs := person.EmploymentHistory
	if len(jobs) == 0 {
		score++
		reasons = append(reasons, "No employment history available")
	} else {
		recent := jobs[len(jobs)-1]
		if dates.MonthsBetween(recent.StartDate, recent.EndDate, now) < shortTenureMonths {
			score++
			reasons = append(reasons, "Short recent employment tenure")
		}
		total := 0
		for _, j := range jobs {
			total += dates.MonthsBetween(j.StartDate, j.EndDate, now)
		}
		if total >= longCumulativeMonths {
			score--
			reasons = append(reasons, "5+ years cumulative employment history")
		}
	}

	// 6) Adverse press.
	press := 0
	for _, p := range person.PressMentions {
		if matches(a.classifier.adversePress, p.Topic, p.Description) {
			press++
		}
	}
	if press > 0 {
		score += min(2, press)
		reasons = append(reasons, "Adverse media mentions")
	}

	// 7) Adverse public comments.
	hostile := 0
	for _, c := range person.PublicComments {
		if matches(a.classifier.hostile, c.Content) {
			hostile++
		}
	}
	if hostile > 0 {
		score++
		reasons = append(reasons, "Concerning public comments")
	}

	if reasons == nil {
		reasons = []string{}
	}
	return types.RiskAssessment{
		Score:   score,
		Level:   types.LevelForScore(score),
		Reasons: reasons,
	}
}

// normalizeConfidence maps the ambiguous match score onto a 0-1 scale:
// values above 1 are assumed to be percentages. The magnitude heuristic is
// inherited from the provider's undeclared scale.
func normalizeConfidence(meta types.RiskMeta) (float64, bool) {
	if !meta.IdentityOK || meta.IdentityConfidence == nil {
		return 0, false
	}
	v := *meta.IdentityConfidence
	if v > 1 {
		v /= 100
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v, true
}
