package types

// RiskLevel is the bucketed tier derived from the numeric risk score.
type RiskLevel string

// Risk tiers, in ascending severity.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Score thresholds for bucketing. The score itself is never clamped.
const (
	mediumThreshold = 3
	highThreshold   = 6
)

// LevelForScore maps a raw score onto its tier.
func LevelForScore(score int) RiskLevel {
	switch {
	case score >= highThreshold:
		return RiskHigh
	case score >= mediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RiskAssessment is the scored outcome for one canonical person record.
// Reasons follow the fixed rule evaluation order and are retained for audit
// even though the UI does not render them.
type RiskAssessment struct {
	Score   int       `json:"score"`
	Level   RiskLevel `json:"level"`
	Reasons []string  `json:"reasons"`
}

// RiskMeta carries provider-level signals that feed the assessment but are
// not part of the person record itself.
type RiskMeta struct {
	// IdentityOK reports whether the identity-graph call succeeded.
	IdentityOK bool
	// IdentityConfidence is the raw match score; scale may be 0-1 or 0-100.
	// Nil means the provider supplied no score.
	IdentityConfidence *float64
	// WatchlistHits is the number of sanctions/watchlist matches.
	WatchlistHits int
}
