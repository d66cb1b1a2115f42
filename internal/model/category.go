// Package model defines the core domain models used throughout the application.
package model

// CategoryRecord describes one entry in the business category catalog.
// Records are loaded once per session and never mutated afterward.
type CategoryRecord struct {
	Code        string   `json:"code"`
	DisplayName string   `json:"displayName"`
	Keywords    []string `json:"keywords"`
	Group       string   `json:"group"`
	Popularity  int      `json:"popularity"`
	HasProfile  bool     `json:"hasProfile"`
}

// MatchKind classifies the outcome of matching free-form text against the catalog.
type MatchKind string

// Match outcome kinds.
const (
	MatchExact MatchKind = "exact"
	MatchFuzzy MatchKind = "fuzzy"
	MatchNone  MatchKind = "none"
)

// Confidence thresholds for fuzzy match classification. A score of
// exactly StrongMatchThreshold counts as strong.
const (
	StrongMatchThreshold = 0.7
	WeakMatchThreshold   = 0.4
)

// MatchOutcome is the result of scoring free-form text against the catalog.
// Record is nil when Kind is MatchNone.
type MatchOutcome struct {
	Record     *CategoryRecord
	Kind       MatchKind
	Confidence float64
}

// Strong reports whether the outcome can be accepted without user confirmation.
func (m MatchOutcome) Strong() bool {
	switch m.Kind {
	case MatchExact:
		return true
	case MatchFuzzy:
		return m.Confidence >= StrongMatchThreshold
	default:
		return false
	}
}
