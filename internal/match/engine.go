// Package match scores free-form business text against the category catalog.
package match

import (
	"strings"
	"unicode"

	"github.com/brandforge/brandforge/internal/catalog"
	"github.com/brandforge/brandforge/internal/model"
)

// Keyword hits score slightly below an equally close display-name hit so
// that name matches win ties.
const keywordWeight = 0.9

// Engine matches raw text against a session catalog. Matching has no
// side effects and is deterministic for identical inputs.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine creates a match engine over the given catalog.
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Match classifies text against the catalog. Exact display-name equality
// (case-insensitive) short-circuits with confidence 1.0. Otherwise the
// best similarity score across all records decides: a score of at least
// model.StrongMatchThreshold is a strong fuzzy match, a score of at
// least model.WeakMatchThreshold is weak, and anything below is none.
func (e *Engine) Match(text string) model.MatchOutcome {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.MatchOutcome{Kind: model.MatchNone}
	}

	if rec := e.catalog.ByDisplayName(text); rec != nil {
		return model.MatchOutcome{
			Kind:       model.MatchExact,
			Record:     rec,
			Confidence: 1.0,
		}
	}

	input := strings.ToLower(text)
	inputTokens := tokenize(input)

	var best *model.CategoryRecord
	var bestScore float64

	// Records iterate in the catalog's stable popularity order, so ties
	// resolve the same way on every call.
	records := e.catalog.Records()
	for i := range records {
		rec := &records[i]
		if score := e.score(input, inputTokens, rec); score > bestScore {
			bestScore = score
			best = rec
		}
	}

	if best == nil || bestScore < model.WeakMatchThreshold {
		return model.MatchOutcome{Kind: model.MatchNone}
	}

	return model.MatchOutcome{
		Kind:       model.MatchFuzzy,
		Record:     best,
		Confidence: bestScore,
	}
}

// score combines edit-distance similarity against the display name and
// keywords with token overlap across the whole record.
func (e *Engine) score(input string, inputTokens []string, rec *model.CategoryRecord) float64 {
	name := strings.ToLower(rec.DisplayName)

	score := similarity(input, name)

	for _, kw := range rec.Keywords {
		if s := keywordWeight * similarity(input, strings.ToLower(kw)); s > score {
			score = s
		}
	}

	recordTokens := tokenize(name)
	for _, kw := range rec.Keywords {
		recordTokens = append(recordTokens, tokenize(strings.ToLower(kw))...)
	}
	if s := tokenOverlap(inputTokens, recordTokens); s > score {
		score = s
	}

	return score
}

// similarity is a normalized Levenshtein score in [0,1].
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}

	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}

// tokenOverlap is the Sørensen–Dice coefficient over unique tokens.
func tokenOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	var common int
	for t := range setA {
		if _, ok := setB[t]; ok {
			common++
		}
	}

	return 2.0 * float64(common) / float64(len(setA)+len(setB))
}

// tokenize splits text on non-alphanumeric runes and lowercases tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, strings.ToLower(f))
	}
	return tokens
}

// levenshtein computes the edit distance between two strings.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func minInt(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
