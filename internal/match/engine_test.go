package match

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandforge/brandforge/internal/catalog"
	"github.com/brandforge/brandforge/internal/model"
)

func bundledEngine(t *testing.T) *Engine {
	t.Helper()
	cat := catalog.Load(context.Background(), nil)
	require.False(t, cat.Empty())
	return NewEngine(cat)
}

func TestEngine_Match_ExactDisplayName(t *testing.T) {
	engine := bundledEngine(t)

	tests := []struct {
		name  string
		input string
	}{
		{name: "canonical casing", input: "Plumbing"},
		{name: "lowercase", input: "plumbing"},
		{name: "uppercase", input: "PLUMBING"},
		{name: "surrounding whitespace", input: "  Plumbing  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := engine.Match(tt.input)

			assert.Equal(t, model.MatchExact, outcome.Kind)
			require.NotNil(t, outcome.Record)
			assert.Equal(t, "238220", outcome.Record.Code)
			assert.InDelta(t, 1.0, outcome.Confidence, 1e-9)
			assert.True(t, outcome.Strong())
		})
	}
}

func TestEngine_Match_KeywordHitIsStrong(t *testing.T) {
	engine := bundledEngine(t)

	outcome := engine.Match("plumber")

	assert.Equal(t, model.MatchFuzzy, outcome.Kind)
	require.NotNil(t, outcome.Record)
	assert.Equal(t, "238220", outcome.Record.Code)
	assert.GreaterOrEqual(t, outcome.Confidence, model.StrongMatchThreshold)
	assert.True(t, outcome.Strong())
}

func TestEngine_Match_DescriptiveTextScoresBelowWeak(t *testing.T) {
	engine := bundledEngine(t)

	// A circumlocution shares at most one token with any record, so no
	// record should clear the weak threshold.
	outcome := engine.Match("the guy who fixes my pipes")

	assert.Equal(t, model.MatchNone, outcome.Kind)
	assert.Nil(t, outcome.Record)
	assert.False(t, outcome.Strong())
}

func TestEngine_Match_WeakBandIsNotStrong(t *testing.T) {
	engine := bundledEngine(t)

	outcome := engine.Match("landscaping")

	assert.Equal(t, model.MatchFuzzy, outcome.Kind)
	require.NotNil(t, outcome.Record)
	assert.Equal(t, "561730", outcome.Record.Code)
	assert.GreaterOrEqual(t, outcome.Confidence, model.WeakMatchThreshold)
	assert.Less(t, outcome.Confidence, model.StrongMatchThreshold)
	assert.False(t, outcome.Strong())
}

func TestEngine_Match_ThresholdBoundaryIsStrong(t *testing.T) {
	// Ten characters with three substitutions gives a similarity of
	// exactly 0.7, which must count as strong.
	cat := catalog.New([]model.CategoryRecord{
		{Code: "100", DisplayName: "abcdefghij", Popularity: 1},
	})
	engine := NewEngine(cat)

	outcome := engine.Match("abcdefgxyz")

	assert.Equal(t, model.MatchFuzzy, outcome.Kind)
	assert.InDelta(t, 0.7, outcome.Confidence, 1e-9)
	assert.True(t, outcome.Strong())
}

func TestEngine_Match_TieBreaksByCatalogOrder(t *testing.T) {
	input := "pizza"

	tests := []struct {
		name     string
		records  []model.CategoryRecord
		wantCode string
	}{
		{
			name: "higher popularity wins",
			records: []model.CategoryRecord{
				{Code: "100", DisplayName: "Alpha", Keywords: []string{"pizza"}, Popularity: 5},
				{Code: "200", DisplayName: "Omega", Keywords: []string{"pizza"}, Popularity: 9},
			},
			wantCode: "200",
		},
		{
			name: "lower code wins on equal popularity",
			records: []model.CategoryRecord{
				{Code: "200", DisplayName: "Omega", Keywords: []string{"pizza"}, Popularity: 5},
				{Code: "100", DisplayName: "Alpha", Keywords: []string{"pizza"}, Popularity: 5},
			},
			wantCode: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(catalog.New(tt.records))

			outcome := engine.Match(input)

			require.NotNil(t, outcome.Record)
			assert.Equal(t, tt.wantCode, outcome.Record.Code)
		})
	}
}

func TestEngine_Match_EmptyInput(t *testing.T) {
	engine := bundledEngine(t)

	for _, input := range []string{"", "   ", "\t\n"} {
		outcome := engine.Match(input)
		assert.Equal(t, model.MatchNone, outcome.Kind)
		assert.Nil(t, outcome.Record)
	}
}

func TestEngine_Match_Deterministic(t *testing.T) {
	first := bundledEngine(t)
	second := bundledEngine(t)

	faker := gofakeit.New(42)
	for i := 0; i < 100; i++ {
		phrase := faker.Company() + " " + faker.JobTitle()

		a := first.Match(phrase)
		b := second.Match(phrase)

		assert.Equal(t, a.Kind, b.Kind, "kind diverged for %q", phrase)
		assert.Equal(t, a.Confidence, b.Confidence, "confidence diverged for %q", phrase)
		if a.Record != nil || b.Record != nil {
			require.NotNil(t, a.Record, "record diverged for %q", phrase)
			require.NotNil(t, b.Record, "record diverged for %q", phrase)
			assert.Equal(t, a.Record.Code, b.Record.Code, "code diverged for %q", phrase)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"plumbing", "plumbing", 1.0},
		{"", "plumbing", 0.0},
		{"plumbing", "", 0.0},
		{"plumbing", "plumbin", 0.875},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, similarity(tt.a, tt.b), 1e-9, "similarity(%q, %q)", tt.a, tt.b)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"plumber", "plumbing", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "levenshtein(%q, %q)", tt.a, tt.b)
	}
}

func TestTokenOverlap(t *testing.T) {
	assert.InDelta(t, 1.0, tokenOverlap([]string{"a", "b"}, []string{"b", "a"}), 1e-9)
	assert.InDelta(t, 0.0, tokenOverlap([]string{"a"}, []string{"b"}), 1e-9)
	assert.InDelta(t, 0.0, tokenOverlap(nil, []string{"a"}), 1e-9)
	// Duplicates collapse before scoring.
	assert.InDelta(t, 2.0/3.0, tokenOverlap([]string{"a", "a", "b"}, []string{"a"}), 1e-9)
}
