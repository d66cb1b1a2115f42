package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandforge/brandforge/internal/catalog"
	"github.com/brandforge/brandforge/internal/common"
	"github.com/brandforge/brandforge/internal/match"
	"github.com/brandforge/brandforge/internal/model"
	"github.com/brandforge/brandforge/internal/service"
	"github.com/brandforge/brandforge/internal/storage"
)

type testDeps struct {
	store      service.Storage
	catalog    *catalog.Catalog
	classifier *MockClassifier
	generator  *MockGenerator
	prompter   *MockPrompter
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	cat := catalog.Load(context.Background(), nil)
	require.False(t, cat.Empty())

	generator := NewMockGenerator()
	generator.Store = store

	return &testDeps{
		store:      store,
		catalog:    cat,
		classifier: NewMockClassifier(),
		generator:  generator,
		prompter:   NewMockPrompter(),
	}
}

func (d *testDeps) engine() *ResolutionEngine {
	return New(d.store, d.catalog, match.NewEngine(d.catalog), d.classifier, d.generator, d.prompter)
}

func TestResolve_ExactMatchGeneratesProfile(t *testing.T) {
	deps := newTestDeps(t)
	eng := deps.engine()

	result, err := eng.Resolve(context.Background(), Input{Text: "Plumbing"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, result.Status)
	assert.Equal(t, "238220", result.Code)
	assert.Equal(t, "Plumbing", result.DisplayName)
	assert.Equal(t, model.SourceMatch, result.Source)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
	assert.True(t, result.ProfileAvailable)
	assert.False(t, result.FallbackData)

	// Strong matches never consult the classifier or the prompter.
	assert.Equal(t, 0, deps.classifier.CallCount())
	assert.Empty(t, deps.prompter.Confirmations())
	assert.Equal(t, []string{"238220"}, deps.generator.Calls())
}

func TestResolve_SecondRunHitsProfileCache(t *testing.T) {
	deps := newTestDeps(t)
	eng := deps.engine()

	_, err := eng.Resolve(context.Background(), Input{Text: "Plumbing"})
	require.NoError(t, err)

	result, err := eng.Resolve(context.Background(), Input{Text: "Plumbing"})
	require.NoError(t, err)

	assert.True(t, result.ProfileAvailable)
	assert.Len(t, deps.generator.Calls(), 1, "cached profiles are never regenerated")
}

func TestResolve_DescriptiveTextGoesThroughDetection(t *testing.T) {
	deps := newTestDeps(t)
	eng := deps.engine()

	result, err := eng.Resolve(context.Background(), Input{Text: "the guy who fixes my pipes"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, result.Status)
	assert.Equal(t, "238220", result.Code)
	assert.Equal(t, model.SourceDetection, result.Source)
	assert.InDelta(t, 0.6, result.Confidence, 1e-9)
	assert.True(t, result.ProfileAvailable)

	assert.Equal(t, 1, deps.classifier.CallCount())
	require.Len(t, deps.prompter.Confirmations(), 1)
	assert.Equal(t, "238220", deps.prompter.Confirmations()[0].Code)
}

func TestResolve_RejectedDetectionIsCorrected(t *testing.T) {
	deps := newTestDeps(t)
	deps.prompter.Decision = model.DecisionCorrect
	eng := deps.engine()

	result, err := eng.Resolve(context.Background(), Input{Text: "the guy who fixes my pipes"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusCorrected, result.Status)
	assert.Empty(t, result.Code)
	assert.False(t, result.ProfileAvailable)
	assert.Empty(t, deps.generator.Calls(), "no profile work for a rejected detection")
}

func TestResolve_ClassifierFailureFallsBackToManual(t *testing.T) {
	deps := newTestDeps(t)
	deps.classifier.Err = fmt.Errorf("provider unavailable")
	eng := deps.engine()

	result, err := eng.Resolve(context.Background(), Input{Text: "the guy who fixes my pipes"})

	require.NoError(t, err, "classifier failure must not fail the run")
	assert.Equal(t, model.StatusDetectionFailed, result.Status)
	assert.Empty(t, result.Code)
	assert.Empty(t, deps.prompter.Confirmations())
}

func TestResolve_NilClassifierFallsBackToManual(t *testing.T) {
	deps := newTestDeps(t)
	eng := New(deps.store, deps.catalog, match.NewEngine(deps.catalog), nil, deps.generator, deps.prompter)

	result, err := eng.Resolve(context.Background(), Input{Text: "the guy who fixes my pipes"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusDetectionFailed, result.Status)
}

func TestResolve_ExplicitSelection(t *testing.T) {
	deps := newTestDeps(t)
	eng := deps.engine()

	result, err := eng.Resolve(context.Background(), Input{Code: "722511"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, result.Status)
	assert.Equal(t, "722511", result.Code)
	assert.Equal(t, model.SourceSelection, result.Source)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
	assert.Equal(t, 0, deps.classifier.CallCount())
}

func TestResolve_ExplicitCodeWinsOverText(t *testing.T) {
	deps := newTestDeps(t)
	eng := deps.engine()

	result, err := eng.Resolve(context.Background(), Input{Text: "Plumbing", Code: "722511"})

	require.NoError(t, err)
	assert.Equal(t, "722511", result.Code)
	assert.Equal(t, model.SourceSelection, result.Source)
}

func TestResolve_UnknownCode(t *testing.T) {
	deps := newTestDeps(t)
	eng := deps.engine()

	_, err := eng.Resolve(context.Background(), Input{Code: "999999"})

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnknownCategory)
}

func TestResolve_EmptyInput(t *testing.T) {
	deps := newTestDeps(t)
	eng := deps.engine()

	_, err := eng.Resolve(context.Background(), Input{Text: "   "})

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmptyInput)
}

func TestResolve_EmptyCatalog(t *testing.T) {
	deps := newTestDeps(t)
	eng := New(deps.store, catalog.New(nil), nil, deps.classifier, deps.generator, deps.prompter)

	_, err := eng.Resolve(context.Background(), Input{Text: "Plumbing"})

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmptyCatalog)

	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestResolve_GenerationFailureIsNotFatal(t *testing.T) {
	deps := newTestDeps(t)
	deps.generator.Err = fmt.Errorf("model overloaded")
	eng := deps.engine()

	result, err := eng.Resolve(context.Background(), Input{Text: "Plumbing"})

	require.NoError(t, err, "generation failure degrades, never fails the run")
	assert.Equal(t, model.StatusConfirmed, result.Status)
	assert.Equal(t, "238220", result.Code)
	assert.False(t, result.ProfileAvailable)
	assert.True(t, result.FallbackData)
}

func TestResolve_NilGeneratorDegradesToFallback(t *testing.T) {
	deps := newTestDeps(t)
	eng := New(deps.store, deps.catalog, match.NewEngine(deps.catalog), deps.classifier, nil, deps.prompter)

	result, err := eng.Resolve(context.Background(), Input{Text: "Plumbing"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, result.Status)
	assert.True(t, result.FallbackData)
}

// failingProfileReads wraps a Storage and degrades all profile reads.
type failingProfileReads struct {
	service.Storage
}

func (f *failingProfileReads) GetProfile(_ context.Context, _ string) (*model.Profile, error) {
	return nil, fmt.Errorf("disk read error")
}

func TestResolve_ProfileReadErrorIsTreatedAsMiss(t *testing.T) {
	deps := newTestDeps(t)
	store := &failingProfileReads{Storage: deps.store}
	deps.generator.Store = deps.store
	eng := New(store, deps.catalog, match.NewEngine(deps.catalog), deps.classifier, deps.generator, deps.prompter)

	result, err := eng.Resolve(context.Background(), Input{Text: "Plumbing"})

	require.NoError(t, err, "an unreadable cache must never wedge the run")
	assert.Equal(t, model.StatusConfirmed, result.Status)
	assert.True(t, result.ProfileAvailable)
	assert.Equal(t, []string{"238220"}, deps.generator.Calls(), "read errors regenerate instead of failing")
}

func TestResolve_RecordsAuditTrail(t *testing.T) {
	deps := newTestDeps(t)
	eng := deps.engine()

	_, err := eng.Resolve(context.Background(), Input{Text: "Plumbing"})
	require.NoError(t, err)
	_, err = eng.Resolve(context.Background(), Input{Code: "722511"})
	require.NoError(t, err)

	records, err := deps.store.RecentResolutions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byInput := make(map[string]model.ResolutionRecord, len(records))
	for _, rec := range records {
		byInput[rec.Input] = rec
	}

	textRun, ok := byInput["Plumbing"]
	require.True(t, ok)
	assert.Equal(t, model.StatusConfirmed, textRun.Status)
	assert.Equal(t, model.SourceMatch, textRun.Source)
	assert.NotEmpty(t, textRun.ID)

	codeRun, ok := byInput["code:722511"]
	require.True(t, ok)
	assert.Equal(t, model.SourceSelection, codeRun.Source)
}

func TestResolve_ContextCancellationPropagates(t *testing.T) {
	deps := newTestDeps(t)
	deps.classifier.Err = context.Canceled
	eng := deps.engine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Resolve(ctx, Input{Text: "the guy who fixes my pipes"})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
