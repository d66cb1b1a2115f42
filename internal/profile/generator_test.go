package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandforge/brandforge/internal/model"
	"github.com/brandforge/brandforge/internal/storage"
)

// fakeBackend composes canned JSON sections, optionally failing or
// blocking at a chosen stage.
type fakeBackend struct {
	failAt  model.GenerationStage
	failErr error
	blockAt model.GenerationStage
}

func (f *fakeBackend) ComposeSection(ctx context.Context, stage model.GenerationStage, _, _ string) ([]byte, error) {
	if f.blockAt == stage {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.failAt == stage {
		return nil, f.failErr
	}

	switch stage {
	case model.StageResearch:
		return []byte(`{"industrySummary":"Local plumbing market.","painPoints":["emergencies"]}`), nil
	case model.StagePsychology:
		return []byte(`{"emotionalDrivers":["peace of mind"],"trustFactors":["licensing"]}`), nil
	case model.StageMarket:
		return []byte(`{"segments":["residential"],"priceSensitivity":"medium"}`), nil
	case model.StageMessaging:
		return []byte(`{"valueProps":["same-day service"],"tone":"reassuring"}`), nil
	case model.StageGenerating:
		return []byte(`{"angles":["emergency response"],"offers":["free estimate"]}`), nil
	default:
		return nil, fmt.Errorf("unexpected stage %s", stage)
	}
}

// progressRecorder collects progress events for assertions.
type progressRecorder struct {
	mu     sync.Mutex
	events []model.GenerationProgress
}

func (r *progressRecorder) record(p model.GenerationProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, p)
}

func (r *progressRecorder) snapshot() []model.GenerationProgress {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.GenerationProgress, len(r.events))
	copy(out, r.events)
	return out
}

func newTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGenerator_Generate(t *testing.T) {
	store := newTestStore(t)
	recorder := &progressRecorder{}
	gen := NewGenerator(&fakeBackend{}, store, DefaultConfig(), nil)

	profile, err := gen.Generate(context.Background(), "238220", "Plumbing", recorder.record)

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "238220", profile.Code)
	assert.Equal(t, "Plumbing", profile.DisplayName)
	assert.Equal(t, "Local plumbing market.", profile.Research.IndustrySummary)
	assert.Equal(t, []string{"peace of mind"}, profile.Psychology.EmotionalDrivers)
	assert.Equal(t, "medium", profile.Market.PriceSensitivity)
	assert.Equal(t, "reassuring", profile.Messaging.Tone)
	assert.Equal(t, []string{"emergency response"}, profile.Campaigns.Angles)

	// The profile is persisted before the run reports complete.
	saved, err := store.GetProfile(context.Background(), "238220")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, profile.Messaging.Tone, saved.Messaging.Tone)

	events := recorder.snapshot()
	require.NotEmpty(t, events)
	assert.Equal(t, model.StageResearch, events[0].Stage)
	assert.Equal(t, 0, events[0].Percent)

	last := events[len(events)-1]
	assert.Equal(t, model.StageComplete, last.Stage)
	assert.Equal(t, 100, last.Percent)
	assert.Equal(t, 0, last.ETASeconds)
	assert.True(t, last.Terminal())
}

func TestGenerator_Generate_ProgressNeverDecreases(t *testing.T) {
	store := newTestStore(t)
	recorder := &progressRecorder{}
	gen := NewGenerator(&fakeBackend{}, store, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), "238220", "Plumbing", recorder.record)
	require.NoError(t, err)

	events := recorder.snapshot()
	for i := 1; i < len(events); i++ {
		assert.GreaterOrEqual(t, events[i].Percent, events[i-1].Percent,
			"percent regressed from %v to %v", events[i-1], events[i])
	}

	// Exactly one terminal event, and it is the last one.
	var terminals int
	for _, ev := range events {
		if ev.Terminal() {
			terminals++
		}
	}
	assert.Equal(t, 1, terminals)
}

func TestGenerator_Generate_StageFailure(t *testing.T) {
	store := newTestStore(t)
	recorder := &progressRecorder{}
	backendErr := fmt.Errorf("model returned malformed output")
	gen := NewGenerator(&fakeBackend{failAt: model.StageMarket, failErr: backendErr}, store, DefaultConfig(), nil)

	profile, err := gen.Generate(context.Background(), "238220", "Plumbing", recorder.record)

	require.Error(t, err)
	assert.Nil(t, profile)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "238220", genErr.Code)
	assert.ErrorIs(t, err, backendErr)

	events := recorder.snapshot()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, model.StageFailed, last.Stage)
	assert.Equal(t, 50, last.Percent, "failure reports the percent it died at")

	// Nothing was persisted.
	saved, getErr := store.GetProfile(context.Background(), "238220")
	require.NoError(t, getErr)
	assert.Nil(t, saved)
}

func TestGenerator_Generate_Timeout(t *testing.T) {
	store := newTestStore(t)
	recorder := &progressRecorder{}
	cfg := Config{Timeout: 50 * time.Millisecond, EstimatedDuration: time.Second}
	gen := NewGenerator(&fakeBackend{blockAt: model.StagePsychology}, store, cfg, nil)

	_, err := gen.Generate(context.Background(), "238220", "Plumbing", recorder.record)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationTimeout)

	events := recorder.snapshot()
	require.NotEmpty(t, events)
	assert.Equal(t, model.StageFailed, events[len(events)-1].Stage)

	// The losing goroutine keeps running briefly; it must not emit
	// anything after the terminal event.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, len(events), len(recorder.snapshot()))
}

func TestGenerator_Generate_CanceledParentIsNotTimeout(t *testing.T) {
	store := newTestStore(t)
	gen := NewGenerator(&fakeBackend{blockAt: model.StageResearch}, store, DefaultConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := gen.Generate(ctx, "238220", "Plumbing", nil)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrGenerationTimeout)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApplySection_InvalidJSON(t *testing.T) {
	p := &model.Profile{}

	err := applySection(p, model.StageResearch, []byte("not json"))
	require.Error(t, err)

	err = applySection(p, model.GenerationStage("bogus"), []byte("{}"))
	require.Error(t, err)
}
