package engine

import (
	"context"
	"sync"
	"time"

	"github.com/brandforge/brandforge/internal/model"
	"github.com/brandforge/brandforge/internal/service"
)

// MockGenerator is a test implementation of the Generator interface. It
// emits the canonical stage sequence, optionally persists the profile,
// and can be configured to fail.
type MockGenerator struct {
	// Err, when set, is reported after a failed event.
	Err error
	// Store, when set, receives the generated profile like the real
	// generator would.
	Store service.Storage

	calls []string
	mu    sync.Mutex
}

// NewMockGenerator creates a new mock generator.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate emits the full stage progression and returns a minimal profile.
func (m *MockGenerator) Generate(ctx context.Context, code, displayName string, onProgress model.ProgressFunc) (*model.Profile, error) {
	m.mu.Lock()
	m.calls = append(m.calls, code)
	m.mu.Unlock()

	emit := func(stage model.GenerationStage, percent int) {
		if onProgress != nil {
			onProgress(model.GenerationProgress{Stage: stage, Percent: percent})
		}
	}

	emit(model.StageResearch, 0)
	emit(model.StagePsychology, 25)
	emit(model.StageMarket, 50)
	emit(model.StageMessaging, 75)
	emit(model.StageGenerating, 85)

	if m.Err != nil {
		emit(model.StageFailed, 85)
		return nil, m.Err
	}

	emit(model.StageSaving, 95)

	profile := &model.Profile{
		Code:        code,
		DisplayName: displayName,
		GeneratedAt: time.Now().UTC(),
	}

	if m.Store != nil {
		if err := m.Store.SaveProfile(ctx, profile); err != nil {
			emit(model.StageFailed, 95)
			return nil, err
		}
		_ = m.Store.MarkProfileAvailable(ctx, code)
	}

	emit(model.StageComplete, 100)
	return profile, nil
}

// Calls returns the codes generation was requested for.
func (m *MockGenerator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}
