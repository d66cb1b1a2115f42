package gate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandforge/brandforge/internal/model"
)

func strongOutcome() model.MatchOutcome {
	return model.MatchOutcome{
		Kind:       model.MatchExact,
		Record:     &model.CategoryRecord{Code: "238220", DisplayName: "Plumbing"},
		Confidence: 1.0,
	}
}

func TestGate_AutoConfirm(t *testing.T) {
	g := New()
	require.Equal(t, StateIdle, g.State())

	require.NoError(t, g.AutoConfirm(strongOutcome()))
	assert.Equal(t, StateConfirmed, g.State())
}

func TestGate_AutoConfirm_RejectsWeakOutcome(t *testing.T) {
	tests := []struct {
		name    string
		outcome model.MatchOutcome
	}{
		{
			name:    "no match",
			outcome: model.MatchOutcome{Kind: model.MatchNone},
		},
		{
			name: "weak fuzzy match",
			outcome: model.MatchOutcome{
				Kind:       model.MatchFuzzy,
				Record:     &model.CategoryRecord{Code: "561730"},
				Confidence: 0.55,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			require.Error(t, g.AutoConfirm(tt.outcome))
			assert.Equal(t, StateIdle, g.State())
		})
	}
}

func TestGate_DetectionConfirmFlow(t *testing.T) {
	g := New()
	detection := &model.DetectionResult{Code: "238220", DisplayName: "Plumbing", Confidence: 0.6}

	require.NoError(t, g.BeginDetection())
	assert.Equal(t, StateDetecting, g.State())

	require.NoError(t, g.Present(detection))
	assert.Equal(t, StateAwaitingConfirmation, g.State())
	assert.Equal(t, detection, g.Detection())

	require.NoError(t, g.Confirm())
	assert.Equal(t, StateConfirmed, g.State())
}

func TestGate_DetectionCorrectFlow(t *testing.T) {
	g := New()
	detection := &model.DetectionResult{Code: "722511", DisplayName: "Restaurants", Confidence: 0.5}

	require.NoError(t, g.BeginDetection())
	require.NoError(t, g.Present(detection))

	require.NoError(t, g.Correct())
	assert.Equal(t, StateCorrected, g.State())
	assert.Nil(t, g.Detection(), "correction must clear the presented detection")
}

func TestGate_FailDetectionReturnsToIdle(t *testing.T) {
	g := New()

	require.NoError(t, g.BeginDetection())
	require.NoError(t, g.FailDetection())
	assert.Equal(t, StateIdle, g.State())

	// The gate is reusable after a failed detection.
	require.NoError(t, g.BeginDetection())
	assert.Equal(t, StateDetecting, g.State())
}

func TestGate_InvalidTransitions(t *testing.T) {
	detection := &model.DetectionResult{Code: "238220"}

	tests := []struct {
		name string
		run  func(g *Gate) error
		from State
	}{
		{
			name: "confirm from idle",
			run:  func(g *Gate) error { return g.Confirm() },
			from: StateIdle,
		},
		{
			name: "correct from idle",
			run:  func(g *Gate) error { return g.Correct() },
			from: StateIdle,
		},
		{
			name: "present from idle",
			run:  func(g *Gate) error { return g.Present(detection) },
			from: StateIdle,
		},
		{
			name: "fail detection from idle",
			run:  func(g *Gate) error { return g.FailDetection() },
			from: StateIdle,
		},
		{
			name: "begin detection twice",
			run: func(g *Gate) error {
				if err := g.BeginDetection(); err != nil {
					return err
				}
				return g.BeginDetection()
			},
			from: StateDetecting,
		},
		{
			name: "auto-confirm after detection started",
			run: func(g *Gate) error {
				if err := g.BeginDetection(); err != nil {
					return err
				}
				return g.AutoConfirm(strongOutcome())
			},
			from: StateDetecting,
		},
		{
			name: "confirm after already confirmed",
			run: func(g *Gate) error {
				if err := g.BeginDetection(); err != nil {
					return err
				}
				if err := g.Present(detection); err != nil {
					return err
				}
				if err := g.Confirm(); err != nil {
					return err
				}
				return g.Confirm()
			},
			from: StateConfirmed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()

			err := tt.run(g)
			require.Error(t, err)

			var transitionErr *InvalidTransitionError
			require.True(t, errors.As(err, &transitionErr))
			assert.Equal(t, tt.from, transitionErr.From)
		})
	}
}
