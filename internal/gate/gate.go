// Package gate implements the confirmation state machine that decides
// whether a category candidate is accepted automatically or must be
// confirmed by the user.
package gate

import (
	"fmt"

	"github.com/brandforge/brandforge/internal/model"
)

// State is a confirmation gate state.
type State string

// Gate states.
const (
	StateIdle                 State = "idle"
	StateDetecting            State = "detecting"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateConfirmed            State = "confirmed"
	StateCorrected            State = "corrected"
)

// InvalidTransitionError reports an attempted transition that the state
// machine does not allow.
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid gate transition from %s to %s", e.From, e.To)
}

// Gate tracks one resolution run's confirmation flow. It is deliberately
// free of any UI concern; callers drive it and render its state.
type Gate struct {
	detection *model.DetectionResult
	state     State
}

// New creates a gate in the Idle state.
func New() *Gate {
	return &Gate{state: StateIdle}
}

// State returns the current state.
func (g *Gate) State() State {
	return g.state
}

// Detection returns the result awaiting confirmation, or nil outside of
// AwaitingConfirmation.
func (g *Gate) Detection() *model.DetectionResult {
	return g.detection
}

// AutoConfirm accepts a strong match outcome directly, skipping both the
// classifier and the confirmation screen.
func (g *Gate) AutoConfirm(outcome model.MatchOutcome) error {
	if g.state != StateIdle {
		return &InvalidTransitionError{From: g.state, To: StateConfirmed}
	}
	if !outcome.Strong() {
		return fmt.Errorf("cannot auto-confirm a %s outcome with confidence %.2f", outcome.Kind, outcome.Confidence)
	}
	g.state = StateConfirmed
	return nil
}

// BeginDetection marks the start of a classifier call.
func (g *Gate) BeginDetection() error {
	if g.state != StateIdle {
		return &InvalidTransitionError{From: g.state, To: StateDetecting}
	}
	g.state = StateDetecting
	return nil
}

// FailDetection returns the gate to Idle after a classifier failure; the
// caller falls back to manual selection.
func (g *Gate) FailDetection() error {
	if g.state != StateDetecting {
		return &InvalidTransitionError{From: g.state, To: StateIdle}
	}
	g.state = StateIdle
	return nil
}

// Present exposes a detection result for explicit accept or reject.
func (g *Gate) Present(detection *model.DetectionResult) error {
	if g.state != StateDetecting {
		return &InvalidTransitionError{From: g.state, To: StateAwaitingConfirmation}
	}
	g.detection = detection
	g.state = StateAwaitingConfirmation
	return nil
}

// Confirm accepts the presented detection.
func (g *Gate) Confirm() error {
	if g.state != StateAwaitingConfirmation {
		return &InvalidTransitionError{From: g.state, To: StateConfirmed}
	}
	g.state = StateConfirmed
	return nil
}

// Correct rejects the presented detection, clearing all transient
// detection state. Control returns to manual catalog selection.
func (g *Gate) Correct() error {
	if g.state != StateAwaitingConfirmation {
		return &InvalidTransitionError{From: g.state, To: StateCorrected}
	}
	g.detection = nil
	g.state = StateCorrected
	return nil
}
