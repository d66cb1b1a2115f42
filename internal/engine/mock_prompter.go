package engine

import (
	"context"
	"sync"

	"github.com/brandforge/brandforge/internal/model"
)

// MockPrompter is a test implementation of the Prompter interface that
// answers every confirmation with a fixed decision.
type MockPrompter struct {
	// Decision is returned from every call; defaults to confirm.
	Decision model.ConfirmationDecision
	// Err, when set, is returned from every call.
	Err error

	confirmations []model.DetectionResult
	mu            sync.Mutex
}

// NewMockPrompter creates a mock prompter that confirms everything.
func NewMockPrompter() *MockPrompter {
	return &MockPrompter{Decision: model.DecisionConfirm}
}

// ConfirmDetection records the detection and returns the configured decision.
func (m *MockPrompter) ConfirmDetection(_ context.Context, detection model.DetectionResult) (model.ConfirmationDecision, error) {
	m.mu.Lock()
	m.confirmations = append(m.confirmations, detection)
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	return m.Decision, nil
}

// Confirmations returns a copy of the detections presented so far.
func (m *MockPrompter) Confirmations() []model.DetectionResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.DetectionResult, len(m.confirmations))
	copy(out, m.confirmations)
	return out
}
