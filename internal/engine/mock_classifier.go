package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/brandforge/brandforge/internal/model"
)

// MockClassifier is a test implementation of the Classifier interface.
// It returns deterministic detections based on keyword hits against the
// candidate records.
type MockClassifier struct {
	// Err, when set, is returned from every call.
	Err error
	// Confidence overrides the reported confidence when non-zero.
	Confidence float64

	calls []MockDetectionCall
	mu    sync.Mutex
}

// MockDetectionCall records details of a detection request.
type MockDetectionCall struct {
	Text       string
	Candidates int
}

// NewMockClassifier creates a new mock classifier.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// DetectCategory picks the first candidate whose keywords or display
// name appear in the text, falling back to the first candidate.
func (m *MockClassifier) DetectCategory(_ context.Context, text string, candidates []model.CategoryRecord) (*model.DetectionResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockDetectionCall{Text: text, Candidates: len(candidates)})
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidates")
	}

	confidence := m.Confidence
	if confidence == 0 {
		confidence = 0.6
	}

	lower := strings.ToLower(text)
	pick := candidates[0]
	var matched []string

	for _, rec := range candidates {
		if strings.Contains(lower, strings.ToLower(rec.DisplayName)) {
			pick = rec
			matched = []string{rec.DisplayName}
			break
		}
		var hit bool
		for _, kw := range rec.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				pick = rec
				matched = append(matched, kw)
				hit = true
			}
		}
		if hit {
			break
		}
	}

	return &model.DetectionResult{
		Code:        pick.Code,
		DisplayName: pick.DisplayName,
		Group:       pick.Group,
		Keywords:    matched,
		Confidence:  confidence,
		Reasoning:   fmt.Sprintf("mock detection for %q", text),
	}, nil
}

// CallCount returns the number of detection requests made.
func (m *MockClassifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of recorded detection requests.
func (m *MockClassifier) Calls() []MockDetectionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]MockDetectionCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}
