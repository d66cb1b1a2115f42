package engine

import (
	"context"

	"github.com/brandforge/brandforge/internal/model"
)

// Classifier defines the contract for LLM-backed category detection.
type Classifier interface {
	DetectCategory(ctx context.Context, text string, candidates []model.CategoryRecord) (*model.DetectionResult, error)
}

// Prompter defines the contract for user interaction while a detection
// awaits confirmation.
type Prompter interface {
	ConfirmDetection(ctx context.Context, detection model.DetectionResult) (model.ConfirmationDecision, error)
}

// Generator defines the contract for on-demand profile synthesis.
type Generator interface {
	Generate(ctx context.Context, code, displayName string, onProgress model.ProgressFunc) (*model.Profile, error)
}
