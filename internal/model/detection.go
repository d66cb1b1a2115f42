package model

// DetectionResult is the classifier's best guess for a piece of business
// text. It is held only until the user confirms or corrects it.
type DetectionResult struct {
	Code        string
	DisplayName string
	Group       string
	Keywords    []string
	Reasoning   string
	Confidence  float64
}

// ConfirmationDecision is the user's answer to a detection result.
type ConfirmationDecision string

// Confirmation decisions.
const (
	DecisionConfirm ConfirmationDecision = "confirm"
	DecisionCorrect ConfirmationDecision = "correct"
)
