package model

import "time"

// ResolutionStatus is the terminal state of a resolution run.
type ResolutionStatus string

// Resolution statuses. Each run ends in exactly one of these.
const (
	// StatusConfirmed means a category was selected; ProfileAvailable on
	// the result says whether a profile backs it.
	StatusConfirmed ResolutionStatus = "CONFIRMED"
	// StatusCorrected means the user rejected the detected category and
	// was returned to manual selection.
	StatusCorrected ResolutionStatus = "CORRECTED"
	// StatusDetectionFailed means the classifier was unreachable or
	// returned an unusable result; the user must pick from the catalog.
	StatusDetectionFailed ResolutionStatus = "DETECTION_FAILED"
)

// ResolutionSource records how the category was chosen.
type ResolutionSource string

// Resolution sources.
const (
	SourceSelection ResolutionSource = "selection"
	SourceMatch     ResolutionSource = "match"
	SourceDetection ResolutionSource = "detection"
)

// ResolutionResult is what a resolution run hands back to the caller.
type ResolutionResult struct {
	Status      ResolutionStatus
	Code        string
	DisplayName string
	Source      ResolutionSource
	Confidence  float64
	// ProfileAvailable is true when a profile exists for Code, either
	// from the cache or freshly generated.
	ProfileAvailable bool
	// FallbackData is true when generation failed or timed out and the
	// caller should proceed with degraded, non-enriched content.
	FallbackData bool
}

// ResolutionRecord is the audit entry persisted for each resolution run.
type ResolutionRecord struct {
	StartedAt  time.Time
	ID         string
	Input      string
	Code       string
	Status     ResolutionStatus
	Source     ResolutionSource
	Confidence float64
	Duration   time.Duration
}
