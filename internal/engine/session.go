package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/brandforge/brandforge/internal/model"
)

// resolutionRun captures the transient identity of one resolution run:
// its id, input, and start time. Created when Resolve begins, discarded
// when it returns.
type resolutionRun struct {
	startedAt time.Time
	id        string
	input     Input
}

func newRun(input Input) *resolutionRun {
	return &resolutionRun{
		id:        uuid.NewString(),
		input:     input,
		startedAt: time.Now(),
	}
}

// record builds the audit entry for a finished run.
func (r *resolutionRun) record(result model.ResolutionResult) *model.ResolutionRecord {
	input := r.input.Text
	if r.input.Code != "" {
		input = "code:" + r.input.Code
	}

	return &model.ResolutionRecord{
		ID:         r.id,
		Input:      input,
		Code:       result.Code,
		Status:     result.Status,
		Source:     result.Source,
		Confidence: result.Confidence,
		StartedAt:  r.startedAt,
		Duration:   time.Since(r.startedAt),
	}
}
