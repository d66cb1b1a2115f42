// Package engine implements the resolution orchestrator that turns raw
// business text or an explicit selection into a category code with a
// content profile.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brandforge/brandforge/internal/catalog"
	"github.com/brandforge/brandforge/internal/common"
	"github.com/brandforge/brandforge/internal/gate"
	"github.com/brandforge/brandforge/internal/match"
	"github.com/brandforge/brandforge/internal/model"
	"github.com/brandforge/brandforge/internal/service"
)

// Input identifies what a resolution run starts from: free-form text, or
// an explicit catalog selection by code. Code wins when both are set.
type Input struct {
	Text string
	Code string
}

// Config holds configuration options for the resolution engine.
type Config struct {
	// OnProgress receives generation progress events. May be nil.
	OnProgress model.ProgressFunc
}

// ResolutionEngine orchestrates one resolution run end to end: match,
// detect, confirm, cache lookup, and on-demand generation.
type ResolutionEngine struct {
	storage    service.Storage
	catalog    *catalog.Catalog
	matcher    *match.Engine
	classifier Classifier
	generator  Generator
	prompter   Prompter
	onProgress model.ProgressFunc
}

// New creates a resolution engine with the given dependencies. The
// classifier and generator may be nil: without a classifier,
// inconclusive matches resolve to the detection-failed state and the
// user picks manually; without a generator, runs complete with
// fallback data instead of a profile.
func New(store service.Storage, cat *catalog.Catalog, matcher *match.Engine, classifier Classifier, generator Generator, prompter Prompter) *ResolutionEngine {
	return NewWithConfig(store, cat, matcher, classifier, generator, prompter, Config{})
}

// NewWithConfig creates a resolution engine with custom configuration.
func NewWithConfig(store service.Storage, cat *catalog.Catalog, matcher *match.Engine, classifier Classifier, generator Generator, prompter Prompter, cfg Config) *ResolutionEngine {
	return &ResolutionEngine{
		storage:    store,
		catalog:    cat,
		matcher:    matcher,
		classifier: classifier,
		generator:  generator,
		prompter:   prompter,
		onProgress: cfg.OnProgress,
	}
}

// Resolve runs one resolution from input to a terminal result. The only
// hard errors are an empty catalog, an unknown explicit code, and
// context cancellation; classifier, cache, and generation failures all
// degrade into a usable result instead.
func (e *ResolutionEngine) Resolve(ctx context.Context, input Input) (model.ResolutionResult, error) {
	if e.catalog.Empty() {
		return model.ResolutionResult{}, common.NewUserError("no categories available to resolve against", common.ErrEmptyCatalog)
	}

	run := newRun(input)

	rec, source, confidence, result, err := e.selectCategory(ctx, input)
	if err != nil {
		return model.ResolutionResult{}, err
	}
	if rec == nil {
		// Detection failed or was corrected; terminal without a code.
		e.finish(ctx, run, result)
		return result, nil
	}

	result = model.ResolutionResult{
		Status:      model.StatusConfirmed,
		Code:        rec.Code,
		DisplayName: rec.DisplayName,
		Source:      source,
		Confidence:  confidence,
	}

	if cached := e.lookupProfile(ctx, rec.Code); cached != nil {
		slog.Info("Profile cache hit", "code", rec.Code)
		result.ProfileAvailable = true
		e.finish(ctx, run, result)
		return result, nil
	}

	slog.Info("Profile cache miss, generating", "code", rec.Code, "category", rec.DisplayName)

	if e.generator == nil {
		slog.Warn("No generator configured, continuing without profile", "code", rec.Code)
		result.FallbackData = true
		e.finish(ctx, run, result)
		return result, nil
	}

	if _, genErr := e.generator.Generate(ctx, rec.Code, rec.DisplayName, e.onProgress); genErr != nil {
		// Generation failure is never fatal to the run; the caller
		// proceeds with fallback data.
		slog.Warn("Continuing without profile",
			"code", rec.Code,
			"error", genErr)
		result.ProfileAvailable = false
		result.FallbackData = true
	} else {
		result.ProfileAvailable = true
	}

	e.finish(ctx, run, result)
	return result, nil
}

// selectCategory picks the category record for this run. A nil record
// with a non-zero result means the run ended without a selection.
func (e *ResolutionEngine) selectCategory(ctx context.Context, input Input) (*model.CategoryRecord, model.ResolutionSource, float64, model.ResolutionResult, error) {
	if input.Code != "" {
		rec := e.catalog.Get(input.Code)
		if rec == nil {
			return nil, "", 0, model.ResolutionResult{}, fmt.Errorf("%w: %s", common.ErrUnknownCategory, input.Code)
		}
		return rec, model.SourceSelection, 1.0, model.ResolutionResult{}, nil
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, "", 0, model.ResolutionResult{}, common.ErrEmptyInput
	}

	outcome := e.matcher.Match(text)
	if outcome.Strong() {
		g := gate.New()
		if err := g.AutoConfirm(outcome); err != nil {
			return nil, "", 0, model.ResolutionResult{}, err
		}
		slog.Info("Match auto-confirmed",
			"code", outcome.Record.Code,
			"kind", outcome.Kind,
			"confidence", outcome.Confidence)
		return outcome.Record, model.SourceMatch, outcome.Confidence, model.ResolutionResult{}, nil
	}

	return e.detectCategory(ctx, text)
}

// detectCategory routes weak and failed matches through the classifier
// and the confirmation gate.
func (e *ResolutionEngine) detectCategory(ctx context.Context, text string) (*model.CategoryRecord, model.ResolutionSource, float64, model.ResolutionResult, error) {
	g := gate.New()
	if err := g.BeginDetection(); err != nil {
		return nil, "", 0, model.ResolutionResult{}, err
	}

	if e.classifier == nil {
		_ = g.FailDetection()
		slog.Warn("No classifier configured, falling back to manual selection")
		return nil, "", 0, model.ResolutionResult{Status: model.StatusDetectionFailed}, nil
	}

	detection, err := e.classifier.DetectCategory(ctx, text, e.catalog.Records())
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", 0, model.ResolutionResult{}, ctx.Err()
		}
		_ = g.FailDetection()
		slog.Warn("Category detection failed, falling back to manual selection", "error", err)
		return nil, "", 0, model.ResolutionResult{Status: model.StatusDetectionFailed}, nil
	}

	if err := g.Present(detection); err != nil {
		return nil, "", 0, model.ResolutionResult{}, err
	}

	decision, err := e.prompter.ConfirmDetection(ctx, *detection)
	if err != nil {
		return nil, "", 0, model.ResolutionResult{}, fmt.Errorf("confirmation failed: %w", err)
	}

	switch decision {
	case model.DecisionConfirm:
		if err := g.Confirm(); err != nil {
			return nil, "", 0, model.ResolutionResult{}, err
		}
		rec := e.catalog.Get(detection.Code)
		if rec == nil {
			// Detector validated the code against the catalog; a miss
			// here means the catalog changed under us.
			slog.Warn("Confirmed code vanished from catalog", "code", detection.Code)
			return nil, "", 0, model.ResolutionResult{Status: model.StatusDetectionFailed}, nil
		}
		return rec, model.SourceDetection, detection.Confidence, model.ResolutionResult{}, nil

	case model.DecisionCorrect:
		if err := g.Correct(); err != nil {
			return nil, "", 0, model.ResolutionResult{}, err
		}
		slog.Info("Detection rejected, returning to manual selection")
		return nil, "", 0, model.ResolutionResult{Status: model.StatusCorrected}, nil

	default:
		return nil, "", 0, model.ResolutionResult{}, fmt.Errorf("unknown confirmation decision: %s", decision)
	}
}

// lookupProfile is the cache adapter: a read that cannot confirm
// existence is a miss, never "exists but inaccessible", so the run can
// never wedge on a profile it cannot prove is there. The cost is a
// possible redundant generation when the read channel is degraded.
func (e *ResolutionEngine) lookupProfile(ctx context.Context, code string) *model.Profile {
	profile, err := e.storage.GetProfile(ctx, code)
	if err != nil {
		slog.Warn("Profile lookup failed, treating as miss", "code", code, "error", err)
		return nil
	}
	return profile
}

// finish records the run in the audit log. Audit failures only cost
// history, never the result.
func (e *ResolutionEngine) finish(ctx context.Context, run *resolutionRun, result model.ResolutionResult) {
	record := run.record(result)
	if err := e.storage.SaveResolution(ctx, record); err != nil {
		slog.Warn("Failed to record resolution run", "run_id", record.ID, "error", err)
	}
}
