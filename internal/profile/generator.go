package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/brandforge/brandforge/internal/model"
	"github.com/brandforge/brandforge/internal/service"
)

// ErrGenerationTimeout indicates the run exceeded the generation ceiling.
var ErrGenerationTimeout = errors.New("profile generation timed out")

// GenerationError wraps any failure of a generation run. Callers treat
// it as non-fatal: the resolution continues with fallback data.
type GenerationError struct {
	Err  error
	Code string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("profile generation for %s failed: %v", e.Code, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Backend composes one profile section as JSON for the given stage.
type Backend interface {
	ComposeSection(ctx context.Context, stage model.GenerationStage, code, displayName string) ([]byte, error)
}

// Config holds configuration for the profile generator.
type Config struct {
	// Timeout is the hard ceiling for a whole generation run.
	Timeout time.Duration
	// EstimatedDuration feeds the ETA shown alongside progress events.
	EstimatedDuration time.Duration
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:           600 * time.Second,
		EstimatedDuration: 90 * time.Second,
	}
}

// Generator runs the staged profile synthesis pipeline.
type Generator struct {
	backend  Backend
	store    service.Storage
	logger   *slog.Logger
	timeout  time.Duration
	estimate time.Duration
}

// NewGenerator creates a profile generator.
func NewGenerator(backend Backend, store service.Storage, cfg Config, logger *slog.Logger) *Generator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.EstimatedDuration <= 0 {
		cfg.EstimatedDuration = DefaultConfig().EstimatedDuration
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		backend:  backend,
		store:    store,
		logger:   logger,
		timeout:  cfg.Timeout,
		estimate: cfg.EstimatedDuration,
	}
}

// Generate synthesizes, persists, and returns the profile for a category.
// Progress events flow through onProgress and terminate in exactly one
// of complete or failed. The run races a hard timeout; whichever settles
// first wins, and the loser's eventual outcome is discarded.
func (g *Generator) Generate(ctx context.Context, code, displayName string, onProgress model.ProgressFunc) (*model.Profile, error) {
	runCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	emitter := newProgressEmitter(onProgress, g.estimate)

	type outcome struct {
		profile *model.Profile
		err     error
	}
	done := make(chan outcome, 1)

	go func() {
		p, err := g.run(runCtx, code, displayName, emitter)
		done <- outcome{profile: p, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			// The run can lose to the ceiling and report the deadline
			// itself; normalize either path to the timeout error.
			if errors.Is(out.err, context.DeadlineExceeded) && ctx.Err() == nil {
				emitter.terminal(model.StageFailed, "Generation timed out")
				g.logger.Warn("profile generation hit the ceiling", "code", code, "timeout", g.timeout)
				return nil, &GenerationError{Code: code, Err: ErrGenerationTimeout}
			}
			g.logger.Error("profile generation failed", "code", code, "error", out.err)
			emitter.terminal(model.StageFailed, "Generation failed")
			return nil, &GenerationError{Code: code, Err: out.err}
		}
		emitter.terminal(model.StageComplete, "Profile ready")
		g.logger.Info("profile generated", "code", code, "category", displayName)
		return out.profile, nil

	case <-runCtx.Done():
		emitter.terminal(model.StageFailed, "Generation timed out")
		err := runCtx.Err()
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			g.logger.Warn("profile generation hit the ceiling", "code", code, "timeout", g.timeout)
			return nil, &GenerationError{Code: code, Err: ErrGenerationTimeout}
		}
		return nil, &GenerationError{Code: code, Err: err}
	}
}

// run executes the composed stages and persists the result.
func (g *Generator) run(ctx context.Context, code, displayName string, emitter *progressEmitter) (*model.Profile, error) {
	p := &model.Profile{
		Code:        code,
		DisplayName: displayName,
		GeneratedAt: time.Now().UTC(),
	}

	for _, st := range pipeline {
		emitter.emit(st.Stage, st.Percent, st.Message)

		raw, err := g.backend.ComposeSection(ctx, st.Stage, code, displayName)
		if err != nil {
			return nil, fmt.Errorf("%s stage: %w", st.Stage, err)
		}
		if err := applySection(p, st.Stage, raw); err != nil {
			return nil, err
		}
	}

	emitter.emit(model.StageSaving, savingPercent, "Saving profile")

	if err := g.store.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to persist profile: %w", err)
	}
	if err := g.store.MarkProfileAvailable(ctx, code); err != nil {
		g.logger.Warn("failed to flag category profile availability", "code", code, "error", err)
	}

	return p, nil
}

// progressEmitter serializes progress events, keeps percents
// non-decreasing, and drops anything arriving after a terminal event so
// a losing goroutine cannot speak after the race is decided.
type progressEmitter struct {
	fn          model.ProgressFunc
	start       time.Time
	estimate    time.Duration
	lastPercent int
	done        bool
	mu          sync.Mutex
}

func newProgressEmitter(fn model.ProgressFunc, estimate time.Duration) *progressEmitter {
	return &progressEmitter{
		fn:       fn,
		start:    time.Now(),
		estimate: estimate,
	}
}

func (e *progressEmitter) emit(stage model.GenerationStage, percent int, message string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.done || e.fn == nil {
		return
	}
	if percent < e.lastPercent {
		percent = e.lastPercent
	}
	e.lastPercent = percent

	e.fn(model.GenerationProgress{
		Stage:      stage,
		Percent:    percent,
		Message:    message,
		ETASeconds: e.eta(percent),
	})
}

func (e *progressEmitter) terminal(stage model.GenerationStage, message string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.done {
		return
	}
	e.done = true

	if e.fn == nil {
		return
	}

	percent := e.lastPercent
	if stage == model.StageComplete {
		percent = completePercent
	}

	e.fn(model.GenerationProgress{
		Stage:      stage,
		Percent:    percent,
		Message:    message,
		ETASeconds: 0,
	})
}

func (e *progressEmitter) eta(percent int) int {
	if percent >= completePercent {
		return 0
	}
	remaining := e.estimate - time.Since(e.start)
	if remaining < 0 {
		remaining = 0
	}
	return int(remaining.Seconds())
}
