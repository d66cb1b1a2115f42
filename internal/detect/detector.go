package detect

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brandforge/brandforge/internal/model"
)

// DetectionError indicates the classifier was unreachable or returned an
// unusable result. Callers surface it as "please pick manually"; the
// detector never retries on its own.
type DetectionError struct {
	Err error
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("category detection failed: %v", e.Err)
}

func (e *DetectionError) Unwrap() error {
	return e.Err
}

const detectSystemPrompt = "You are a business category classifier for a marketing platform. " +
	"Respond only in the exact plain-text format requested, with no markdown or commentary."

// Detector classifies business text into catalog categories via an LLM.
type Detector struct {
	client      Client
	cache       *detectionCache
	rateLimiter *rateLimiter
	logger      *slog.Logger
}

// NewDetector creates an LLM-backed detector.
func NewDetector(cfg Config, logger *slog.Logger) (*Detector, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return NewDetectorWithClient(client, cfg, logger), nil
}

// NewDetectorWithClient creates a detector over an existing client.
func NewDetectorWithClient(client Client, cfg Config, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}

	return &Detector{
		client:      client,
		cache:       newDetectionCache(cfg.CacheTTL),
		rateLimiter: newRateLimiter(cfg.RateLimit),
		logger:      logger,
	}
}

// DetectCategory returns the classifier's best-guess category for the
// given text, constrained to the candidate records. Any failure is
// wrapped in a DetectionError.
func (d *Detector) DetectCategory(ctx context.Context, text string, candidates []model.CategoryRecord) (*model.DetectionResult, error) {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return nil, &DetectionError{Err: fmt.Errorf("empty input text")}
	}
	if len(candidates) == 0 {
		return nil, &DetectionError{Err: fmt.Errorf("no candidate categories")}
	}

	if cached, found := d.cache.get(key); found {
		d.logger.Debug("detection cache hit", "text", key)
		return &cached, nil
	}

	if err := d.rateLimiter.wait(ctx); err != nil {
		return nil, &DetectionError{Err: err}
	}

	content, err := d.client.Complete(ctx, detectSystemPrompt, buildDetectionPrompt(text, candidates))
	if err != nil {
		return nil, &DetectionError{Err: err}
	}

	result, err := parseDetection(content)
	if err != nil {
		return nil, &DetectionError{Err: err}
	}

	if !candidateCode(candidates, result.Code) {
		return nil, &DetectionError{Err: fmt.Errorf("detected code %q is not in the catalog", result.Code)}
	}

	d.cache.set(key, *result)

	d.logger.Info("category detected",
		"code", result.Code,
		"category", result.DisplayName,
		"confidence", result.Confidence)

	return result, nil
}

// Close stops background goroutines and cleans up resources.
func (d *Detector) Close() error {
	if d.cache != nil {
		d.cache.Close()
	}
	if d.rateLimiter != nil {
		d.rateLimiter.Close()
	}
	return nil
}

// buildDetectionPrompt creates the prompt for category detection.
func buildDetectionPrompt(text string, candidates []model.CategoryRecord) string {
	var categoryList strings.Builder
	for _, rec := range candidates {
		fmt.Fprintf(&categoryList, "- %s | %s | %s\n", rec.Code, rec.DisplayName, rec.Group)
	}

	return fmt.Sprintf(`Classify this business description into exactly one of the listed categories.

Business description:
%s

Categories (code | name | group):
%s
Instructions:
1. Pick the single best-fitting category from the list above. Never invent a code.
2. Estimate your confidence between 0.0 and 1.0 based on how specific the description is.
3. Respond in this exact format:

CODE: <category code>
NAME: <category name>
GROUP: <category group>
CONFIDENCE: <0.0-1.0>
KEYWORDS: <comma-separated terms from the description that drove the choice>
REASONING: <one sentence explaining the choice>`,
		strings.TrimSpace(text),
		categoryList.String())
}

func candidateCode(candidates []model.CategoryRecord, code string) bool {
	for _, rec := range candidates {
		if rec.Code == code {
			return true
		}
	}
	return false
}
