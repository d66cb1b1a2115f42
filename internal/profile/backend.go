package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/brandforge/brandforge/internal/common"
	"github.com/brandforge/brandforge/internal/detect"
	"github.com/brandforge/brandforge/internal/model"
	"github.com/brandforge/brandforge/internal/service"
)

const composeSystemPrompt = "You are a marketing strategist building a reusable content profile " +
	"for a business category. Respond with ONLY a valid JSON object matching the requested schema. " +
	"Start your response with { and end with }."

// sectionSchemas describe the JSON shape expected from the model for
// each composed stage.
var sectionSchemas = map[model.GenerationStage]string{
	model.StageResearch: `{
  "industrySummary": "two sentences about the industry",
  "painPoints": ["customer pain point", "..."],
  "buyingTriggers": ["event that triggers a purchase", "..."],
  "seasonality": "one sentence on seasonal demand patterns"
}`,
	model.StagePsychology: `{
  "emotionalDrivers": ["emotion that drives buying decisions", "..."],
  "trustFactors": ["what makes customers trust a provider", "..."],
  "commonObjections": ["hesitation customers voice", "..."]
}`,
	model.StageMarket: `{
  "segments": ["customer segment", "..."],
  "competitors": ["typical competitor type", "..."],
  "differentiators": ["way a business stands out", "..."],
  "priceSensitivity": "one sentence on price sensitivity"
}`,
	model.StageMessaging: `{
  "valueProps": ["value proposition", "..."],
  "hooks": ["attention-grabbing opening line", "..."],
  "headlines": ["ad headline", "..."],
  "callsToAction": ["call to action", "..."],
  "tone": "one phrase describing the recommended tone"
}`,
	model.StageGenerating: `{
  "angles": ["campaign angle", "..."],
  "offers": ["promotional offer idea", "..."],
  "audiences": ["audience to target", "..."]
}`,
}

// LLMBackend composes profile sections through an LLM client. Section
// calls retry on transient failures; the generator's overall timeout
// still bounds the whole run.
type LLMBackend struct {
	client    detect.Client
	logger    *slog.Logger
	retryOpts service.RetryOptions
}

// NewLLMBackend creates a backend over an existing LLM client.
func NewLLMBackend(client detect.Client, logger *slog.Logger) *LLMBackend {
	if logger == nil {
		logger = slog.Default()
	}

	return &LLMBackend{
		client: client,
		logger: logger,
		retryOpts: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Second,
			MaxDelay:     15 * time.Second,
			Multiplier:   2.0,
		},
	}
}

// ComposeSection generates the JSON for one profile section.
func (b *LLMBackend) ComposeSection(ctx context.Context, stage model.GenerationStage, code, displayName string) ([]byte, error) {
	schema, ok := sectionSchemas[stage]
	if !ok {
		return nil, fmt.Errorf("no section prompt for stage %s", stage)
	}

	prompt := fmt.Sprintf(`Build the %s section of a marketing content profile.

Business category: %s (code %s)

Return a JSON object with exactly this shape, filled with specific,
useful content for this category (3-5 items per list):

%s`, stage, displayName, code, schema)

	var raw []byte
	err := common.WithRetry(ctx, func() error {
		content, err := b.client.Complete(ctx, composeSystemPrompt, prompt)
		if err != nil {
			b.logger.Warn("section composition attempt failed", "stage", stage, "error", err)
			return &common.RetryableError{Err: err, Retryable: true}
		}

		cleaned := []byte(stripMarkdownFences(content))
		if !json.Valid(cleaned) {
			return &common.RetryableError{
				Err:       fmt.Errorf("model returned invalid JSON for %s section", stage),
				Retryable: true,
			}
		}

		raw = cleaned
		return nil
	}, b.retryOpts)

	if err != nil {
		return nil, fmt.Errorf("failed to compose %s section: %w", stage, err)
	}

	return raw, nil
}

// stripMarkdownFences removes a ```json ... ``` wrapper if the model
// added one despite instructions.
func stripMarkdownFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
