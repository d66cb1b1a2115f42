// Package detect classifies free-form business text into catalog
// categories using an LLM provider.
package detect

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Client defines the interface for LLM providers. Both category
// detection and profile section composition go through Complete.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Config holds configuration for the LLM-backed detector.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	CacheTTL    time.Duration
	RateLimit   int
	Timeout     time.Duration
}

// NewClient creates an LLM client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
