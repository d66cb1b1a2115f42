// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/brandforge/brandforge/internal/model"
)

// CatalogSource supplies category records for a session. It may return an
// empty list; callers fall back to the bundled catalog in that case.
type CatalogSource interface {
	List(ctx context.Context) ([]model.CategoryRecord, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Profile operations
	SaveProfile(ctx context.Context, profile *model.Profile) error
	GetProfile(ctx context.Context, code string) (*model.Profile, error)
	ProfileCodes(ctx context.Context) ([]string, error)

	// Catalog snapshot operations
	ReplaceCategories(ctx context.Context, records []model.CategoryRecord) error
	GetCategories(ctx context.Context) ([]model.CategoryRecord, error)
	MarkProfileAvailable(ctx context.Context, code string) error

	// Resolution audit log
	SaveResolution(ctx context.Context, record *model.ResolutionRecord) error
	RecentResolutions(ctx context.Context, limit int) ([]model.ResolutionRecord, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
