package storage

import (
	"context"
	"fmt"
)

// validateContext guards against nil or already-canceled contexts at the
// storage boundary.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context already done: %w", err)
	}
	return nil
}

// validateString rejects empty required string arguments.
func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	return nil
}
