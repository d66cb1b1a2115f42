package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brandforge/brandforge/internal/model"
)

// SaveProfile persists a generated profile, replacing any previous one
// for the same code. Writes are idempotent per code.
func (s *SQLiteStorage) SaveProfile(ctx context.Context, profile *model.Profile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("profile cannot be nil")
	}
	if err := validateString(profile.Code, "profile code"); err != nil {
		return err
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := `
		INSERT INTO profiles (code, display_name, payload, generated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			display_name = excluded.display_name,
			payload = excluded.payload,
			generated_at = excluded.generated_at`

	if _, err := s.db.ExecContext(ctx, query, profile.Code, profile.DisplayName, string(payload), profile.GeneratedAt); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	slog.Debug("saved profile", "code", profile.Code)
	return nil
}

// GetProfile returns the profile for a code, or nil when none exists.
func (s *SQLiteStorage) GetProfile(ctx context.Context, code string) (*model.Profile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(code, "code"); err != nil {
		return nil, err
	}

	query := `SELECT payload FROM profiles WHERE code = ?`

	var payload string
	err := s.db.QueryRowContext(ctx, query, code).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Not generated yet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	var profile model.Profile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", code, err)
	}

	return &profile, nil
}

// ProfileCodes returns the codes of all stored profiles.
func (s *SQLiteStorage) ProfileCodes(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT code FROM profiles ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile codes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan profile code: %w", err)
		}
		codes = append(codes, code)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile codes: %w", err)
	}

	return codes, nil
}
