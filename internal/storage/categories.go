package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/brandforge/brandforge/internal/model"
)

// ReplaceCategories overwrites the stored catalog snapshot with the
// given records, preserving has_profile flags for codes that survive.
func (s *SQLiteStorage) ReplaceCategories(ctx context.Context, records []model.CategoryRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO categories (code, display_name, keywords, grp, popularity, has_profile)
		VALUES (?, ?, ?, ?, ?, 0)
		ON CONFLICT(code) DO UPDATE SET
			display_name = excluded.display_name,
			keywords = excluded.keywords,
			grp = excluded.grp,
			popularity = excluded.popularity,
			updated_at = CURRENT_TIMESTAMP`

	for _, rec := range records {
		keywords, marshalErr := json.Marshal(rec.Keywords)
		if marshalErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to marshal keywords for %s: %w", rec.Code, marshalErr)
		}

		if _, execErr := tx.ExecContext(ctx, query, rec.Code, rec.DisplayName, string(keywords), rec.Group, rec.Popularity); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to upsert category %s: %w", rec.Code, execErr)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog snapshot: %w", err)
	}

	slog.Debug("stored catalog snapshot", "count", len(records))
	return nil
}

// GetCategories returns the stored catalog snapshot in popularity order.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.CategoryRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT code, display_name, keywords, grp, popularity, has_profile
		FROM categories
		ORDER BY popularity DESC, code`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.CategoryRecord
	for rows.Next() {
		var rec model.CategoryRecord
		var keywords string
		var hasProfile int
		if err := rows.Scan(&rec.Code, &rec.DisplayName, &keywords, &rec.Group, &rec.Popularity, &hasProfile); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if err := json.Unmarshal([]byte(keywords), &rec.Keywords); err != nil {
			return nil, fmt.Errorf("failed to unmarshal keywords for %s: %w", rec.Code, err)
		}
		rec.HasProfile = hasProfile == 1
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return records, nil
}

// MarkProfileAvailable flags a category as having a generated profile.
func (s *SQLiteStorage) MarkProfileAvailable(ctx context.Context, code string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(code, "code"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE categories SET has_profile = 1, updated_at = CURRENT_TIMESTAMP WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("failed to mark profile available: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		slog.Debug("no catalog row for generated profile", "code", code)
	}

	return nil
}
