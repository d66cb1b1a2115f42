package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/brandforge/brandforge/internal/model"
)

// SaveResolution appends one resolution run to the audit log.
func (s *SQLiteStorage) SaveResolution(ctx context.Context, record *model.ResolutionRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("resolution record cannot be nil")
	}
	if err := validateString(record.ID, "resolution id"); err != nil {
		return err
	}

	query := `
		INSERT INTO resolutions (id, input, code, status, source, confidence, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.Input,
		record.Code,
		string(record.Status),
		string(record.Source),
		record.Confidence,
		record.StartedAt,
		record.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to save resolution: %w", err)
	}

	return nil
}

// RecentResolutions returns the most recent resolution runs, newest first.
func (s *SQLiteStorage) RecentResolutions(ctx context.Context, limit int) ([]model.ResolutionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, input, code, status, source, confidence, started_at, duration_ms
		FROM resolutions
		ORDER BY started_at DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query resolutions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.ResolutionRecord
	for rows.Next() {
		var rec model.ResolutionRecord
		var status, source string
		var durationMs int64
		if err := rows.Scan(&rec.ID, &rec.Input, &rec.Code, &status, &source, &rec.Confidence, &rec.StartedAt, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan resolution: %w", err)
		}
		rec.Status = model.ResolutionStatus(status)
		rec.Source = model.ResolutionSource(source)
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resolutions: %w", err)
	}

	return records, nil
}
