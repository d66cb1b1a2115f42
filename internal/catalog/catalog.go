// Package catalog holds the read-only business category catalog for a session.
package catalog

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/brandforge/brandforge/internal/model"
	"github.com/brandforge/brandforge/internal/service"
)

// Catalog is an immutable, indexed set of category records. It is built
// once at session start and is safe for unsynchronized concurrent reads.
type Catalog struct {
	byCode map[string]*model.CategoryRecord
	byName map[string]*model.CategoryRecord
	// records sorted by popularity descending, then code, so iteration
	// order is stable across calls.
	records []model.CategoryRecord
}

// New builds a catalog from the given records. Records with duplicate
// codes keep the first occurrence.
func New(records []model.CategoryRecord) *Catalog {
	sorted := make([]model.CategoryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Popularity != sorted[j].Popularity {
			return sorted[i].Popularity > sorted[j].Popularity
		}
		return sorted[i].Code < sorted[j].Code
	})

	c := &Catalog{
		records: make([]model.CategoryRecord, 0, len(sorted)),
		byCode:  make(map[string]*model.CategoryRecord, len(sorted)),
		byName:  make(map[string]*model.CategoryRecord, len(sorted)),
	}

	for _, rec := range sorted {
		if _, exists := c.byCode[rec.Code]; exists {
			slog.Warn("Skipping duplicate category code", "code", rec.Code)
			continue
		}
		c.records = append(c.records, rec)
		stored := &c.records[len(c.records)-1]
		c.byCode[rec.Code] = stored
		c.byName[strings.ToLower(rec.DisplayName)] = stored
	}

	return c
}

// Load builds the session catalog, preferring the remote source when it
// yields records and falling back to the bundled list otherwise. Load
// never fails; a degraded source only costs catalog freshness.
func Load(ctx context.Context, source service.CatalogSource) *Catalog {
	if source == nil {
		return New(bundledCategories())
	}

	records, err := source.List(ctx)
	if err != nil {
		slog.Warn("Remote catalog unavailable, using bundled categories", "error", err)
		return New(bundledCategories())
	}
	if len(records) == 0 {
		slog.Warn("Remote catalog returned no categories, using bundled list")
		return New(bundledCategories())
	}

	slog.Info("Loaded remote catalog", "count", len(records))
	return New(records)
}

// Get returns the record for a code, or nil if the code is unknown.
// The returned record must be treated as read-only.
func (c *Catalog) Get(code string) *model.CategoryRecord {
	return c.byCode[code]
}

// ByDisplayName returns the record whose display name equals name,
// ignoring case, or nil when there is none.
func (c *Catalog) ByDisplayName(name string) *model.CategoryRecord {
	return c.byName[strings.ToLower(strings.TrimSpace(name))]
}

// Records returns all records in popularity order. Callers must not
// modify the returned slice.
func (c *Catalog) Records() []model.CategoryRecord {
	return c.records
}

// Search returns records whose display name, group, or keywords contain
// the query, case-insensitively, in popularity order.
func (c *Catalog) Search(query string) []model.CategoryRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []model.CategoryRecord
	for _, rec := range c.records {
		if strings.Contains(strings.ToLower(rec.DisplayName), query) ||
			strings.Contains(strings.ToLower(rec.Group), query) {
			matches = append(matches, rec)
			continue
		}
		for _, kw := range rec.Keywords {
			if strings.Contains(strings.ToLower(kw), query) {
				matches = append(matches, rec)
				break
			}
		}
	}
	return matches
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Empty reports whether the catalog has no records.
func (c *Catalog) Empty() bool {
	return len(c.records) == 0
}
