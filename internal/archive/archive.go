// Package archive keeps generated exports in a local SQLite database.
package archive

import (
	"context"
	"errors"

	"github.com/rogue-resident/rogue-docs/internal/model"
)

// ErrNotFound is returned when no live export has the requested id.
var ErrNotFound = errors.New("export not found")

// ListParams holds parameters for listing exports.
type ListParams struct {
	Format model.Format
	System string
	Limit  int
}

// SearchParams holds parameters for searching export content.
type SearchParams struct {
	Query  string
	Format model.Format
	Limit  int
}

// RmParams holds parameters for deleting an export.
type RmParams struct {
	ID   string
	Hard bool
}

// Archive defines the export archive interface.
type Archive interface {
	// Save stores a generated export and returns the archived record.
	Save(ctx context.Context, req model.ExportRequest, res *model.ExportResult) (*model.ExportRecord, error)

	// Get retrieves an export by id.
	Get(ctx context.Context, id string) (*model.ExportRecord, error)

	// List lists exports newest first.
	List(ctx context.Context, p ListParams) ([]model.ExportRecord, error)

	// Search finds exports whose content matches a query.
	Search(ctx context.Context, p SearchParams) ([]model.ExportRecord, error)

	// Rm soft-deletes (or hard-deletes) an export.
	Rm(ctx context.Context, p RmParams) error

	// Close closes the archive.
	Close() error
}
