package model

import (
	"fmt"
	"time"
)

// ContentDocument is a long-form Markdown design document.
type ContentDocument struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Title       string `json:"title"`
	Body        string `json:"content"`
	Version     string `json:"version,omitempty"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// Format is an export document shape.
type Format string

// Supported export formats.
const (
	FormatClaudeContext  Format = "claude-context"
	FormatCursorDev      Format = "cursor-dev"
	FormatTeamReview     Format = "team-review"
	FormatSystemOverview Format = "system-overview"
)

// Formats lists every supported format in display order.
var Formats = []Format{
	FormatClaudeContext,
	FormatCursorDev,
	FormatTeamReview,
	FormatSystemOverview,
}

// ParseFormat validates s against the supported formats.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ExportRequest selects what goes into an export.
type ExportRequest struct {
	Format         Format   `json:"format"`
	IncludeSystems []string `json:"include_systems"`
	IncludeRelated bool     `json:"include_related"`
	// MaxTokens is recorded with the export but not enforced.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// ExportResult is a rendered export plus the request metadata echoed back.
type ExportResult struct {
	Content      string    `json:"content"`
	Format       Format    `json:"format"`
	GeneratedAt  time.Time `json:"generated_at"`
	Systems      []string  `json:"systems"`
	ApproxTokens int       `json:"approx_tokens"`
}

// ExportRecord is an archived export.
type ExportRecord struct {
	ID             string     `json:"id"`
	Format         Format     `json:"format"`
	Systems        []string   `json:"systems"`
	IncludeRelated bool       `json:"include_related"`
	MaxTokens      int        `json:"max_tokens,omitempty"`
	Content        string     `json:"content,omitempty"`
	ApproxTokens   int        `json:"approx_tokens"`
	GeneratedAt    time.Time  `json:"generated_at"`
	CreatedAt      time.Time  `json:"created_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}
