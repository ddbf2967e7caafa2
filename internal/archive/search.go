package archive

import (
	"context"
	"strings"

	"github.com/rogue-resident/rogue-docs/internal/model"
)

// Search finds live exports whose content matches the query. The query
// is tried as an FTS5 expression first; if FTS rejects it the search
// falls back to a substring match.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]model.ExportRecord, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	if strings.TrimSpace(p.Query) == "" {
		return s.List(ctx, ListParams{Format: p.Format, Limit: limit})
	}

	where := []string{"exports_fts MATCH ?", "e.deleted_at IS NULL"}
	args := []interface{}{p.Query}
	if p.Format != "" {
		where = append(where, "e.format = ?")
		args = append(args, string(p.Format))
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+exportColumns+`
		FROM exports_fts
		INNER JOIN exports e ON e.rowid = exports_fts.rowid
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY exports_fts.rank
		LIMIT ?`, args...)
	if err == nil {
		defer rows.Close()
		results, scanErr := scanExports(rows)
		if scanErr == nil {
			return results, nil
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return s.searchLike(ctx, p, limit)
}

func (s *SQLiteStore) searchLike(ctx context.Context, p SearchParams, limit int) ([]model.ExportRecord, error) {
	where := []string{"e.deleted_at IS NULL", "e.content LIKE ?"}
	args := []interface{}{"%" + p.Query + "%"}
	if p.Format != "" {
		where = append(where, "e.format = ?")
		args = append(args, string(p.Format))
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+exportColumns+`
		FROM exports e
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY e.id DESC
		LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExports(rows)
}
