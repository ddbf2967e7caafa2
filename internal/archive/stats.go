package archive

import (
	"context"
	"os"
)

// Stats holds archive statistics.
type Stats struct {
	DBPath        string        `json:"db_path"`
	DBSizeBytes   int64         `json:"db_size_bytes"`
	TotalExports  int           `json:"total_exports"`
	ActiveExports int           `json:"active_exports"`
	Formats       []FormatStats `json:"formats"`
}

// FormatStats holds per-format counts of live exports.
type FormatStats struct {
	Format       string `json:"format"`
	Count        int    `json:"count"`
	ApproxTokens int    `json:"approx_tokens"`
}

// Stats returns archive statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath, Formats: []FormatStats{}}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exports`).Scan(&st.TotalExports); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exports WHERE deleted_at IS NULL`).Scan(&st.ActiveExports); err != nil {
		return st, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT format, COUNT(*) AS cnt, COALESCE(SUM(approx_tokens), 0)
		FROM exports WHERE deleted_at IS NULL
		GROUP BY format ORDER BY cnt DESC, format`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var fs FormatStats
		if err := rows.Scan(&fs.Format, &fs.Count, &fs.ApproxTokens); err != nil {
			return st, err
		}
		st.Formats = append(st.Formats, fs)
	}
	return st, rows.Err()
}
