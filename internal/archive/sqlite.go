package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rogue-resident/rogue-docs/internal/model"
)

const exportColumns = `e.id, e.format, e.systems, e.include_related, e.max_tokens, e.content,
	e.approx_tokens, e.generated_at, e.created_at, e.deleted_at`

// SQLiteStore implements Archive using SQLite.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

var _ Archive = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exports (
		id              TEXT PRIMARY KEY,
		format          TEXT NOT NULL,
		systems         TEXT NOT NULL,
		include_related INTEGER NOT NULL DEFAULT 0,
		max_tokens      INTEGER,
		content         TEXT NOT NULL,
		approx_tokens   INTEGER NOT NULL DEFAULT 0,
		generated_at    TEXT NOT NULL,
		created_at      TEXT NOT NULL,
		deleted_at      TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_exports_format ON exports(format);
	CREATE INDEX IF NOT EXISTS idx_exports_created ON exports(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_exports_deleted ON exports(deleted_at);

	CREATE VIRTUAL TABLE IF NOT EXISTS exports_fts USING fts5(
		content,
		content=exports,
		content_rowid=rowid
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// FTS5 triggers keep the index in sync with the exports table
	triggers := []string{
		`CREATE TRIGGER IF NOT EXISTS exports_ai AFTER INSERT ON exports BEGIN
			INSERT INTO exports_fts(rowid, content) VALUES (new.rowid, new.content);
		END`,
		`CREATE TRIGGER IF NOT EXISTS exports_ad AFTER DELETE ON exports BEGIN
			INSERT INTO exports_fts(exports_fts, rowid, content) VALUES('delete', old.rowid, old.content);
		END`,
		`CREATE TRIGGER IF NOT EXISTS exports_au AFTER UPDATE OF content ON exports BEGIN
			INSERT INTO exports_fts(exports_fts, rowid, content) VALUES('delete', old.rowid, old.content);
			INSERT INTO exports_fts(rowid, content) VALUES (new.rowid, new.content);
		END`,
	}
	for _, stmt := range triggers {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create trigger: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, req model.ExportRequest, res *model.ExportResult) (*model.ExportRecord, error) {
	if res == nil {
		return nil, fmt.Errorf("save: nil export result")
	}
	now := time.Now().UTC()
	rec := &model.ExportRecord{
		ID:             s.newID(now),
		Format:         res.Format,
		Systems:        append([]string(nil), res.Systems...),
		IncludeRelated: req.IncludeRelated,
		MaxTokens:      req.MaxTokens,
		Content:        res.Content,
		ApproxTokens:   res.ApproxTokens,
		GeneratedAt:    res.GeneratedAt.UTC(),
		CreatedAt:      now,
	}
	if rec.Systems == nil {
		rec.Systems = []string{}
	}

	systemsJSON, err := json.Marshal(rec.Systems)
	if err != nil {
		return nil, fmt.Errorf("encode systems: %w", err)
	}
	var maxTokens *int
	if rec.MaxTokens > 0 {
		maxTokens = &rec.MaxTokens
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO exports (id, format, systems, include_related, max_tokens, content, approx_tokens, generated_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.Format), string(systemsJSON), rec.IncludeRelated, maxTokens, rec.Content,
		rec.ApproxTokens, rec.GeneratedAt.Format(time.RFC3339Nano), rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert export: %w", err)
	}
	return rec, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.ExportRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+exportColumns+` FROM exports e WHERE e.id = ? AND e.deleted_at IS NULL`, id)
	rec, err := scanExport(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.ExportRecord, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"e.deleted_at IS NULL"}
	args := []interface{}{}
	if p.Format != "" {
		where = append(where, "e.format = ?")
		args = append(args, string(p.Format))
	}
	if p.System != "" {
		systemJSON, _ := json.Marshal(p.System)
		where = append(where, "e.systems LIKE ?")
		args = append(args, "%"+string(systemJSON)+"%")
	}

	query := `SELECT ` + exportColumns + ` FROM exports e
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY e.id DESC
		LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExports(rows)
}

func (s *SQLiteStore) Rm(ctx context.Context, p RmParams) error {
	var res sql.Result
	var err error
	if p.Hard {
		res, err = s.db.ExecContext(ctx, `DELETE FROM exports WHERE id = ?`, p.ID)
	} else {
		now := time.Now().UTC().Format(time.RFC3339Nano)
		res, err = s.db.ExecContext(ctx,
			`UPDATE exports SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, now, p.ID)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanExports(rows *sql.Rows) ([]model.ExportRecord, error) {
	out := []model.ExportRecord{}
	for rows.Next() {
		rec, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanExport(row scanner) (model.ExportRecord, error) {
	var rec model.ExportRecord
	var format, systemsJSON, generatedAt, createdAt string
	var maxTokens sql.NullInt64
	var deletedAt sql.NullString

	err := row.Scan(
		&rec.ID, &format, &systemsJSON, &rec.IncludeRelated, &maxTokens, &rec.Content,
		&rec.ApproxTokens, &generatedAt, &createdAt, &deletedAt,
	)
	if err != nil {
		return rec, err
	}

	rec.Format = model.Format(format)
	if err := json.Unmarshal([]byte(systemsJSON), &rec.Systems); err != nil {
		return rec, fmt.Errorf("decode systems of %s: %w", rec.ID, err)
	}
	if maxTokens.Valid {
		rec.MaxTokens = int(maxTokens.Int64)
	}
	rec.GeneratedAt, _ = time.Parse(time.RFC3339Nano, generatedAt)
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if deletedAt.Valid {
		t, _ := time.Parse(time.RFC3339Nano, deletedAt.String)
		rec.DeletedAt = &t
	}
	return rec, nil
}
