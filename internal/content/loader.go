// Package content loads the long-form Markdown design documents.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/rogue-resident/rogue-docs/internal/logger"
	"github.com/rogue-resident/rogue-docs/internal/model"
)

const docExt = ".md"

var (
	titlePattern   = regexp.MustCompile(`(?m)^# (.+)$`)
	versionPattern = regexp.MustCompile(`(?m)\*\*Document Version:\*\* (.+)$`)
	updatedPattern = regexp.MustCompile(`(?m)\*\*Last Updated:\*\* (.+)$`)
)

// ErrNotFound is returned by Get for an unknown document id.
var ErrNotFound = errors.New("document not found")

// Loader reads content documents from a single directory.
type Loader struct {
	root string
	log  *zap.Logger
}

// NewLoader returns a loader for root. A nil logger discards output.
func NewLoader(root string, log *zap.Logger) *Loader {
	return &Loader{root: root, log: logger.OrNop(log)}
}

// Root returns the content directory.
func (l *Loader) Root() string {
	return l.root
}

// Load reads every Markdown file directly inside the root, in filename
// order. A missing root yields an empty result. Files that fail to read
// are skipped.
func (l *Loader) Load(ctx context.Context) model.Ordered[model.ContentDocument] {
	var docs model.Ordered[model.ContentDocument]

	entries, err := os.ReadDir(l.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.log.Debug("content root missing", zap.String("root", l.root))
		} else {
			l.log.Warn("read content root", zap.String("root", l.root), zap.Error(err))
		}
		return docs
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return docs
		}
		if !isDocument(entry) {
			continue
		}
		doc, err := l.read(entry.Name())
		if err != nil {
			l.log.Warn("skip content document", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		docs.Set(doc.ID, doc)
	}
	return docs
}

// Get reads a single document by identifier.
func (l *Loader) Get(ctx context.Context, id string) (model.ContentDocument, error) {
	if err := ctx.Err(); err != nil {
		return model.ContentDocument{}, err
	}
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return model.ContentDocument{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	doc, err := l.read(id + docExt)
	if errors.Is(err, fs.ErrNotExist) {
		return model.ContentDocument{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return doc, err
}

func (l *Loader) read(name string) (model.ContentDocument, error) {
	b, err := os.ReadFile(filepath.Join(l.root, name))
	if err != nil {
		return model.ContentDocument{}, err
	}
	return ParseDocument(name, string(b)), nil
}

func isDocument(entry fs.DirEntry) bool {
	name := entry.Name()
	if entry.IsDir() || strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), docExt)
}

// ParseDocument extracts title, version and last-updated markers from a
// Markdown body. Missing markers are left empty; the title falls back to
// the filename without its extension.
func ParseDocument(filename, body string) model.ContentDocument {
	id := strings.TrimSuffix(filename, filepath.Ext(filename))
	doc := model.ContentDocument{
		ID:       id,
		Filename: filename,
		Title:    id,
		Body:     body,
	}
	if m := titlePattern.FindStringSubmatch(body); m != nil {
		doc.Title = strings.TrimSpace(m[1])
	}
	if m := versionPattern.FindStringSubmatch(body); m != nil {
		doc.Version = strings.TrimSpace(m[1])
	}
	if m := updatedPattern.FindStringSubmatch(body); m != nil {
		doc.LastUpdated = strings.TrimSpace(m[1])
	}
	return doc
}
