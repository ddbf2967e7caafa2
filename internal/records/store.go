// Package records reads structured game-system records and aggregates
// them per category.
package records

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rogue-resident/rogue-docs/internal/logger"
	"github.com/rogue-resident/rogue-docs/internal/model"
)

// Store returns every system record of a category.
type Store interface {
	// GetAll returns the records of category in source order. An unknown
	// or empty category yields an empty map and no error.
	GetAll(ctx context.Context, category string) (model.Ordered[model.SystemRecord], error)
}

// dataExts are tried in order; the first existing file wins.
var dataExts = []string{".json", ".yaml", ".yml"}

// FileStore reads one consolidated file per category from a directory.
type FileStore struct {
	dir string
	log *zap.Logger
}

// NewFileStore returns a store over dir. A nil logger discards output.
func NewFileStore(dir string, log *zap.Logger) *FileStore {
	return &FileStore{dir: dir, log: logger.OrNop(log)}
}

// Dir returns the data directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// GetAll reads <dir>/<category>.{json,yaml,yml}. Records that fail to
// decode are skipped with a warning.
func (s *FileStore) GetAll(ctx context.Context, category string) (model.Ordered[model.SystemRecord], error) {
	var out model.Ordered[model.SystemRecord]
	if err := ctx.Err(); err != nil {
		return out, err
	}
	if category == "" || strings.ContainsAny(category, `/\`) || strings.HasPrefix(category, ".") {
		return out, fmt.Errorf("invalid category %q", category)
	}

	path, data, err := s.readCategory(category)
	if err != nil {
		return out, err
	}
	if path == "" {
		s.log.Debug("no data file for category", zap.String("category", category), zap.String("dir", s.dir))
		return out, nil
	}

	if filepath.Ext(path) == ".json" {
		// Literal tabs in valid JSON are always whitespace; YAML rejects them as indentation.
		data = bytes.ReplaceAll(data, []byte("\t"), []byte(" "))
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return out, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(root.Content) == 0 {
		return out, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return out, fmt.Errorf("parse %s: top level must be a mapping of system id to record", path)
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		id := doc.Content[i].Value
		var rec model.SystemRecord
		if err := doc.Content[i+1].Decode(&rec); err != nil {
			s.log.Warn("skip system record",
				zap.String("category", category), zap.String("id", id), zap.Error(err))
			continue
		}
		rec.ID = id
		rec.Category = model.Category(category)
		if strings.TrimSpace(rec.Info.Name) == "" {
			rec.Info.Name = id
		}
		out.Set(id, rec)
	}
	return out, nil
}

func (s *FileStore) readCategory(category string) (string, []byte, error) {
	for _, ext := range dataExts {
		path := filepath.Join(s.dir, category+ext)
		data, err := os.ReadFile(path)
		if err == nil {
			return path, data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return "", nil, nil
}

// Categories lists the categories that have a backing file in dir, sorted.
func Categories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		ext := filepath.Ext(e.Name())
		for _, want := range dataExts {
			if ext == want {
				name := strings.TrimSuffix(e.Name(), ext)
				if !seen[name] {
					seen[name] = true
					out = append(out, name)
				}
			}
		}
	}
	sort.Strings(out)
	return out, nil
}
