// Package curriculum loads the per-subject topic catalog used to point
// students at concrete chapters.
package curriculum

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/p-n-ai/pai-quiz/internal/analysis"
)

//go:embed catalog/*.yaml
var defaultCatalog embed.FS

// Loader loads and caches the topic catalog.
type Loader struct {
	topics map[analysis.Subject][]Topic
	mu     sync.RWMutex
}

// NewLoader loads every subject YAML file under rootDir. An empty rootDir
// loads the built-in catalog.
func NewLoader(rootDir string) (*Loader, error) {
	var fsys fs.FS = defaultCatalog
	if rootDir != "" {
		if _, err := os.Stat(rootDir); err != nil {
			return nil, fmt.Errorf("loading curriculum: %w", err)
		}
		fsys = os.DirFS(rootDir)
	}
	return NewLoaderFS(fsys)
}

// NewLoaderFS loads the catalog from fsys.
func NewLoaderFS(fsys fs.FS) (*Loader, error) {
	l := &Loader{topics: make(map[analysis.Subject][]Topic)}
	if err := l.loadAll(fsys); err != nil {
		return nil, fmt.Errorf("loading curriculum: %w", err)
	}

	slog.Info("curriculum loaded", "subjects", len(l.topics))
	return l, nil
}

// Topics returns the topics for a subject in study order.
func (l *Loader) Topics(subject analysis.Subject) []analysis.Topic {
	l.mu.RLock()
	defer l.mu.RUnlock()
	topics := l.topics[subject]
	out := make([]analysis.Topic, 0, len(topics))
	for _, t := range topics {
		out = append(out, analysis.Topic{ID: t.ID, Name: t.Name})
	}
	return out
}

func (l *Loader) loadAll(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if ext := path.Ext(p); ext != ".yaml" && ext != ".yml" {
			return nil
		}
		return l.loadSubject(fsys, p)
	})
}

func (l *Loader) loadSubject(fsys fs.FS, p string) error {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return err
	}

	var file SubjectFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		slog.Warn("skipping invalid catalog YAML", "path", p, "error", err)
		return nil
	}
	if file.Subject == "" {
		return nil // Not a catalog file
	}

	subject, err := analysis.ParseSubject(normalizeSubject(file.Subject))
	if err != nil {
		slog.Warn("skipping catalog for unknown subject", "path", p, "subject", file.Subject)
		return nil
	}

	var topics []Topic
	for _, t := range file.Topics {
		if strings.TrimSpace(t.Name) == "" {
			continue
		}
		topics = append(topics, t)
	}

	l.mu.Lock()
	l.topics[subject] = append(l.topics[subject], topics...)
	l.mu.Unlock()

	return nil
}

// normalizeSubject maps "biology" or "PHYSICS" to the canonical title case.
func normalizeSubject(name string) string {
	return cases.Title(language.English).String(strings.TrimSpace(name))
}
