package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	apperrors "github.com/palemoky/pokemon-data-api/internal/errors"
	"github.com/palemoky/pokemon-data-api/internal/logger"
	"github.com/palemoky/pokemon-data-api/internal/record"
)

// LocalLoader reads dataset files below Root.
type LocalLoader struct {
	Root string
}

// NewLocalLoader creates a loader rooted at dir
func NewLocalLoader(dir string) *LocalLoader {
	return &LocalLoader{Root: dir}
}

// Load reads every file whose slash-separated path relative to Root matches
// pattern. "**" spans directories and "/**/" also matches no directory at all.
// Files are read in lexical path order and each may hold a single object or an
// array of objects in JSON or YAML. Any unreadable or malformed file fails the
// whole load with a LoadError; no matching file is not an error.
func (l *LocalLoader) Load(pattern string) ([]record.Raw, error) {
	matcher, err := compilePattern(pattern)
	if err != nil {
		return nil, &apperrors.LoadError{Path: pattern, Err: err}
	}

	paths, err := l.match(matcher)
	if err != nil {
		return nil, err
	}

	var records []record.Raw
	for _, path := range paths {
		rs, err := readFile(path)
		if err != nil {
			return nil, &apperrors.LoadError{Path: path, Err: err}
		}
		records = append(records, rs...)
	}

	logger.Debug("Loaded local dataset",
		zap.String("pattern", pattern),
		zap.Int("files", len(paths)),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// multiGlob matches when any of its patterns does.
type multiGlob []glob.Glob

func (m multiGlob) Match(s string) bool {
	for _, g := range m {
		if g.Match(s) {
			return true
		}
	}
	return false
}

func compilePattern(pattern string) (glob.Glob, error) {
	pattern = filepath.ToSlash(pattern)
	variants := []string{pattern}
	if strings.Contains(pattern, "/**/") {
		variants = append(variants, strings.ReplaceAll(pattern, "/**/", "/"))
	}

	matchers := make(multiGlob, 0, len(variants))
	for _, p := range variants {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		matchers = append(matchers, g)
	}
	return matchers, nil
}

func (l *LocalLoader) match(matcher glob.Glob) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == l.Root && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return &apperrors.LoadError{Path: path, Err: err}
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(l.Root, path)
		if err != nil {
			return nil
		}
		if matcher.Match(filepath.ToSlash(rel)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

func readFile(path string) ([]record.Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, err
		}
	}

	return record.ParseRecords(data)
}

// yamlToJSON re-encodes a YAML document as JSON so both formats share one parser.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return json.Marshal(doc)
}
