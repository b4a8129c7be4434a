// Package examples discovers bundled example spec files on disk so the
// UI can offer them without an upload.
package examples

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultIncludes match the spec formats the normalizer understands.
var DefaultIncludes = []string{"**/*.json", "**/*.yaml", "**/*.yml"}

// DefaultExcludes keep non-spec clutter out of the listing.
var DefaultExcludes = []string{"**/node_modules/**", "**/.git/**", "*.lock"}

// Example is one discoverable spec file.
type Example struct {
	Name string `json:"name"`
	Path string `json:"-"`
	Size int64  `json:"size"`
}

// Discover walks dir and returns the spec files matching the include
// globs and not the exclude globs, sorted by name. Empty include falls
// back to DefaultIncludes.
func Discover(dir string, include, exclude []string) ([]Example, error) {
	if len(include) == 0 {
		include = DefaultIncludes
	}
	if len(exclude) == 0 {
		exclude = DefaultExcludes
	}

	var found []Example
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(rel, include) || matchesAny(rel, exclude) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		found = append(found, Example{Name: rel, Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking examples dir %s: %w", dir, err)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}

// Load reads one discovered example by name.
func Load(dir, name string) ([]byte, error) {
	// Names come from Discover and are slash-relative; reject traversal.
	if strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid example name %q", name)
	}
	return os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
}

// matchesAny checks relPath against the glob patterns, with ** support,
// also trying the bare filename so "*.json" style patterns work.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, relPath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, filepath.Base(relPath)); err == nil && matched {
			return true
		}
	}
	return false
}
