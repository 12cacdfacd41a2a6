// Package vault reads markdown notes from a vault directory tree.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/vaultwise/internal/models"
	"go.uber.org/zap"
)

// MarkdownExt is the suffix of files treated as notes.
const MarkdownExt = ".md"

// DefaultExcludeDirs are tooling directories skipped at any depth in addition to hidden ones.
var DefaultExcludeDirs = []string{"node_modules"}

// WalkOptions controls a vault traversal.
type WalkOptions struct {
	// MaxDepth limits how deep directories are entered. The root is depth 0, so 1 reads
	// only the root's own files. Zero means unlimited.
	MaxDepth int
	// Exclude reports whether a directory with the given base name is skipped.
	// Nil uses ExcludeFunc(DefaultExcludeDirs).
	Exclude func(name string) bool
	// Logger receives warnings for unreadable entries. Nil discards them.
	Logger *zap.Logger
}

// ExcludeFunc returns a predicate that skips hidden directories and the named ones.
func ExcludeFunc(names []string) func(string) bool {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(name string) bool {
		if strings.HasPrefix(name, ".") {
			return true
		}
		_, ok := set[name]
		return ok
	}
}

// IsMarkdown reports whether name has the markdown suffix.
func IsMarkdown(name string) bool {
	return strings.HasSuffix(name, MarkdownExt)
}

// StatDir checks that path exists and is a directory.
func StatDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: folder not found: %s", models.ErrNotFound, path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: not a folder: %s", models.ErrInvalidInput, path)
	}
	return nil
}

// Walk calls fn for every markdown file under root, honouring opts. Excluded and
// too-deep directories are skipped; unreadable subdirectories are logged and skipped.
func Walk(root string, opts WalkOptions, fn func(path string, d fs.DirEntry) error) error {
	if err := StatDir(root); err != nil {
		return err
	}
	exclude := opts.Exclude
	if exclude == nil {
		exclude = ExcludeFunc(DefaultExcludeDirs)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	root = filepath.Clean(root)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if exclude(d.Name()) {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 && depth(root, path) >= opts.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !IsMarkdown(d.Name()) {
			return nil
		}
		return fn(path, d)
	})
}

// depth returns how many directory levels path is below root.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}
