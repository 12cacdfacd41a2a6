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

// Reader reads vault notes into VaultFile snapshots.
type Reader struct {
	exclude func(string) bool
	logger  *zap.Logger
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithLogger sets a logger for skipped-file warnings.
func WithLogger(l *zap.Logger) ReaderOption {
	return func(r *Reader) { r.logger = l }
}

// WithExcludeDirs replaces the tooling directory names skipped at any depth.
func WithExcludeDirs(names []string) ReaderOption {
	return func(r *Reader) { r.exclude = ExcludeFunc(names) }
}

// NewReader creates a Reader. Hidden directories are always skipped.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{
		exclude: ExcludeFunc(DefaultExcludeDirs),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) walkOptions(maxDepth int) WalkOptions {
	return WalkOptions{MaxDepth: maxDepth, Exclude: r.exclude, Logger: r.logger}
}

// ReadFiles reads every markdown note under root at any depth.
// Unreadable files are skipped with a warning.
func (r *Reader) ReadFiles(root string) ([]models.VaultFile, error) {
	return r.read(root, 0)
}

// ReadFolder reads the markdown notes directly inside folder, without descending.
func (r *Reader) ReadFolder(folder string) ([]models.VaultFile, error) {
	return r.read(folder, 1)
}

func (r *Reader) read(root string, maxDepth int) ([]models.VaultFile, error) {
	root = filepath.Clean(root)
	var files []models.VaultFile
	err := Walk(root, r.walkOptions(maxDepth), func(path string, d fs.DirEntry) error {
		f, err := readVaultFile(root, path)
		if err != nil {
			r.logger.Warn("could not read note", zap.String("path", path), zap.Error(err))
			return nil
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ListMarkdown returns the paths of markdown notes under root, entering at most maxDepth
// directory levels (0 = unlimited).
func (r *Reader) ListMarkdown(root string, maxDepth int) ([]string, error) {
	var paths []string
	err := Walk(root, r.walkOptions(maxDepth), func(path string, _ fs.DirEntry) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// ReadNote reads a single note. The note must exist and carry the markdown suffix.
func (r *Reader) ReadNote(path string) (models.VaultFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.VaultFile{}, fmt.Errorf("%w: note not found: %s", models.ErrNotFound, path)
		}
		return models.VaultFile{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() || !IsMarkdown(path) {
		return models.VaultFile{}, fmt.Errorf("%w: must be a markdown (%s) file: %s", models.ErrInvalidInput, MarkdownExt, path)
	}
	return readVaultFile(filepath.Dir(path), path)
}

func readVaultFile(root, path string) (models.VaultFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.VaultFile{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return models.VaultFile{}, err
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)
	folder := ""
	if dir := filepath.ToSlash(filepath.Dir(rel)); dir != "." {
		folder = dir
	}
	top := models.RootFolder
	if folder != "" {
		top = strings.SplitN(folder, "/", 2)[0]
	}
	return models.VaultFile{
		Path:      path,
		RelPath:   rel,
		Title:     strings.TrimSuffix(filepath.Base(path), MarkdownExt),
		Folder:    folder,
		TopFolder: top,
		ModTime:   info.ModTime(),
		Size:      info.Size(),
		Content:   string(data),
	}, nil
}

// Subfolders returns the absolute paths of the non-excluded directories directly under root,
// sorted by name.
func (r *Reader) Subfolders(root string) ([]string, error) {
	if err := StatDir(root); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", root, err)
	}
	var dirs []string
	for _, e := range entries {
		path := filepath.Join(root, e.Name())
		isDir := e.IsDir()
		if e.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				r.logger.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(err))
				continue
			}
			isDir = info.IsDir()
		}
		if !isDir || r.exclude(e.Name()) {
			continue
		}
		dirs = append(dirs, path)
	}
	return dirs, nil
}
