package vault

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/hyperjump/vaultwise/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNote(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func buildVault(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeNote(t, root, "inbox.md", "root note")
	writeNote(t, root, "JOURNAL/2025-01-05.md", "journal entry")
	writeNote(t, root, "JOURNAL/Reflections/2025/2025-02-10.md", "deep entry")
	writeNote(t, root, "CAREER/resume.md", "resume")
	writeNote(t, root, "CAREER/resume.txt", "not markdown")
	writeNote(t, root, ".obsidian/workspace.md", "tooling")
	writeNote(t, root, "node_modules/pkg/readme.md", "dependency")
	writeNote(t, root, "JOURNAL/.hidden/secret.md", "hidden")
	return root
}

func titles(files []models.VaultFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Title
	}
	sort.Strings(out)
	return out
}

func TestReader_ReadFiles(t *testing.T) {
	root := buildVault(t)
	files, err := NewReader().ReadFiles(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-05", "2025-02-10", "inbox", "resume"}, titles(files))

	byTitle := map[string]models.VaultFile{}
	for _, f := range files {
		byTitle[f.Title] = f
	}
	deep := byTitle["2025-02-10"]
	assert.Equal(t, "JOURNAL/Reflections/2025", deep.Folder)
	assert.Equal(t, "JOURNAL", deep.TopFolder)
	assert.Equal(t, "JOURNAL/Reflections/2025/2025-02-10.md", deep.RelPath)
	assert.Equal(t, "deep entry", deep.Content)
	assert.Equal(t, int64(len("deep entry")), deep.Size)
	assert.False(t, deep.ModTime.IsZero())

	inbox := byTitle["inbox"]
	assert.Equal(t, "", inbox.Folder)
	assert.Equal(t, models.RootFolder, inbox.TopFolder)
}

func TestReader_ReadFilesIsIdempotent(t *testing.T) {
	root := buildVault(t)
	r := NewReader()
	first, err := r.ReadFiles(root)
	require.NoError(t, err)
	second, err := r.ReadFiles(root)
	require.NoError(t, err)
	sortByPath := func(fs []models.VaultFile) {
		sort.Slice(fs, func(i, j int) bool { return fs[i].Path < fs[j].Path })
	}
	sortByPath(first)
	sortByPath(second)
	assert.Equal(t, first, second)
}

func TestReader_ReadFolderIsNotRecursive(t *testing.T) {
	root := buildVault(t)
	files, err := NewReader().ReadFolder(filepath.Join(root, "JOURNAL"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-05"}, titles(files))
}

func TestReader_CustomExcludeDirs(t *testing.T) {
	root := buildVault(t)
	files, err := NewReader(WithExcludeDirs([]string{"CAREER"})).ReadFiles(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-05", "2025-02-10", "inbox", "readme"}, titles(files))
}

func TestReader_ListMarkdownDepth(t *testing.T) {
	root := buildVault(t)
	r := NewReader()
	journal := filepath.Join(root, "JOURNAL")

	all, err := r.ListMarkdown(journal, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	shallow, err := r.ListMarkdown(journal, 2)
	require.NoError(t, err)
	assert.Len(t, shallow, 1, "Reflections/2025 is two levels down and must be skipped at depth 2")

	three, err := r.ListMarkdown(journal, 3)
	require.NoError(t, err)
	assert.Len(t, three, 2)
}

func TestReader_Errors(t *testing.T) {
	root := buildVault(t)
	r := NewReader()

	_, err := r.ReadFiles(filepath.Join(root, "missing"))
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = r.ReadFolder(filepath.Join(root, "inbox.md"))
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = r.ReadNote(filepath.Join(root, "missing.md"))
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = r.ReadNote(filepath.Join(root, "CAREER", "resume.txt"))
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestReader_ReadNote(t *testing.T) {
	root := buildVault(t)
	path := filepath.Join(root, "CAREER", "resume.md")
	mtime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	f, err := NewReader().ReadNote(path)
	require.NoError(t, err)
	assert.Equal(t, "resume", f.Title)
	assert.Equal(t, "resume", f.Content)
	assert.True(t, f.ModTime.Equal(mtime))
}

func TestReader_Subfolders(t *testing.T) {
	root := buildVault(t)
	dirs, err := NewReader().Subfolders(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "CAREER"), filepath.Join(root, "JOURNAL")}, dirs)
}

func TestExcludeFunc(t *testing.T) {
	ex := ExcludeFunc([]string{"node_modules", "_templates"})
	assert.True(t, ex(".obsidian"))
	assert.True(t, ex(".trash"))
	assert.True(t, ex("node_modules"))
	assert.True(t, ex("_templates"))
	assert.False(t, ex("JOURNAL"))
}
