package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) onChange(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// waitFor polls until cond holds or the timeout passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func startWatcher(t *testing.T, root string, rec *recorder) *Watcher {
	t.Helper()
	w := NewWatcher(root, rec.onChange, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcher_MarkdownChangeFires(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "JOURNAL")
	if err := mkdirAll(sub); err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	startWatcher(t, dir, rec)

	if err := writeFile(filepath.Join(sub, "2025-01-01.md"), "hello"); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 2*time.Second, func() bool { return len(rec.snapshot()) > 0 }) {
		t.Fatal("expected a change notification")
	}
	if got := rec.snapshot()[0]; !strings.HasSuffix(got, "2025-01-01.md") {
		t.Errorf("changed path = %q", got)
	}
}

func TestWatcher_Debounces(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	startWatcher(t, dir, rec)

	path := filepath.Join(dir, "note.md")
	for i := 0; i < 5; i++ {
		if err := writeFile(path, strings.Repeat("x", i+1)); err != nil {
			t.Fatal(err)
		}
	}
	if !waitFor(t, 2*time.Second, func() bool { return len(rec.snapshot()) > 0 }) {
		t.Fatal("expected a change notification")
	}
	time.Sleep(200 * time.Millisecond)
	if n := len(rec.snapshot()); n != 1 {
		t.Errorf("expected one debounced notification, got %d", n)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	startWatcher(t, dir, rec)

	if err := writeFile(filepath.Join(dir, "image.png"), "png"); err != nil {
		t.Fatal(err)
	}
	if err := mkdirAll(filepath.Join(dir, ".obsidian")); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("expected no notifications, got %v", got)
	}
}

func TestWatcher_NewFolderFiresAndIsWatched(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	startWatcher(t, dir, rec)

	nested := filepath.Join(dir, "PROJECTS")
	if err := mkdirAll(nested); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 2*time.Second, func() bool { return len(rec.snapshot()) > 0 }) {
		t.Fatal("expected a notification for the new folder")
	}

	before := len(rec.snapshot())
	if err := writeFile(filepath.Join(nested, "plan.md"), "plan"); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 2*time.Second, func() bool { return len(rec.snapshot()) > before }) {
		t.Fatal("expected a notification for a note in the new folder")
	}
}

func TestWatcher_RemovedFolderFires(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "ARCHIVE")
	if err := mkdirAll(old); err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	startWatcher(t, dir, rec)

	if err := os.RemoveAll(old); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 2*time.Second, func() bool { return len(rec.snapshot()) > 0 }) {
		t.Fatal("expected a notification for the removed folder")
	}
}

func TestWatcher_StartMissingRoot(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing"), nil)
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Fatal("expected error for missing root")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := NewWatcher(t.TempDir(), nil)
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}

func TestWatcher_Excluded(t *testing.T) {
	w := NewWatcher("/vault", nil, WithExcludeDirs([]string{"node_modules"}))
	tests := []struct {
		path string
		want bool
	}{
		{"/vault/a.md", false},
		{"/vault/JOURNAL/a.md", false},
		{"/vault/.obsidian/workspace.md", true},
		{"/vault/node_modules", true},
		{"/vault/x/node_modules/readme.md", true},
		{"/vault/.hidden.md", false},
	}
	for _, tt := range tests {
		if got := w.excluded(filepath.FromSlash(tt.path)); got != tt.want {
			t.Errorf("excluded(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestInDir(t *testing.T) {
	tests := []struct {
		dir  string
		path string
		want bool
	}{
		{"/tmp/a", "/tmp/a", true},
		{"/tmp/a", "/tmp/a/b.md", true},
		{"/tmp/a", "/tmp/b", false},
		{"/tmp/a", "/tmp/a/../b", false},
	}
	for _, tt := range tests {
		got := inDir(tt.dir, tt.path)
		if got != tt.want {
			t.Errorf("inDir(%q, %q) = %v, want %v", tt.dir, tt.path, got, tt.want)
		}
	}
}

func mkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}
