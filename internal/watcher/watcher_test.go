package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hyperjump/kondate/internal/config"
)

type reloadRecorder struct {
	mu      sync.Mutex
	configs []*config.Config
}

func (r *reloadRecorder) record(cfg *config.Config) {
	r.mu.Lock()
	r.configs = append(r.configs, cfg)
	r.mu.Unlock()
}

func (r *reloadRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.configs)
}

func (r *reloadRecorder) last() *config.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.configs) == 0 {
		return nil
	}
	return r.configs[len(r.configs)-1]
}

func writeConfig(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_ReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "classifier:\n  length_threshold: 15\n")

	rec := &reloadRecorder{}
	w := NewWatcher(path, rec.record, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	writeConfig(t, path, "classifier:\n  length_threshold: 25\n")
	time.Sleep(600 * time.Millisecond)

	if rec.count() < 1 {
		t.Fatal("expected at least one reload")
	}
	if got := rec.last().Classifier.LengthThreshold; got != 25 {
		t.Errorf("reloaded length_threshold = %d, want 25", got)
	}
}

func TestWatcher_AtomicRenameSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "server:\n  port: 8080\n")

	rec := &reloadRecorder{}
	w := NewWatcher(path, rec.record, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// Editors typically write a temp file and rename it over the target.
	tmp := filepath.Join(dir, "config.yaml.tmp-123")
	writeConfig(t, tmp, "server:\n  port: 9090\n")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
	time.Sleep(600 * time.Millisecond)

	if rec.count() < 1 {
		t.Fatal("expected a reload after rename save")
	}
	if got := rec.last().Server.Port; got != 9090 {
		t.Errorf("reloaded port = %d, want 9090", got)
	}
}

func TestWatcher_InvalidConfigKeepsCurrent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "server:\n  port: 8080\n")

	rec := &reloadRecorder{}
	w := NewWatcher(path, rec.record, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	writeConfig(t, path, "server: [not: valid: yaml\n")
	time.Sleep(600 * time.Millisecond)
	if rec.count() != 0 {
		t.Fatalf("broken config produced %d reloads, want none", rec.count())
	}

	writeConfig(t, path, "server:\n  port: 7070\n")
	time.Sleep(600 * time.Millisecond)
	if rec.count() < 1 {
		t.Fatal("expected a reload once the config is valid again")
	}
	if got := rec.last().Server.Port; got != 7070 {
		t.Errorf("reloaded port = %d, want 7070", got)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "server:\n  port: 8080\n")

	rec := &reloadRecorder{}
	w := NewWatcher(path, rec.record, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	writeConfig(t, filepath.Join(dir, "notes.txt"), "unrelated")
	time.Sleep(400 * time.Millisecond)

	if rec.count() != 0 {
		t.Errorf("sibling file change produced %d reloads, want none", rec.count())
	}
}

func TestWatcher_DebounceCollapsesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "server:\n  port: 8080\n")

	rec := &reloadRecorder{}
	w := NewWatcher(path, rec.record, WithDebounce(200*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for i := 0; i < 3; i++ {
		writeConfig(t, path, "server:\n  port: 9090\n")
	}
	time.Sleep(800 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Errorf("burst of writes produced %d reloads, want 1", got)
	}
}

func TestWatcher_StartIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "server:\n  port: 8080\n")

	w := NewWatcher(path, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(ctx); err != nil {
		t.Errorf("second Start: %v", err)
	}
	w.Stop()
	w.Stop()
}

func TestWatcher_ContextCancelStops(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "server:\n  port: 8080\n")

	rec := &reloadRecorder{}
	w := NewWatcher(path, rec.record, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}

	cancel()
	time.Sleep(100 * time.Millisecond)

	writeConfig(t, path, "server:\n  port: 9090\n")
	time.Sleep(400 * time.Millisecond)

	if rec.count() != 0 {
		t.Errorf("writes after cancel produced %d reloads, want none", rec.count())
	}
}
