package assets

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRegisterMimeTypes(t *testing.T) {
	RegisterMimeTypes()

	tests := []struct {
		ext  string
		want string
	}{
		{".css", "text/css"},
		{".mjs", "application/javascript"},
		{".svg", "image/svg+xml"},
		{".wasm", "application/wasm"},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			got, _, err := mime.ParseMediaType(mime.TypeByExtension(tt.ext))
			if err != nil {
				t.Fatalf("parse type for %s: %v", tt.ext, err)
			}
			if got != tt.want {
				t.Errorf("type for %s = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestCheckRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "index-notion.html")
	if err := os.WriteFile(file, []byte("<html></html>"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !CheckRoot(dir) {
		t.Error("existing directory should pass")
	}
	if CheckRoot(file) {
		t.Error("regular file should not pass")
	}
	if CheckRoot(filepath.Join(dir, "missing")) {
		t.Error("missing path should not pass")
	}
}

func waitForChange(t *testing.T, changes <-chan Change, want string) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case c := <-changes:
			if c.Path == want {
				return
			}
		case <-timeout:
			t.Fatalf("no change reported for %s", want)
		}
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan Change, 64)

	w, err := NewWatcher(dir, func(c Change) { changes <- c })
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	page := filepath.Join(dir, "index-notion.html")
	if err := os.WriteFile(page, []byte("v1"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForChange(t, changes, page)

	// Files in directories created after start are followed too.
	sub := filepath.Join(dir, "css")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	waitForChange(t, changes, sub)

	style := filepath.Join(sub, "app.css")
	if err := os.WriteFile(style, []byte("body{}"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForChange(t, changes, style)
}

func TestNewWatcherMissingRoot(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("expected error for missing root")
	}
}
