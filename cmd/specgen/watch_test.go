package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, b *syncBuffer, substr string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(b.String(), substr) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q, output:\n%s", substr, b.String())
}

func TestWatchDefs(t *testing.T) {
	dir := t.TempDir()
	defs := filepath.Join(dir, "types.yaml")
	if err := os.WriteFile(defs, []byte(defsYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- watchDefs(ctx, out, generateConfig{defsFile: defs}, 20*time.Millisecond)
	}()

	waitFor(t, out, "struct Point")

	// give the watcher time to register before changing the file
	time.Sleep(100 * time.Millisecond)
	changed := defsYAML + "  - struct: Extra\n    fields:\n      - {name: n, type: u32}\n"
	if err := os.WriteFile(defs, []byte(changed), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, out, "struct Extra")

	if err := os.WriteFile(defs, []byte("types: [{struct: Bad, fields: [{name: tooLongName1, type: u32}]}]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, out, "Error:")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watchDefs: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watchDefs did not stop")
	}
}

func TestWatchDefsMissingDir(t *testing.T) {
	cfg := generateConfig{defsFile: filepath.Join(t.TempDir(), "missing", "types.yaml")}
	if err := watchDefs(context.Background(), &syncBuffer{}, cfg, time.Millisecond); err == nil {
		t.Error("expected error for missing directory")
	}
}
