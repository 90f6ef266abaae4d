package tempstore

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestStoreSaveOpenRemove(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path, err := store.Save(strings.NewReader("receipt bytes"), "чек.JPG")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if filepath.Ext(path) != ".jpg" {
		t.Errorf("path %q, want lowercased original extension", path)
	}

	f, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	content, _ := io.ReadAll(f)
	f.Close()

	if string(content) != "receipt bytes" {
		t.Errorf("content = %q", content)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file %q still exists after Remove", path)
	}

	// Повторное удаление не ошибка: cleanup не должен падать,
	// если файл уже убран
	if err := store.Remove(path); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestStoreDistinctNames(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		path, err := store.Save(strings.NewReader("same content"), "receipt.png")
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if seen[path] {
			t.Fatalf("duplicate temp path %q", path)
		}
		seen[path] = true
	}
}

func TestJanitorSweep(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	orphan, err := store.Save(strings.NewReader("orphan"), "old.jpg")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	fresh, err := store.Save(strings.NewReader("fresh"), "new.jpg")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Состариваем первый файл за пределы TTL
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(orphan, old, old); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	janitor := NewJanitor(store, time.Hour, time.Minute, zap.NewNop())

	if removed := janitor.Sweep(); removed != 1 {
		t.Errorf("Sweep removed %d, want 1", removed)
	}
	if _, err := os.Stat(orphan); !os.IsNotExist(err) {
		t.Errorf("orphan %q survived sweep", orphan)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("fresh file %q must survive sweep: %v", fresh, err)
	}
}
