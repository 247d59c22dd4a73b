package logger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idilsaglam/basket/internal/logger"
)

func TestWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "basket.log")
	l, err := logger.New("debug", path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.With("list_id", "abc").Info("item added", "name", "Milk")
	l.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{`"msg":"item added"`, `"list_id":"abc"`, `"name":"Milk"`} {
		if !strings.Contains(string(b), want) {
			t.Errorf("log %q missing %s", b, want)
		}
	}
}

func TestLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basket.log")
	l, err := logger.New("warn", path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Info("hidden")
	l.Warn("shown")
	l.Sync()

	b, _ := os.ReadFile(path)
	if strings.Contains(string(b), "hidden") || !strings.Contains(string(b), "shown") {
		t.Errorf("unexpected log contents %q", b)
	}
}

func TestBadLevel(t *testing.T) {
	if _, err := logger.New("loud", ""); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
