package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceWritesJSONLineWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})

	Trace("ignored", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file while tracing is disabled, got %v", err)
	}

	SetTraceEnabled(true)
	Trace("suggest.dispatch", map[string]interface{}{"generation": 3})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.Event != "suggest.dispatch" {
		t.Fatalf("expected event suggest.dispatch, got %q", entry.Event)
	}
	if entry.Payload["generation"] != float64(3) {
		t.Fatalf("expected generation 3, got %v", entry.Payload["generation"])
	}
}

func TestErrorAppendsMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	Error(nil)
	Error(errors.New("boom"))
	Errorf("fetch %d failed", 7)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "boom") || !strings.Contains(out, "fetch 7 failed") {
		t.Fatalf("expected both errors logged, got %q", out)
	}
	if Path() != path {
		t.Fatalf("expected path %q, got %q", path, Path())
	}
}
