package app

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/atomicstack/suggestbox/internal/suggest"
	"github.com/atomicstack/suggestbox/internal/transport"
)

func TestStartOfflineServesWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("alpha\nalphabet\nbeta\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	srv, err := startOffline(path)
	if err != nil {
		t.Fatalf("startOffline: %v", err)
	}
	go srv.Serve()
	t.Cleanup(func() { srv.Shutdown(context.Background()) })

	fetcher := suggest.NewFetcher(transport.NewClient(0), srv.Endpoint(), 0)
	_, cmd := fetcher.Dispatch("alp", "en-US", 3)
	res := cmd().(suggest.ResultMsg)
	if res.Err != nil {
		t.Fatalf("fetch: %v", res.Err)
	}
	if !reflect.DeepEqual(res.Candidates, []string{"alpha", "alphabet"}) {
		t.Fatalf("unexpected candidates %v", res.Candidates)
	}
}

func TestStartOfflineMissingWords(t *testing.T) {
	if _, err := startOffline(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing word list")
	}
}
