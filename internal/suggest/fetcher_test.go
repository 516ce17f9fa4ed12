package suggest

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDispatchAssignsGenerationBeforeFetch(t *testing.T) {
	tr := &fakeTransport{payloads: map[string][]byte{"cat": toolbarPayload("cats")}}
	f := NewFetcher(tr, testEndpoint, 0)

	q1, cmd1 := f.Dispatch("cat", "en-US", 3)
	q2, cmd2 := f.Dispatch("cat", "en-US", 3)
	if q1.Generation != 1 || q2.Generation != 2 {
		t.Fatalf("expected generations 1 and 2, got %d and %d", q1.Generation, q2.Generation)
	}
	if len(tr.urls) != 0 {
		t.Fatalf("expected no network activity before commands run")
	}
	if f.IsCurrent(q1.Generation) || !f.IsCurrent(q2.Generation) {
		t.Fatalf("expected only the latest generation to be current")
	}

	res1 := cmd1().(ResultMsg)
	res2 := cmd2().(ResultMsg)
	if res1.Query.Generation != 1 || res2.Query.Generation != 2 {
		t.Fatalf("expected results tagged with their own generation")
	}
	if !reflect.DeepEqual(res2.Candidates, []string{"cats"}) {
		t.Fatalf("unexpected candidates %v", res2.Candidates)
	}
}

func TestDispatchEscapesURL(t *testing.T) {
	tr := &fakeTransport{payloads: map[string][]byte{"a b&c": toolbarPayload("x")}}
	f := NewFetcher(tr, testEndpoint, 0)
	_, cmd := f.Dispatch("a b&c", "pt-BR", 0)
	res := cmd().(ResultMsg)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	want := "http://suggest.test/complete?hl=pt-BR&q=a+b%26c"
	if tr.urls[0] != want {
		t.Fatalf("expected url %q, got %q", want, tr.urls[0])
	}
}

func TestFetchTransportErrorYieldsNoCandidates(t *testing.T) {
	tr := &fakeTransport{err: errors.New("connection refused")}
	f := NewFetcher(tr, testEndpoint, 0)
	_, cmd := f.Dispatch("cat", "en-US", 0)
	res := cmd().(ResultMsg)
	if res.Err == nil || !strings.Contains(res.Err.Error(), "connection refused") {
		t.Fatalf("expected wrapped transport error, got %v", res.Err)
	}
	if len(res.Candidates) != 0 {
		t.Fatalf("expected no candidates, got %v", res.Candidates)
	}
}

type deadlineTransport struct {
	deadline time.Time
	ok       bool
}

func (d *deadlineTransport) Get(ctx context.Context, _ string) ([]byte, error) {
	d.deadline, d.ok = ctx.Deadline()
	return toolbarPayload(), nil
}

func TestFetchAppliesTimeout(t *testing.T) {
	tr := &deadlineTransport{}
	_, cmd := NewFetcher(tr, testEndpoint, time.Minute).Dispatch("cat", "en-US", 0)
	cmd()
	if !tr.ok {
		t.Fatalf("expected request deadline when a timeout is configured")
	}

	tr = &deadlineTransport{}
	_, cmd = NewFetcher(tr, testEndpoint, 0).Dispatch("cat", "en-US", 0)
	cmd()
	if tr.ok {
		t.Fatalf("expected no deadline without a timeout")
	}
}

func TestNewFetcherDefaultsEndpoint(t *testing.T) {
	f := NewFetcher(nil, "", 0)
	if !strings.Contains(f.Endpoint(), "output=toolbar") {
		t.Fatalf("expected default toolbar endpoint, got %q", f.Endpoint())
	}
	if f.IsCurrent(0) {
		t.Fatalf("generation 0 must never be current")
	}
	_, cmd := f.Dispatch("cat", "en-US", 0)
	if res := cmd().(ResultMsg); res.Err == nil {
		t.Fatalf("expected error without a transport")
	}
}
