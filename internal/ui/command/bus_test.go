package command

import (
	"errors"
	"testing"
)

func TestSubmitRunsHandler(t *testing.T) {
	var got []string
	bus := New(func(q string) error {
		got = append(got, q)
		return nil
	})
	cmd := bus.Submit("cats")
	if len(got) != 0 {
		t.Fatalf("expected handler to run only when the command executes")
	}
	msg, ok := cmd().(SubmittedMsg)
	if !ok || msg.Query != "cats" || msg.Err != nil {
		t.Fatalf("unexpected message %#v", msg)
	}
	if len(got) != 1 || got[0] != "cats" {
		t.Fatalf("expected handler to see cats, got %v", got)
	}
}

func TestSubmitReportsHandlerError(t *testing.T) {
	boom := errors.New("boom")
	msg := New(func(string) error { return boom }).Submit("x")().(SubmittedMsg)
	if !errors.Is(msg.Err, boom) {
		t.Fatalf("expected handler error, got %v", msg.Err)
	}
}

func TestSubmitSkipsBlankQuery(t *testing.T) {
	called := false
	cmd := New(func(string) error {
		called = true
		return nil
	}).Submit("   ")
	if msg := cmd(); msg != nil {
		t.Fatalf("expected no message for blank query, got %#v", msg)
	}
	if called {
		t.Fatalf("expected handler not to run")
	}
}

func TestSubmitWithoutHandler(t *testing.T) {
	msg := New(nil).Submit("cats")().(SubmittedMsg)
	if msg.Query != "cats" || msg.Err != nil {
		t.Fatalf("unexpected message %#v", msg)
	}
}
