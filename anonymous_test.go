package sasl

import (
	"bytes"
	"testing"
)

func TestAnonymousClientEmitsToken(t *testing.T) {
	t.Parallel()
	ctx := New()
	sess, err := ctx.ClientStart(MustMechname("ANONYMOUS"))
	if err != nil {
		t.Fatalf("ClientStart: %v", err)
	}
	SetProperty(sess, AnonymousToken, "trace-info")

	var buf bytes.Buffer
	more, err := sess.Step(nil, &buf)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if more {
		t.Fatal("ANONYMOUS should complete in one step")
	}
	if buf.String() != "trace-info" {
		t.Errorf("Step output = %q, want %q", buf.String(), "trace-info")
	}
}

func TestAnonymousClientEmptyToken(t *testing.T) {
	t.Parallel()
	ctx := New()
	sess, err := ctx.ClientStart(MustMechname("ANONYMOUS"))
	if err != nil {
		t.Fatalf("ClientStart: %v", err)
	}

	var buf bytes.Buffer
	if _, err := sess.Step(nil, &buf); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Step output = %q, want empty", buf.String())
	}
}

func TestAnonymousServerAlwaysValidates(t *testing.T) {
	t.Parallel()
	cb := &staticCallback{}
	ctx := New(WithCallback(cb))
	sess, err := ctx.ServerStart(MustMechname("ANONYMOUS"))
	if err != nil {
		t.Fatalf("ServerStart: %v", err)
	}

	var buf bytes.Buffer
	if _, err := sess.Step([]byte("trace123"), &buf); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got, _ := GetProperty(sess, AnonymousToken); got != "trace123" {
		t.Errorf("AnonymousToken = %q, want %q", got, "trace123")
	}
	if cb.lastValid != ValidationAnonymous {
		t.Errorf("Validate called with %s, want %s", cb.lastValid, ValidationAnonymous)
	}
}
