package storage

import (
	"testing"
	"time"
)

func TestCooldownGate(t *testing.T) {
	g := NewCooldownGate(40 * time.Millisecond)

	if !g.Allow("u1") {
		t.Fatal("first message should pass")
	}
	if g.Allow("u1") {
		t.Fatal("second message inside the window should be blocked")
	}
	if !g.Allow("u2") {
		t.Fatal("cooldowns are per-user")
	}

	time.Sleep(60 * time.Millisecond)
	if !g.Allow("u1") {
		t.Fatal("message after the window should pass")
	}
}
