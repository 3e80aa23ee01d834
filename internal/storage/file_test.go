package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T, whitelist ...string) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "despot.json"), whitelist)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestEnsureUserMemoryCreatesOnFirstContact(t *testing.T) {
	s := newTestStore(t)

	mem, err := s.EnsureUserMemory("u1")
	if err != nil {
		t.Fatalf("EnsureUserMemory: %v", err)
	}
	if mem.UserID != "u1" {
		t.Fatalf("UserID = %q, want u1", mem.UserID)
	}
	if len(mem.ShortMemory) != 0 || len(mem.LongMemory) != 0 {
		t.Fatal("fresh record should be empty")
	}
}

func TestAppendShortMemoryBound(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < ShortMemoryLimit+8; i++ {
		if err := s.AppendShortMemory("u1", fmt.Sprintf("u1: msg %d", i)); err != nil {
			t.Fatalf("AppendShortMemory: %v", err)
		}
	}

	mem, err := s.EnsureUserMemory("u1")
	if err != nil {
		t.Fatalf("EnsureUserMemory: %v", err)
	}
	if len(mem.ShortMemory) != ShortMemoryLimit {
		t.Fatalf("len = %d, want %d", len(mem.ShortMemory), ShortMemoryLimit)
	}
	wantLast := fmt.Sprintf("u1: msg %d", ShortMemoryLimit+7)
	if got := mem.ShortMemory[len(mem.ShortMemory)-1]; got != wantLast {
		t.Fatalf("last line = %q, want %q", got, wantLast)
	}
	if got := mem.ShortMemory[0]; got != "u1: msg 8" {
		t.Fatalf("first line = %q, want oldest evicted", got)
	}
}

func TestAddLongFactDedupIsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)

	added, err := s.AddLongFact("u1", "likes trains")
	if err != nil || !added {
		t.Fatalf("first AddLongFact = (%v, %v), want (true, nil)", added, err)
	}
	added, err = s.AddLongFact("u1", "Likes Trains")
	if err != nil {
		t.Fatalf("AddLongFact: %v", err)
	}
	if added {
		t.Fatal("case-variant duplicate should not be added")
	}

	mem, _ := s.EnsureUserMemory("u1")
	if len(mem.LongMemory) != 1 {
		t.Fatalf("len = %d, want 1", len(mem.LongMemory))
	}
}

func TestRemoveLongFactExactMatch(t *testing.T) {
	s := newTestStore(t)
	_, _ = s.AddLongFact("u1", "likes trains")

	removed, err := s.RemoveLongFact("u1", "Likes Trains")
	if err != nil {
		t.Fatalf("RemoveLongFact: %v", err)
	}
	if removed {
		t.Fatal("removal is exact-match; case variant should not remove")
	}

	removed, _ = s.RemoveLongFact("u1", "likes trains")
	if !removed {
		t.Fatal("exact fact should be removed")
	}
	mem, _ := s.EnsureUserMemory("u1")
	if len(mem.LongMemory) != 0 {
		t.Fatalf("len = %d, want 0", len(mem.LongMemory))
	}
}

func TestClearLongFacts(t *testing.T) {
	s := newTestStore(t)
	_, _ = s.AddLongFact("u1", "a")
	_, _ = s.AddLongFact("u1", "b")

	if err := s.ClearLongFacts("u1"); err != nil {
		t.Fatalf("ClearLongFacts: %v", err)
	}
	mem, _ := s.EnsureUserMemory("u1")
	if len(mem.LongMemory) != 0 {
		t.Fatalf("len = %d, want 0", len(mem.LongMemory))
	}
}

func TestIgnoreExpiry(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := s.SetIgnore("u1", base.Add(15*time.Minute)); err != nil {
		t.Fatalf("SetIgnore: %v", err)
	}

	ignored, err := s.IsIgnored("u1", base)
	if err != nil || !ignored {
		t.Fatalf("IsIgnored before expiry = (%v, %v), want (true, nil)", ignored, err)
	}

	ignored, err = s.IsIgnored("u1", base.Add(16*time.Minute))
	if err != nil || ignored {
		t.Fatalf("IsIgnored after expiry = (%v, %v), want (false, nil)", ignored, err)
	}

	// The expired entry was deleted lazily; a fresh check stays false.
	ignored, _ = s.IsIgnored("u1", base)
	if ignored {
		t.Fatal("expired entry should have been deleted")
	}
}

func TestSetIgnoreOverwritesExpiry(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	_ = s.SetIgnore("u1", base.Add(1*time.Minute))
	_ = s.SetIgnore("u1", base.Add(30*time.Minute))

	ignored, _ := s.IsIgnored("u1", base.Add(10*time.Minute))
	if !ignored {
		t.Fatal("second SetIgnore should extend the window")
	}
}

func TestGuildConfigWhitelistSeed(t *testing.T) {
	s := newTestStore(t, "c1", "c2")

	cfg, err := s.EnsureGuildConfig("g1")
	if err != nil {
		t.Fatalf("EnsureGuildConfig: %v", err)
	}
	if len(cfg.Whitelist) != 2 {
		t.Fatalf("Whitelist = %v, want seeded defaults", cfg.Whitelist)
	}
}

func TestWhitelistAddRemoveIdempotent(t *testing.T) {
	s := newTestStore(t)

	added, err := s.AddWhitelistChannel("g1", "c1")
	if err != nil || !added {
		t.Fatalf("AddWhitelistChannel = (%v, %v), want (true, nil)", added, err)
	}
	added, _ = s.AddWhitelistChannel("g1", "c1")
	if added {
		t.Fatal("duplicate add should report no change")
	}

	removed, _ := s.RemoveWhitelistChannel("g1", "c1")
	if !removed {
		t.Fatal("remove should report a change")
	}
	removed, _ = s.RemoveWhitelistChannel("g1", "c1")
	if removed {
		t.Fatal("second remove should report no change")
	}
}

func TestSetGuildRole(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetGuildRole("g1", RoleCommander, "r1"); err != nil {
		t.Fatalf("SetGuildRole: %v", err)
	}
	if err := s.SetGuildRole("g1", RoleSupreme, "r2"); err != nil {
		t.Fatalf("SetGuildRole: %v", err)
	}
	if err := s.SetGuildRole("g1", RoleKind("emperor"), "r3"); err == nil {
		t.Fatal("unknown role kind should error")
	}

	cfg, _ := s.EnsureGuildConfig("g1")
	if cfg.CommanderRoleID != "r1" || cfg.SupremeRoleID != "r2" {
		t.Fatalf("roles = (%q, %q), want (r1, r2)", cfg.CommanderRoleID, cfg.SupremeRoleID)
	}
}
