package storage

import (
	"strings"
	"time"
)

// ShortMemoryLimit bounds the per-user recent-message buffer. Oldest entries
// are evicted first.
const ShortMemoryLimit = 32

// RoleKind names one of the two configurable hierarchy roles.
type RoleKind string

const (
	RoleCommander RoleKind = "commander"
	RoleSupreme   RoleKind = "supreme"
)

// UserMemory is the per-user record: a bounded recent-message log and an
// unbounded, deduplicated fact list.
type UserMemory struct {
	UserID      string   `json:"user_id" bson:"user_id"`
	LongMemory  []string `json:"long_memory" bson:"long_memory"`
	ShortMemory []string `json:"short_memory" bson:"short_memory"`
}

// IgnoreEntry suppresses a user until IgnoreUntil. An expired entry is
// logically absent and is deleted lazily on read.
type IgnoreEntry struct {
	UserID      string    `json:"user_id" bson:"user_id"`
	IgnoreUntil time.Time `json:"ignore_until" bson:"ignore_until"`
}

// GuildConfig is the per-guild record: channel whitelist plus the two
// configured hierarchy roles. Empty whitelist means all channels are allowed.
type GuildConfig struct {
	GuildID         string   `json:"guild_id" bson:"guild_id"`
	Whitelist       []string `json:"whitelist" bson:"whitelist"`
	CommanderRoleID string   `json:"commander_role_id" bson:"commander_role_id"`
	SupremeRoleID   string   `json:"supreme_role_id" bson:"supreme_role_id"`
}

// Store is the document-store contract. Both backends (JSON file, MongoDB)
// implement it; everything above the store depends only on this interface.
type Store interface {
	// EnsureUserMemory returns the user's record, creating a zeroed one on
	// first contact. Store unavailability propagates as an error.
	EnsureUserMemory(userID string) (*UserMemory, error)
	// AppendShortMemory pushes a line into the bounded recent log.
	AppendShortMemory(userID, line string) error
	// AddLongFact inserts fact unless a case-insensitive duplicate exists.
	// Reports whether an insertion occurred.
	AddLongFact(userID, fact string) (bool, error)
	// RemoveLongFact removes an exact-match fact; reports whether it was found.
	RemoveLongFact(userID, fact string) (bool, error)
	ClearLongFacts(userID string) error

	// IsIgnored reports whether the user has an unexpired ignore entry at now.
	// An expired entry encountered here is deleted.
	IsIgnored(userID string, now time.Time) (bool, error)
	// SetIgnore upserts the user's ignore entry, overwriting any existing expiry.
	SetIgnore(userID string, until time.Time) error

	// EnsureGuildConfig returns the guild's config, creating one seeded with
	// the default whitelist on first access.
	EnsureGuildConfig(guildID string) (*GuildConfig, error)
	SetGuildRole(guildID string, kind RoleKind, roleID string) error
	// AddWhitelistChannel / RemoveWhitelistChannel are idempotent; the bool
	// reports whether the set actually changed.
	AddWhitelistChannel(guildID, channelID string) (bool, error)
	RemoveWhitelistChannel(guildID, channelID string) (bool, error)

	Close() error
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
