// Package rank implements the two-tier custom hierarchy: citizen < commander
// < supreme < owner. Everything here is a pure function over role IDs and the
// stored guild config; role membership itself is resolved by the caller.
package rank

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"despot/internal/storage"
)

// Level orders the hierarchy. Higher values denote greater authority.
type Level int

const (
	Citizen Level = iota
	Commander
	Supreme
	Owner
)

func (l Level) String() string {
	switch l {
	case Owner:
		return "owner"
	case Supreme:
		return "supreme"
	case Commander:
		return "commander"
	default:
		return "citizen"
	}
}

var (
	ErrNotSupreme = errors.New("you lack permission (Supreme rank required)")
	ErrHierarchy  = errors.New("my own rank does not outrank the target")
)

// MemberLevel resolves a member's level. The guild owner always counts as
// Owner, regardless of configured roles.
func MemberLevel(userID string, roleIDs []string, cfg *storage.GuildConfig, ownerID string) Level {
	if ownerID != "" && userID == ownerID {
		return Owner
	}
	if cfg == nil {
		return Citizen
	}
	if cfg.SupremeRoleID != "" && hasRole(roleIDs, cfg.SupremeRoleID) {
		return Supreme
	}
	if cfg.CommanderRoleID != "" && hasRole(roleIDs, cfg.CommanderRoleID) {
		return Commander
	}
	return Citizen
}

// TopRolePosition returns the highest position among the member's roles.
// A member with no roles sits at position 0.
func TopRolePosition(guildRoles []*discordgo.Role, memberRoleIDs []string) int {
	top := 0
	for _, r := range guildRoles {
		if r == nil || !hasRole(memberRoleIDs, r.ID) {
			continue
		}
		if r.Position > top {
			top = r.Position
		}
	}
	return top
}

// CanModerate gates destructive moderation actions. The invoker must hold at
// least Supreme, and the bot's own top role must sit above the target's.
func CanModerate(invoker Level, botTopPos, targetTopPos int) error {
	if invoker < Supreme {
		return ErrNotSupreme
	}
	if botTopPos <= targetTopPos {
		return ErrHierarchy
	}
	return nil
}

func hasRole(roleIDs []string, id string) bool {
	for _, r := range roleIDs {
		if r == id {
			return true
		}
	}
	return false
}
