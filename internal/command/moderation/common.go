package moderation

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"despot/internal/rank"
)

// hierarchyCheck verifies the bot's top role sits above the target's. Invoker
// rank is already enforced by middleware; this is the second, independent gate.
func hierarchyCheck(s *discordgo.Session, guildID, targetID string) error {
	guild, err := s.State.Guild(guildID)
	if err != nil || guild == nil {
		guild, err = s.Guild(guildID)
		if err != nil {
			return fmt.Errorf("failed to fetch guild: %w", err)
		}
	}

	botRoles, err := fetchMemberRoles(s, guildID, s.State.User.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch my own membership: %w", err)
	}
	targetRoles, err := fetchMemberRoles(s, guildID, targetID)
	if err != nil {
		return fmt.Errorf("failed to fetch target membership: %w", err)
	}

	botTop := rank.TopRolePosition(guild.Roles, botRoles)
	targetTop := rank.TopRolePosition(guild.Roles, targetRoles)
	if botTop <= targetTop {
		return rank.ErrHierarchy
	}
	return nil
}

func fetchMemberRoles(s *discordgo.Session, guildID, userID string) ([]string, error) {
	member, err := s.State.Member(guildID, userID)
	if err != nil || member == nil {
		member, err = s.GuildMember(guildID, userID)
		if err != nil {
			return nil, err
		}
	}
	return member.Roles, nil
}
