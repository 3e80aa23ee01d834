package moderation

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
	"despot/internal/rank"
)

type TimeoutCommand struct{}

func (c *TimeoutCommand) Name() string             { return "timeout" }
func (c *TimeoutCommand) Description() string      { return "Timeout a member (role-protected)" }
func (c *TimeoutCommand) Group() string            { return "moderation" }
func (c *TimeoutCommand) Category() string         { return "⚖️ Moderation" }
func (c *TimeoutCommand) RequiredRank() rank.Level { return rank.Supreme }

func (c *TimeoutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "User to timeout",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "minutes",
				Description: "Minutes (default 10)",
				Required:    false,
			},
		},
	}
}

func (c *TimeoutCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	var targetID string
	minutes := int64(10)
	for _, opt := range event.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			targetID = opt.UserValue(session).ID
		case "minutes":
			if opt.IntValue() > 0 {
				minutes = opt.IntValue()
			}
		}
	}
	if targetID == "" {
		return core.RespondEphemeral(session, event, "User not found.")
	}

	if err := hierarchyCheck(session, event.GuildID, targetID); err != nil {
		if errors.Is(err, rank.ErrHierarchy) {
			return core.RespondEphemeral(session, event, "I cannot touch that one — their rank exceeds my own.")
		}
		return core.RespondEphemeral(session, event, "User not found.")
	}

	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	if err := session.GuildMemberTimeout(event.GuildID, targetID, &until); err != nil {
		return core.RespondEphemeral(session, event, fmt.Sprintf("Timeout failed: %v", err))
	}
	return core.Respond(session, event, fmt.Sprintf("<@%s> timed out for %d minute(s).", targetID, minutes))
}

func init() {
	core.RegisterCommand(
		&TimeoutCommand{},
		core.WithGuildOnly(),
		core.WithRankCheck(),
		core.WithCommandLogger(),
	)
}
