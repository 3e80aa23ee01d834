package moderation

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
	"despot/internal/rank"
)

type KickCommand struct{}

func (c *KickCommand) Name() string             { return "kick" }
func (c *KickCommand) Description() string      { return "Kick a member (role-protected)" }
func (c *KickCommand) Group() string            { return "moderation" }
func (c *KickCommand) Category() string         { return "⚖️ Moderation" }
func (c *KickCommand) RequiredRank() rank.Level { return rank.Supreme }

func (c *KickCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "User to kick",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Reason",
				Required:    false,
			},
		},
	}
}

func (c *KickCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	var targetID string
	reason := "No reason"
	for _, opt := range event.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			targetID = opt.UserValue(session).ID
		case "reason":
			reason = opt.StringValue()
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

	if err := session.GuildMemberDeleteWithReason(event.GuildID, targetID, reason); err != nil {
		return core.RespondEphemeral(session, event, fmt.Sprintf("Kick failed: %v", err))
	}
	return core.Respond(session, event, fmt.Sprintf("<@%s> kicked.", targetID))
}

func init() {
	core.RegisterCommand(
		&KickCommand{},
		core.WithGuildOnly(),
		core.WithRankCheck(),
		core.WithCommandLogger(),
	)
}
