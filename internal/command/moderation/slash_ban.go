package moderation

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
	"despot/internal/rank"
)

type BanCommand struct{}

func (c *BanCommand) Name() string             { return "ban" }
func (c *BanCommand) Description() string      { return "Ban a member (role-protected)" }
func (c *BanCommand) Group() string            { return "moderation" }
func (c *BanCommand) Category() string         { return "⚖️ Moderation" }
func (c *BanCommand) RequiredRank() rank.Level { return rank.Supreme }

func (c *BanCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "User to ban",
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

func (c *BanCommand) Run(ctx interface{}) error {
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

	if err := session.GuildBanCreateWithReason(event.GuildID, targetID, reason, 0); err != nil {
		return core.RespondEphemeral(session, event, fmt.Sprintf("Ban failed: %v", err))
	}
	return core.Respond(session, event, fmt.Sprintf("<@%s> banned.", targetID))
}

func init() {
	core.RegisterCommand(
		&BanCommand{},
		core.WithGuildOnly(),
		core.WithRankCheck(),
		core.WithCommandLogger(),
	)
}
