package whitelist

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
	"despot/internal/rank"
)

type RemoveCommand struct{}

func (c *RemoveCommand) Name() string             { return "whitelist_remove" }
func (c *RemoveCommand) Description() string      { return "Remove a channel from the whitelist" }
func (c *RemoveCommand) Group() string            { return "whitelist" }
func (c *RemoveCommand) Category() string         { return "🛠️ Setup" }
func (c *RemoveCommand) RequiredRank() rank.Level { return rank.Commander }

func (c *RemoveCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "Channel to remove",
				Required:    true,
			},
		},
	}
}

func (c *RemoveCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	var channelID string
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == "channel" {
			channelID = opt.ChannelValue(session).ID
		}
	}
	if channelID == "" {
		return core.RespondEphemeral(session, event, "Channel not found.")
	}

	removed, err := context.Store.RemoveWhitelistChannel(event.GuildID, channelID)
	if err != nil {
		return fmt.Errorf("whitelist remove: %w", err)
	}
	if !removed {
		return core.RespondEphemeral(session, event, "Channel not in whitelist.")
	}
	return core.Respond(session, event, fmt.Sprintf("<#%s> removed from the whitelist.", channelID))
}

func init() {
	core.RegisterCommand(
		&RemoveCommand{},
		core.WithGuildOnly(),
		core.WithRankCheck(),
		core.WithCommandLogger(),
	)
}
