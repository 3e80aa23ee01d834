package whitelist

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
	"despot/internal/rank"
)

type AddCommand struct{}

func (c *AddCommand) Name() string             { return "whitelist_add" }
func (c *AddCommand) Description() string      { return "Allow the bot to speak in a channel" }
func (c *AddCommand) Group() string            { return "whitelist" }
func (c *AddCommand) Category() string         { return "🛠️ Setup" }
func (c *AddCommand) RequiredRank() rank.Level { return rank.Commander }

func (c *AddCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "Channel to whitelist",
				Required:    true,
			},
		},
	}
}

func (c *AddCommand) Run(ctx interface{}) error {
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

	added, err := context.Store.AddWhitelistChannel(event.GuildID, channelID)
	if err != nil {
		return fmt.Errorf("whitelist add: %w", err)
	}
	if !added {
		return core.RespondEphemeral(session, event, "Channel already whitelisted.")
	}
	return core.Respond(session, event, fmt.Sprintf("<#%s> added to the whitelist.", channelID))
}

func init() {
	core.RegisterCommand(
		&AddCommand{},
		core.WithGuildOnly(),
		core.WithRankCheck(),
		core.WithCommandLogger(),
	)
}
