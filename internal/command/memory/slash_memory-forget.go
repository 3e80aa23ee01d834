package memory

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
	"despot/internal/rank"
)

type ForgetCommand struct{}

func (c *ForgetCommand) Name() string             { return "memory_forget" }
func (c *ForgetCommand) Description() string      { return "Forget one saved fact about a user" }
func (c *ForgetCommand) Group() string            { return "memory" }
func (c *ForgetCommand) Category() string         { return "🧠 Memory" }
func (c *ForgetCommand) RequiredRank() rank.Level { return rank.Supreme }

func (c *ForgetCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "fact",
				Description: "Exact fact to forget",
				Required:    true,
			},
			userOption(false),
		},
	}
}

func (c *ForgetCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	fact := stringOption(event, "fact")
	userID := targetUser(session, event)
	if fact == "" || userID == "" {
		return core.RespondEphemeral(session, event, "Nothing to forget.")
	}

	removed, err := context.Store.RemoveLongFact(userID, fact)
	if err != nil {
		return fmt.Errorf("memory forget: %w", err)
	}
	if !removed {
		return core.RespondEphemeral(session, event, "Fact not found.")
	}
	return core.Respond(session, event, fmt.Sprintf("Forgot one memory for <@%s>.", userID))
}

func init() {
	core.RegisterCommand(
		&ForgetCommand{},
		core.WithGuildOnly(),
		core.WithRankCheck(),
		core.WithCommandLogger(),
	)
}
