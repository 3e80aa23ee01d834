package memory

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
	"despot/internal/rank"
)

type AddCommand struct{}

func (c *AddCommand) Name() string             { return "memory_add" }
func (c *AddCommand) Description() string      { return "Save a fact about a user" }
func (c *AddCommand) Group() string            { return "memory" }
func (c *AddCommand) Category() string         { return "🧠 Memory" }
func (c *AddCommand) RequiredRank() rank.Level { return rank.Supreme }

func (c *AddCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "fact",
				Description: "Fact to remember",
				Required:    true,
			},
			userOption(false),
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

	fact := stringOption(event, "fact")
	userID := targetUser(session, event)
	if fact == "" || userID == "" {
		return core.RespondEphemeral(session, event, "Nothing to remember.")
	}

	added, err := context.Store.AddLongFact(userID, fact)
	if err != nil {
		return fmt.Errorf("memory add: %w", err)
	}
	if !added {
		return core.RespondEphemeral(session, event, "Fact already present.")
	}
	return core.Respond(session, event, fmt.Sprintf("Saved memory for <@%s>.", userID))
}

func init() {
	core.RegisterCommand(
		&AddCommand{},
		core.WithGuildOnly(),
		core.WithRankCheck(),
		core.WithCommandLogger(),
	)
}
