package memory

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
	"despot/internal/rank"
)

type ForgetAllCommand struct{}

func (c *ForgetAllCommand) Name() string             { return "memory_forgetall" }
func (c *ForgetAllCommand) Description() string      { return "Forget every saved fact about a user" }
func (c *ForgetAllCommand) Group() string            { return "memory" }
func (c *ForgetAllCommand) Category() string         { return "🧠 Memory" }
func (c *ForgetAllCommand) RequiredRank() rank.Level { return rank.Supreme }

func (c *ForgetAllCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			userOption(false),
		},
	}
}

func (c *ForgetAllCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	userID := targetUser(session, event)
	if userID == "" {
		return core.RespondEphemeral(session, event, "User not found.")
	}

	if err := context.Store.ClearLongFacts(userID); err != nil {
		return fmt.Errorf("memory forgetall: %w", err)
	}
	return core.Respond(session, event, fmt.Sprintf("Wiped all memories for <@%s>.", userID))
}

func init() {
	core.RegisterCommand(
		&ForgetAllCommand{},
		core.WithGuildOnly(),
		core.WithRankCheck(),
		core.WithCommandLogger(),
	)
}
