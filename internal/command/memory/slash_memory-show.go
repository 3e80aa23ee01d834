package memory

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
	"despot/internal/rank"
)

type ShowCommand struct{}

func (c *ShowCommand) Name() string             { return "memory_show" }
func (c *ShowCommand) Description() string      { return "Show saved facts about a user" }
func (c *ShowCommand) Group() string            { return "memory" }
func (c *ShowCommand) Category() string         { return "🧠 Memory" }
func (c *ShowCommand) RequiredRank() rank.Level { return rank.Commander }

func (c *ShowCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			userOption(false),
		},
	}
}

func (c *ShowCommand) Run(ctx interface{}) error {
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

	mem, err := context.Store.EnsureUserMemory(userID)
	if err != nil {
		return fmt.Errorf("memory show: %w", err)
	}
	if len(mem.LongMemory) == 0 {
		return core.RespondEphemeral(session, event, fmt.Sprintf("No memories for <@%s>.", userID))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Memories for <@%s>:\n", userID)
	for i, fact := range mem.LongMemory {
		fmt.Fprintf(&b, "%d. %s\n", i+1, fact)
	}
	return core.RespondEphemeral(session, event, b.String())
}

func init() {
	core.RegisterCommand(
		&ShowCommand{},
		core.WithGuildOnly(),
		core.WithRankCheck(),
		core.WithCommandLogger(),
	)
}
