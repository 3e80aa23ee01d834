package whitelist

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
	"despot/internal/rank"
)

type ListCommand struct{}

func (c *ListCommand) Name() string             { return "whitelist_list" }
func (c *ListCommand) Description() string      { return "List whitelisted channels" }
func (c *ListCommand) Group() string            { return "whitelist" }
func (c *ListCommand) Category() string         { return "🛠️ Setup" }
func (c *ListCommand) RequiredRank() rank.Level { return rank.Commander }

func (c *ListCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ListCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	cfg, err := context.Store.EnsureGuildConfig(event.GuildID)
	if err != nil {
		return fmt.Errorf("whitelist list: %w", err)
	}
	if len(cfg.Whitelist) == 0 {
		return core.RespondEphemeral(session, event, "No whitelisted channels. I speak everywhere.")
	}

	var b strings.Builder
	b.WriteString("Whitelisted channels:\n")
	for _, id := range cfg.Whitelist {
		fmt.Fprintf(&b, "- <#%s> (ID: %s)\n", id, id)
	}
	return core.RespondEphemeral(session, event, b.String())
}

func init() {
	core.RegisterCommand(
		&ListCommand{},
		core.WithGuildOnly(),
		core.WithRankCheck(),
		core.WithCommandLogger(),
	)
}
