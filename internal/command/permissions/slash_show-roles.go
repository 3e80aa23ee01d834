package permissions

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
	"despot/internal/rank"
)

type ShowRolesCommand struct{}

func (c *ShowRolesCommand) Name() string             { return "permissions_show" }
func (c *ShowRolesCommand) Description() string      { return "Show the configured hierarchy roles" }
func (c *ShowRolesCommand) Group() string            { return "permissions" }
func (c *ShowRolesCommand) Category() string         { return "🛠️ Setup" }
func (c *ShowRolesCommand) RequiredRank() rank.Level { return rank.Citizen }

func (c *ShowRolesCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ShowRolesCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	cfg, err := context.Store.EnsureGuildConfig(event.GuildID)
	if err != nil {
		return fmt.Errorf("permissions show: %w", err)
	}

	var b strings.Builder
	b.WriteString("Hierarchy roles:\n")
	if cfg.CommanderRoleID != "" {
		fmt.Fprintf(&b, "Commander: <@&%s> (ID %s)\n", cfg.CommanderRoleID, cfg.CommanderRoleID)
	} else {
		b.WriteString("Commander: not set\n")
	}
	if cfg.SupremeRoleID != "" {
		fmt.Fprintf(&b, "Supreme: <@&%s> (ID %s)\n", cfg.SupremeRoleID, cfg.SupremeRoleID)
	} else {
		b.WriteString("Supreme: not set\n")
	}
	return core.RespondEphemeral(session, event, b.String())
}

func init() {
	core.RegisterCommand(
		&ShowRolesCommand{},
		core.WithGuildOnly(),
		core.WithRankCheck(),
		core.WithCommandLogger(),
	)
}
