package permissions

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
	"despot/internal/rank"
	"despot/internal/storage"
)

type SetRolesCommand struct{}

func (c *SetRolesCommand) Name() string             { return "permissions_setroles" }
func (c *SetRolesCommand) Description() string      { return "Configure the commander and supreme roles" }
func (c *SetRolesCommand) Group() string            { return "permissions" }
func (c *SetRolesCommand) Category() string         { return "🛠️ Setup" }
func (c *SetRolesCommand) RequiredRank() rank.Level { return rank.Owner }

func (c *SetRolesCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "commander",
				Description: "Role granting commander rank",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "supreme",
				Description: "Role granting supreme rank",
				Required:    false,
			},
		},
	}
}

func (c *SetRolesCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	var changed bool
	for _, opt := range event.ApplicationCommandData().Options {
		var kind storage.RoleKind
		switch opt.Name {
		case "commander":
			kind = storage.RoleCommander
		case "supreme":
			kind = storage.RoleSupreme
		default:
			continue
		}
		role := opt.RoleValue(session, event.GuildID)
		if role == nil {
			continue
		}
		if err := context.Store.SetGuildRole(event.GuildID, kind, role.ID); err != nil {
			return fmt.Errorf("set role %s: %w", kind, err)
		}
		changed = true
	}

	if !changed {
		return core.RespondEphemeral(session, event, "Provide at least one role to set.")
	}
	return core.Respond(session, event, "Roles updated.")
}

func init() {
	core.RegisterCommand(
		&SetRolesCommand{},
		core.WithGuildOnly(),
		core.WithRankCheck(),
		core.WithCommandLogger(),
	)
}
