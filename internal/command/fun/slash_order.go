package fun

import (
	"math/rand"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
	"despot/internal/mind"
	"despot/internal/rank"
)

type OrderCommand struct{}

func (c *OrderCommand) Name() string             { return "order" }
func (c *OrderCommand) Description() string      { return "Receive an imperial order" }
func (c *OrderCommand) Group() string            { return "fun" }
func (c *OrderCommand) Category() string         { return "🎉 Fun" }
func (c *OrderCommand) RequiredRank() rank.Level { return rank.Citizen }

func (c *OrderCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *OrderCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}
	return core.Respond(context.Session, context.Event, mind.PickLine(mind.OrderLines, rand.Float64()))
}

func init() {
	core.RegisterCommand(
		&OrderCommand{},
		core.WithGuildOnly(),
		core.WithRankCheck(),
		core.WithCommandLogger(),
	)
}
