package fun

import (
	"math/rand"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
	"despot/internal/mind"
	"despot/internal/rank"
)

type SpeechCommand struct{}

func (c *SpeechCommand) Name() string             { return "speech" }
func (c *SpeechCommand) Description() string      { return "Hear a short imperial speech" }
func (c *SpeechCommand) Group() string            { return "fun" }
func (c *SpeechCommand) Category() string         { return "🎉 Fun" }
func (c *SpeechCommand) RequiredRank() rank.Level { return rank.Citizen }

func (c *SpeechCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *SpeechCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}
	return core.Respond(context.Session, context.Event, mind.PickLine(mind.SpeechLines, rand.Float64()))
}

func init() {
	core.RegisterCommand(
		&SpeechCommand{},
		core.WithGuildOnly(),
		core.WithRankCheck(),
		core.WithCommandLogger(),
	)
}
