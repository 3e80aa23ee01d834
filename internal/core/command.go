package core

import (
	"despot/internal/rank"
	"despot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Command is the contract every slash command implements. RequiredRank is the
// minimum hierarchy level enforced by the rank-check middleware; Citizen means
// the command is open to everyone.
type Command interface {
	Name() string
	Description() string
	Group() string
	Category() string
	RequiredRank() rank.Level
	Run(ctx interface{}) error
}

// SlashProvider exposes the Discord registration payload for a command.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// SlashInteractionContext is what the runtime hands a command on invocation.
type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Store   storage.Store
}
