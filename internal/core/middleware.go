package core

import (
	"fmt"
	"log"

	"despot/internal/rank"
	"despot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	return w.Command.Run(ctx)
}

func (w *wrappedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := w.Command.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}

// WithGuildOnly silently drops invocations outside a guild.
func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*SlashInteractionContext); ok && v.Event.GuildID == "" {
					return RespondEphemeral(v.Session, v.Event, "Server-only command.")
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithRankCheck denies commands whose RequiredRank exceeds the invoker's
// resolved level. Denials are ephemeral replies, not errors.
func WithRankCheck() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				v, ok := ctx.(*SlashInteractionContext)
				if !ok {
					return cmd.Run(ctx)
				}
				required := cmd.RequiredRank()
				if required <= rank.Citizen {
					return cmd.Run(ctx)
				}

				level, err := ResolveLevel(v.Session, v.Event.GuildID, v.Event.Member, v.Store)
				if err != nil {
					return fmt.Errorf("rank resolution failed: %w", err)
				}
				if level < required {
					return RespondEphemeral(v.Session, v.Event, denialMessage(required))
				}
				return cmd.Run(ctx)
			},
		}
	}
}

func denialMessage(required rank.Level) string {
	switch required {
	case rank.Owner:
		return "Only the server owner can do that."
	case rank.Supreme:
		return "You lack permission (Supreme rank required)."
	default:
		return "Permission denied (Commander or Supreme rank required)."
	}
}

// WithCommandLogger logs each invocation.
func WithCommandLogger() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*SlashInteractionContext); ok && v.Event.Member != nil {
					log.Printf("[CMD] /%s by %s (%s) in guild %s",
						cmd.Name(), v.Event.Member.User.Username, v.Event.Member.User.ID, v.Event.GuildID)
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// ResolveLevel computes the invoker's hierarchy level from the stored guild
// config and the live guild owner. Roles are re-read on every call on purpose;
// they can change between invocations.
func ResolveLevel(s *discordgo.Session, guildID string, member *discordgo.Member, store storage.Store) (rank.Level, error) {
	if guildID == "" || member == nil {
		return rank.Citizen, nil
	}
	cfg, err := store.EnsureGuildConfig(guildID)
	if err != nil {
		return rank.Citizen, err
	}
	return rank.MemberLevel(member.User.ID, member.Roles, cfg, GuildOwnerID(s, guildID)), nil
}

// GuildOwnerID fetches the guild owner, preferring the session state cache.
func GuildOwnerID(s *discordgo.Session, guildID string) string {
	guild, err := s.State.Guild(guildID)
	if err != nil || guild == nil {
		guild, err = s.Guild(guildID)
		if err != nil || guild == nil {
			return ""
		}
	}
	return guild.OwnerID
}
