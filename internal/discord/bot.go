package discord

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"

	"despot/internal/ai"
	"despot/internal/config"
	"despot/internal/core"
	"despot/internal/mind"
	"despot/internal/rank"
	"despot/internal/storage"
)

const cooldownWindow = 800 * time.Millisecond

// Bot is the Discord-facing shell around the pipeline and command registry.
type Bot struct {
	dg       *discordgo.Session
	store    storage.Store
	cfg      *config.Config
	pipeline *Pipeline
}

// StartBot wires the providers and runs the bot until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, store storage.Store) error {
	provider := ai.NewGroqProvider(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	pipeline := NewPipeline(
		store,
		mind.NewClassifier(provider),
		mind.NewResponder(provider),
		mind.NewDetector(rand.Float64),
		storage.NewCooldownGate(cooldownWindow),
		rand.Float64,
		cfg.TriggerName,
	)

	b := &Bot{store: store, cfg: cfg, pipeline: pipeline}
	if err := b.run(ctx, cfg.DiscordToken); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	if err := s.UpdateGameStatus(0, "Polishing the imperial scepter"); err != nil {
		log.Println("[WARN] Failed to set activity:", err)
	}

	if b.cfg.RegisterCommands {
		if err := b.registerCommands(); err != nil {
			log.Println("[ERR] Error registering slash commands:", err)
		}
	} else {
		log.Println("[INFO] Registering slash commands skipped")
	}

	log.Printf("[INFO] Bot %v is running.", s.State.User.Username)
}

// onGuildCreate seeds the guild config so the whitelist and roles exist before
// the first message or command arrives.
func (b *Bot) onGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Guild == nil || g.ID == "" {
		return
	}
	if _, err := b.store.EnsureGuildConfig(g.ID); err != nil {
		log.Printf("[WARN] Guild config init failed for %s: %v", g.ID, err)
		return
	}
	log.Printf("[INFO] Guild ready: %s (%s)", g.Name, g.ID)
}

// onMessageCreate adapts a gateway event into the pipeline's Inbound and
// delivers the outcome. One message's failure must never affect another, so
// everything is caught and logged here.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERR] Panic in message handler: %v", r)
		}
	}()

	if m.Author == nil || m.Author.Bot || m.Author.ID == s.State.User.ID {
		return
	}
	if m.GuildID == "" {
		return
	}

	in := Inbound{
		GuildID:      m.GuildID,
		ChannelID:    m.ChannelID,
		AuthorID:     m.Author.ID,
		AuthorName:   m.Author.Username,
		Content:      m.Content,
		MentionsBot:  mentionsUser(m.Mentions, s.State.User.ID),
		RepliesToBot: b.repliesToBot(s, m),
		AuthorLevel:  b.memberLevel(s, m.GuildID, m.Author.ID, memberRoles(m.Member)),
		TargetLevel: func(userID string) rank.Level {
			return b.memberLevel(s, m.GuildID, userID, nil)
		},
	}
	for _, u := range m.Mentions {
		in.MentionIDs = append(in.MentionIDs, u.ID)
	}

	out, err := b.pipeline.Handle(in)
	if err != nil {
		log.Printf("[ERR] Pipeline error for message %s: %v", m.ID, err)
		return
	}
	if out.Reply == "" {
		return
	}
	if _, err := s.ChannelMessageSendReply(m.ChannelID, out.Reply, m.Reference()); err != nil {
		log.Printf("[ERR] Failed to send reply: %v", err)
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERR] Panic in interaction handler: %v", r)
			_ = core.RespondEphemeral(s, i, "An error occurred.")
		}
	}()

	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	cmd, ok := core.GetCommand(name)
	if !ok {
		log.Printf("[WARN] Unknown command: %s", name)
		return
	}

	ctx := &core.SlashInteractionContext{Session: s, Event: i, Store: b.store}
	if err := cmd.Run(ctx); err != nil {
		log.Printf("[ERR] Error running command %s: %v", name, err)
		_ = core.RespondEphemeral(s, i, "An error occurred.")
	}
}

// memberLevel resolves a user's hierarchy level, re-fetching role membership
// at use time. roleIDs may be supplied by the event to skip the fetch.
func (b *Bot) memberLevel(s *discordgo.Session, guildID, userID string, roleIDs []string) rank.Level {
	cfg, err := b.store.EnsureGuildConfig(guildID)
	if err != nil {
		log.Printf("[WARN] Guild config fetch failed for %s: %v", guildID, err)
		return rank.Citizen
	}
	if roleIDs == nil {
		member, err := s.State.Member(guildID, userID)
		if err != nil || member == nil {
			member, err = s.GuildMember(guildID, userID)
			if err != nil || member == nil {
				return rank.Citizen
			}
		}
		roleIDs = member.Roles
	}
	return rank.MemberLevel(userID, roleIDs, cfg, core.GuildOwnerID(s, guildID))
}

func (b *Bot) repliesToBot(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if m.ReferencedMessage != nil {
		return m.ReferencedMessage.Author != nil && m.ReferencedMessage.Author.ID == s.State.User.ID
	}
	if m.MessageReference == nil || m.MessageReference.MessageID == "" {
		return false
	}
	ref, err := s.ChannelMessage(m.MessageReference.ChannelID, m.MessageReference.MessageID)
	if err != nil || ref == nil || ref.Author == nil {
		return false
	}
	return ref.Author.ID == s.State.User.ID
}

func mentionsUser(mentions []*discordgo.User, userID string) bool {
	for _, u := range mentions {
		if u.ID == userID {
			return true
		}
	}
	return false
}

func memberRoles(m *discordgo.Member) []string {
	if m == nil {
		return []string{}
	}
	return m.Roles
}
