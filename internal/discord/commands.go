package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"despot/internal/core"
)

// registerCommands bulk-overwrites the global slash command set with the
// definitions collected from the registry.
func (b *Bot) registerCommands() error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return fmt.Errorf("failed to fetch self: %w", err)
		}
		appID = user.ID
	}

	var defs []*discordgo.ApplicationCommand
	for _, cmd := range core.AllCommands() {
		sp, ok := cmd.(core.SlashProvider)
		if !ok {
			continue
		}
		def := sp.SlashDefinition()
		if def == nil {
			continue
		}
		if def.Type == 0 {
			def.Type = discordgo.ChatApplicationCommand
		}
		defs = append(defs, def)
	}

	if _, err := b.dg.ApplicationCommandBulkOverwrite(appID, "", defs); err != nil {
		return fmt.Errorf("bulk overwrite failed: %w", err)
	}
	log.Printf("[INFO] Registered %d global commands", len(defs))
	return nil
}
