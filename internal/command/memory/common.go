package memory

import (
	"github.com/bwmarrin/discordgo"
)

// targetUser resolves the optional user option, defaulting to the invoker.
func targetUser(s *discordgo.Session, event *discordgo.InteractionCreate) string {
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == "user" {
			return opt.UserValue(s).ID
		}
	}
	if event.Member != nil && event.Member.User != nil {
		return event.Member.User.ID
	}
	return ""
}

func stringOption(event *discordgo.InteractionCreate, name string) string {
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func userOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: "Target user (defaults to you)",
		Required:    required,
	}
}
