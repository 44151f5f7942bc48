package notify

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	announcementColor      = 3447003
	announcementMaxSummary = 400
)

// DiscordAnnouncer posts call announcements to a Discord channel using a bot
// token. The session is REST-only; no gateway connection is opened.
type DiscordAnnouncer struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscordAnnouncer creates an announcer for the given bot token and channel.
func NewDiscordAnnouncer(botToken, channelID string) (*DiscordAnnouncer, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	return &DiscordAnnouncer{
		session:   session,
		channelID: channelID,
	}, nil
}

// truncateSummary caps the embed description, counting characters rather
// than bytes so a multi-byte rune is never split at the boundary.
func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= announcementMaxSummary {
		return s
	}
	return string(runes[:announcementMaxSummary-3]) + "..."
}

// Announce posts the new-call embed to the configured channel.
func (a *DiscordAnnouncer) Announce(announcement CallAnnouncement) error {
	description := truncateSummary(announcement.Summary)

	_, err := a.session.ChannelMessageSendComplex(a.channelID, &discordgo.MessageSend{
		Content: "**New Research Collaboration Opportunity**",
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       announcement.Title,
				Description: description,
				URL:         announcement.URL,
				Color:       announcementColor,
				Footer: &discordgo.MessageEmbedFooter{
					Text: "Click the title to apply as a co-author",
				},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to post announcement: %w", err)
	}

	return nil
}
