package delivery

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/chunkrelay/chunkrelay/internal/config"
)

// webhookPoster executes a Discord webhook for every chunk.
type webhookPoster struct {
	session   *discordgo.Session
	webhookID string
	token     string
	username  string
}

// channelPoster sends chunks as bot messages to a fixed channel.
type channelPoster struct {
	session   *discordgo.Session
	channelID string
}

// NewPoster builds a Poster from the Discord config: a webhook URL if set,
// otherwise a bot token plus channel ID.
func NewPoster(cfg config.DiscordConfig) (Poster, error) {
	switch {
	case cfg.WebhookURL != "":
		id, token, err := ParseWebhookURL(cfg.WebhookURL)
		if err != nil {
			return nil, err
		}
		// Webhook execution needs no bot authentication.
		session, err := discordgo.New("")
		if err != nil {
			return nil, fmt.Errorf("create discord session: %w", err)
		}
		return &webhookPoster{
			session:   session,
			webhookID: id,
			token:     token,
			username:  cfg.Username,
		}, nil
	case cfg.BotToken != "" && cfg.ChannelID != "":
		session, err := discordgo.New("Bot " + cfg.BotToken)
		if err != nil {
			return nil, fmt.Errorf("create discord session: %w", err)
		}
		return &channelPoster{session: session, channelID: cfg.ChannelID}, nil
	default:
		return nil, fmt.Errorf("discord target is not configured: set webhook_url or bot_token and channel_id")
	}
}

func (p *webhookPoster) Post(ctx context.Context, content string) error {
	_, err := p.session.WebhookExecute(p.webhookID, p.token, true, &discordgo.WebhookParams{
		Content:  content,
		Username: p.username,
	}, discordgo.WithContext(ctx))
	return err
}

func (p *channelPoster) Post(ctx context.Context, content string) error {
	_, err := p.session.ChannelMessageSend(p.channelID, content, discordgo.WithContext(ctx))
	return err
}

// ParseWebhookURL extracts the webhook ID and token from a Discord webhook
// URL of the form https://discord.com/api/webhooks/{id}/{token}.
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("parse webhook URL: %w", err)
	}
	marker := "/api/webhooks/"
	idx := strings.Index(u.Path, marker)
	if idx < 0 {
		return "", "", fmt.Errorf("not a Discord webhook URL: %s", raw)
	}
	rest := strings.Trim(u.Path[idx+len(marker):], "/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("webhook URL is missing its ID or token: %s", raw)
	}
	return parts[0], parts[1], nil
}
