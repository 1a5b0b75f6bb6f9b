package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/forest-guardian/agro-report-poc/internal/properties"
	"go.uber.org/zap"
)

const (
	colorRed   = 16711680
	colorGreen = 65280
)

// maxDescription is Discord's embed description limit.
const maxDescription = 4096

type DiscordMessage struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

type DiscordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

func SendDiscordErrorNotification(errorMessage string) error {
	return send(properties.DiscordErrorNotificationUrl(), DiscordEmbed{
		Title:       "🚨 Error Notification",
		Description: fmt.Sprintf("Agro report failed.\n\n%s", errorMessage),
		Color:       colorRed,
	})
}

func SendDiscordSuccessNotification(successMessage string) error {
	return send(properties.DiscordSuccessNotificationUrl(), DiscordEmbed{
		Title:       "✅ Success Notification",
		Description: successMessage,
		Color:       colorGreen,
	})
}

// send posts embed to url. An empty url disables notifications.
func send(url string, embed DiscordEmbed) error {
	if url == "" {
		zap.L().Debug("discord notification disabled", zap.String("title", embed.Title))
		return nil
	}
	if runes := []rune(embed.Description); len(runes) > maxDescription {
		embed.Description = string(runes[:maxDescription-1]) + "…"
	}

	payload, err := json.Marshal(DiscordMessage{Embeds: []DiscordEmbed{embed}})
	if err != nil {
		return err
	}

	resp, err := httpClient.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send Discord notification, status code: %d", resp.StatusCode)
	}
	return nil
}
