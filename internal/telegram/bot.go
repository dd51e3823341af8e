package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"efficientFrontier/internal/report"
)

var log = logrus.WithField("component", "telegram")

// Telegram caps message text at 4096 characters and captions at 1024.
const (
	maxMessage = 4096
	maxCaption = 1024
)

// Notifier delivers the rendered results of a run to one chat.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewNotifier(token string, chatID int64) (*Notifier, error) {
	return NewNotifierWithEndpoint(token, chatID, tgbotapi.APIEndpoint)
}

// NewNotifierWithEndpoint talks to a non-default Bot API server. endpoint
// takes the token and the method name, like tgbotapi.APIEndpoint.
func NewNotifierWithEndpoint(token string, chatID int64, endpoint string) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	log.Infof("telegram: authorized as @%s", api.Self.UserName)
	return &Notifier{api: api, chatID: chatID}, nil
}

// Deliver sends both charts followed by the text summary and, if present,
// the commentary. It stops at the first failed send.
func (n *Notifier) Deliver(a report.Artifacts) error {
	if len(a.Frontier) > 0 {
		photo := tgbotapi.NewPhoto(n.chatID, tgbotapi.FileBytes{Name: "frontier.png", Bytes: a.Frontier})
		photo.Caption = "Efficient frontier: blue = max Sharpe, red = min volatility"
		if _, err := n.api.Send(photo); err != nil {
			return fmt.Errorf("telegram: send frontier chart: %w", err)
		}
	}
	if len(a.Weights) > 0 {
		photo := tgbotapi.NewPhoto(n.chatID, tgbotapi.FileBytes{Name: "weights.png", Bytes: a.Weights})
		photo.Caption = truncate("Portfolio weights", maxCaption)
		if _, err := n.api.Send(photo); err != nil {
			return fmt.Errorf("telegram: send weights chart: %w", err)
		}
	}

	text := a.Summary
	if a.Commentary != "" {
		text += "\n\n" + a.Commentary
	}
	if text == "" {
		return nil
	}
	if _, err := n.api.Send(tgbotapi.NewMessage(n.chatID, truncate(text, maxMessage))); err != nil {
		return fmt.Errorf("telegram: send summary: %w", err)
	}
	log.Infof("telegram: delivered results to chat %d", n.chatID)
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
