// Package notifications tells organizers about new registrations.
package notifications

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	eventModel "chilume_backend/internals/features/events/model"
	participantModel "chilume_backend/internals/features/participants/model"
	regService "chilume_backend/internals/features/registrations/service"
	"chilume_backend/internals/logger"
)

var (
	_ regService.Notifier = Noop{}
	_ regService.Notifier = (*Telegram)(nil)
)

// Noop is used when no channel is configured.
type Noop struct{}

func (Noop) RegistrationConfirmed(context.Context, eventModel.EventModel, participantModel.ParticipantModel) error {
	return nil
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	bot    sender
	chatID int64
}

// NewTelegram connects to the Bot API; it fails when the token is rejected.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	bot.Debug = false
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) RegistrationConfirmed(ctx context.Context, ev eventModel.EventModel, p participantModel.ParticipantModel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, FormatRegistrationMessage(ev, p))
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// Select returns a Telegram notifier when both token and chat id are set,
// otherwise Noop. A bad token downgrades to Noop with a warning.
func Select(token string, chatID int64) regService.Notifier {
	if strings.TrimSpace(token) == "" || chatID == 0 {
		return Noop{}
	}
	tg, err := NewTelegram(token, chatID)
	if err != nil {
		logger.LogW("telegram notifier disabled", "error", err)
		return Noop{}
	}
	return tg
}

func FormatRegistrationMessage(ev eventModel.EventModel, p participantModel.ParticipantModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New registration: %s\n", ev.EventName)
	fmt.Fprintf(&b, "Name: %s\n", p.ParticipantName)
	fmt.Fprintf(&b, "College: %s\n", p.ParticipantCollege)
	fmt.Fprintf(&b, "Phone: %s\n", p.ParticipantPhone)
	if p.ParticipantEmail != nil && *p.ParticipantEmail != "" {
		fmt.Fprintf(&b, "Email: %s\n", *p.ParticipantEmail)
	}
	fmt.Fprintf(&b, "Slots left: %d of %d", ev.AvailableSlots(), ev.EventMaxParticipants)
	return b.String()
}
