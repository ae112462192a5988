package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jarvis_bot/internal/model"
)

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := cb.Data
	chatID := cb.Message.Chat.ID

	callback := tgbotapi.NewCallback(cb.ID, "")
	if _, err := b.api.Send(callback); err != nil {
		b.log.Error("send callback ack", "error", err)
	}

	b.log.Info("callback",
		"data", data,
		"chat_id", chatID,
		"user_id", cb.From.ID,
		"username", cb.From.UserName,
	)

	parts := strings.Split(data, ":")
	switch parts[0] {
	case "react":
		if len(parts) != 3 {
			return
		}
		b.handleReaction(ctx, chatID, model.Domain(parts[1]), model.InteractionKind(parts[2]))
	case "reset":
		if len(parts) == 2 && parts[1] == "confirm" {
			if err := b.engine.ResetProfile(ctx); err != nil {
				b.log.Error("reset profile", "error", err)
				b.reply(chatID, "Could not reset preferences, please try again.")
				return
			}
			b.reply(chatID, "Preferences reset to defaults.")
		}
	}
}

func (b *Bot) handleReaction(ctx context.Context, chatID int64, domain model.Domain, kind model.InteractionKind) {
	switch kind {
	case model.KindLiked, model.KindCompleted, model.KindDisliked:
	default:
		return
	}

	item, ok := b.engine.LastPick(domain)
	if !ok {
		b.reply(chatID, "That pick is gone - ask for a new one.")
		return
	}

	if err := b.engine.RecordInteraction(ctx, domain, item, kind, 0, ""); err != nil {
		b.log.Error("record reaction", "domain", domain, "item_id", item.ID, "kind", kind, "error", err)
		b.reply(chatID, "Could not save your reaction, please try again.")
		return
	}

	switch kind {
	case model.KindDisliked:
		b.reply(chatID, fmt.Sprintf("Noted - fewer picks like \"%s\".", item.Title))
	default:
		b.reply(chatID, fmt.Sprintf("Noted - more picks like \"%s\".", item.Title))
	}
}
