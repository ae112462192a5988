package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jarvis_bot/internal/model"
)

const startText = `Hi, I'm your personal content assistant.

I learn what you like from your reactions and pick videos, books, and
articles for you. Start with /video, /book, or /news, then react with the
buttons under each pick. Use /help for every command.`

const helpText = `Commands:
/video - recommend a video
/book - recommend a book
/news - recommend an article
/rate <video|book|news> <1-5> [comment] - rate the last pick
/stats - your activity and interests summary
/interests - current preference profile
/refresh [video|book|news] - fetch fresh content now
/reset - reset learned preferences to defaults

React with the buttons under a pick to teach me what you like.`

func (b *Bot) handleStart(chatID int64) {
	b.reply(chatID, startText)
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, helpText)
}

func (b *Bot) handleRecommend(ctx context.Context, chatID int64, domainArg string) {
	domain, err := ParseDomain(domainArg)
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}

	item := b.engine.Recommend(ctx, domain)
	if item == nil {
		b.reply(chatID, fmt.Sprintf("No %s picks available right now. Try /refresh or check back later.", domainLabel(domain)))
		return
	}

	msg := tgbotapi.NewMessage(chatID, FormatItem(domain, *item))
	msg.DisableWebPagePreview = false
	msg.ReplyMarkup = reactionKeyboard(domain)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send recommendation", "chat_id", chatID, "error", err)
		return
	}

	if err := b.engine.RecordInteraction(ctx, domain, *item, model.KindViewed, 0, ""); err != nil {
		b.log.Error("record viewed", "domain", domain, "item_id", item.ID, "error", err)
	}
}

func (b *Bot) handleRate(ctx context.Context, chatID int64, args string) {
	rate, err := ParseRateArgs(args)
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}

	item, ok := b.engine.LastPick(rate.Domain)
	if !ok {
		b.reply(chatID, fmt.Sprintf("Nothing to rate yet - ask for a %s pick first.", domainLabel(rate.Domain)))
		return
	}

	if err := b.engine.RecordInteraction(ctx, rate.Domain, item, model.KindViewed, rate.Rating, rate.Feedback); err != nil {
		b.log.Error("record rating", "domain", rate.Domain, "item_id", item.ID, "error", err)
		b.reply(chatID, "Could not save your rating, please try again.")
		return
	}

	text := fmt.Sprintf("Saved: %d/5 for \"%s\".", rate.Rating, item.Title)
	if rate.Rating >= 4 {
		text += " I'll look for more like it."
	}
	b.reply(chatID, text)
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) {
	insights, err := b.engine.Insights(ctx)
	if err != nil {
		b.log.Error("load insights", "error", err)
		b.reply(chatID, "Could not load your stats, please try again.")
		return
	}
	b.reply(chatID, FormatInsights(insights))
}

func (b *Bot) handleInterests(ctx context.Context, chatID int64) {
	profile, err := b.engine.Profile(ctx)
	if err != nil {
		b.log.Error("load profile", "error", err)
		b.reply(chatID, "Could not load your interests, please try again.")
		return
	}
	b.reply(chatID, FormatProfile(profile))
}

func (b *Bot) handleReset(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Reset all learned preferences to defaults? This cannot be undone.")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes, reset", "reset:confirm"),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", "noop:0"),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send reset confirmation", "error", err)
	}
}

func (b *Bot) handleRefresh(ctx context.Context, chatID int64, args string) {
	domains := model.Domains
	if args != "" {
		domain, err := ParseDomain(args)
		if err != nil {
			b.reply(chatID, err.Error())
			return
		}
		domains = []model.Domain{domain}
	}

	for _, domain := range domains {
		count, err := b.refresher.RefreshNow(ctx, domain)
		if err != nil {
			b.log.Error("manual refresh", "domain", domain, "error", err)
			b.reply(chatID, fmt.Sprintf("Refreshing %s content failed.", domainLabel(domain)))
			continue
		}
		b.reply(chatID, fmt.Sprintf("Refreshed %s content: %d candidates.", domainLabel(domain), count))
	}
}

func reactionKeyboard(domain model.Domain) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👍 Like", fmt.Sprintf("react:%s:liked", domain)),
			tgbotapi.NewInlineKeyboardButtonData("✅ Done", fmt.Sprintf("react:%s:completed", domain)),
			tgbotapi.NewInlineKeyboardButtonData("👎 Skip", fmt.Sprintf("react:%s:disliked", domain)),
		),
	)
}
