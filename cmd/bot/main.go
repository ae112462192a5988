package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"jarvis_bot/internal/bot"
	"jarvis_bot/internal/config"
	"jarvis_bot/internal/fetch"
	"jarvis_bot/internal/model"
	"jarvis_bot/internal/recommend"
	"jarvis_bot/internal/scheduler"
	"jarvis_bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	store, err := storage.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	engine := recommend.New(store, log)

	refresher := scheduler.New(engine, log)
	client := http.DefaultClient

	feeds := make([]fetch.Feed, 0, len(cfg.NewsFeeds))
	for _, f := range cfg.NewsFeeds {
		feeds = append(feeds, fetch.Feed{Category: f.Category, URL: f.URL})
	}
	refresher.AddSource(model.DomainArticle, fetch.NewNews(client, feeds), cfg.NewsRefresh)
	refresher.AddSource(model.DomainBook, fetch.NewBooks(client, cfg.BooksAPIKey, cfg.BookTopics), cfg.BookRefresh)
	if len(cfg.VideoChannels) > 0 {
		refresher.AddSource(model.DomainVideo, fetch.NewVideos(client, cfg.VideoChannels), cfg.VideoRefresh)
	}

	b, err := bot.New(cfg.TelegramBotToken, engine, refresher, cfg, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting bot")

	go refresher.Run(ctx)

	b.Run(ctx)

	log.Info("bot stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
