// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken string
	DatabasePath     string
	LogLevel         string
	AllowedUsers     []int64

	// NewsFeeds maps each RSS/Atom feed URL to the category its articles
	// are filed under.
	NewsFeeds []NewsFeed
	// VideoChannels are YouTube channel IDs to pull uploads from.
	VideoChannels []string
	// BookTopics are Google Books subject searches.
	BookTopics  []string
	BooksAPIKey string

	NewsRefresh  time.Duration
	VideoRefresh time.Duration
	BookRefresh  time.Duration
}

// NewsFeed is one configured feed: "category|url" in the environment.
type NewsFeed struct {
	Category string
	URL      string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/bot.db"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	allowedUsers, err := parseUserIDs(os.Getenv("ALLOWED_USERS"))
	if err != nil {
		return nil, err
	}

	newsFeeds, err := parseNewsFeeds(os.Getenv("NEWS_FEEDS"))
	if err != nil {
		return nil, err
	}
	if len(newsFeeds) == 0 {
		newsFeeds = []NewsFeed{
			{Category: "technology", URL: "https://hnrss.org/frontpage"},
			{Category: "technology", URL: "https://feeds.arstechnica.com/arstechnica/index"},
		}
	}

	bookTopics := splitList(os.Getenv("BOOK_TOPICS"))
	if len(bookTopics) == 0 {
		bookTopics = []string{"programming", "technology", "productivity"}
	}

	newsRefresh, err := parseMinutes("NEWS_REFRESH_MINUTES", 180)
	if err != nil {
		return nil, err
	}
	videoRefresh, err := parseMinutes("VIDEO_REFRESH_MINUTES", 360)
	if err != nil {
		return nil, err
	}
	bookRefresh, err := parseMinutes("BOOK_REFRESH_MINUTES", 720)
	if err != nil {
		return nil, err
	}

	return &Config{
		TelegramBotToken: token,
		DatabasePath:     dbPath,
		LogLevel:         logLevel,
		AllowedUsers:     allowedUsers,
		NewsFeeds:        newsFeeds,
		VideoChannels:    splitList(os.Getenv("VIDEO_CHANNELS")),
		BookTopics:       bookTopics,
		BooksAPIKey:      os.Getenv("GOOGLE_BOOKS_API_KEY"),
		NewsRefresh:      newsRefresh,
		VideoRefresh:     videoRefresh,
		BookRefresh:      bookRefresh,
	}, nil
}

// IsUserAllowed checks whether a user ID is in the allow list.
// Returns true if the allow list is empty (all users permitted).
func (c *Config) IsUserAllowed(userID int64) bool {
	if len(c.AllowedUsers) == 0 {
		return true
	}
	for _, id := range c.AllowedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

func parseUserIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, s := range splitList(raw) {
		uid, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID %q in ALLOWED_USERS: %w", s, err)
		}
		ids = append(ids, uid)
	}
	return ids, nil
}

func parseNewsFeeds(raw string) ([]NewsFeed, error) {
	var feeds []NewsFeed
	for _, entry := range splitList(raw) {
		category, url, ok := strings.Cut(entry, "|")
		if !ok || category == "" || url == "" {
			return nil, fmt.Errorf("invalid NEWS_FEEDS entry %q, expected category|url", entry)
		}
		feeds = append(feeds, NewsFeed{Category: category, URL: url})
	}
	return feeds, nil
}

func parseMinutes(env string, fallback int) (time.Duration, error) {
	raw := os.Getenv(env)
	if raw == "" {
		return time.Duration(fallback) * time.Minute, nil
	}
	mins, err := strconv.Atoi(raw)
	if err != nil || mins < 1 {
		return 0, fmt.Errorf("%s must be a positive number of minutes", env)
	}
	return time.Duration(mins) * time.Minute, nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
