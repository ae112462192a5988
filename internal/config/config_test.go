package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var envKeys = []string{
	"TELEGRAM_BOT_TOKEN", "DATABASE_PATH", "LOG_LEVEL", "ALLOWED_USERS",
	"NEWS_FEEDS", "VIDEO_CHANNELS", "BOOK_TOPICS", "GOOGLE_BOOKS_API_KEY",
	"NEWS_REFRESH_MINUTES", "VIDEO_REFRESH_MINUTES", "BOOK_REFRESH_MINUTES",
}

func TestLoad(t *testing.T) {
	defaultFeeds := []NewsFeed{
		{Category: "technology", URL: "https://hnrss.org/frontpage"},
		{Category: "technology", URL: "https://feeds.arstechnica.com/arstechnica/index"},
	}
	defaultTopics := []string{"programming", "technology", "productivity"}

	tests := []struct {
		name    string
		env     map[string]string
		want    *Config
		wantErr bool
	}{
		{
			name:    "missing token",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name: "token only, defaults applied",
			env:  map[string]string{"TELEGRAM_BOT_TOKEN": "test-token"},
			want: &Config{
				TelegramBotToken: "test-token",
				DatabasePath:     "./data/bot.db",
				LogLevel:         "info",
				NewsFeeds:        defaultFeeds,
				BookTopics:       defaultTopics,
				NewsRefresh:      180 * time.Minute,
				VideoRefresh:     360 * time.Minute,
				BookRefresh:      720 * time.Minute,
			},
		},
		{
			name: "all values set",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN":    "tok",
				"DATABASE_PATH":         "/tmp/bot.db",
				"LOG_LEVEL":             "debug",
				"ALLOWED_USERS":         "111,222",
				"NEWS_FEEDS":            "science|https://sci.example.com/rss, business|https://biz.example.com/feed",
				"VIDEO_CHANNELS":        "UCabc,UCdef",
				"BOOK_TOPICS":           "golang, distributed systems",
				"GOOGLE_BOOKS_API_KEY":  "key-123",
				"NEWS_REFRESH_MINUTES":  "60",
				"VIDEO_REFRESH_MINUTES": "120",
				"BOOK_REFRESH_MINUTES":  "1440",
			},
			want: &Config{
				TelegramBotToken: "tok",
				DatabasePath:     "/tmp/bot.db",
				LogLevel:         "debug",
				AllowedUsers:     []int64{111, 222},
				NewsFeeds: []NewsFeed{
					{Category: "science", URL: "https://sci.example.com/rss"},
					{Category: "business", URL: "https://biz.example.com/feed"},
				},
				VideoChannels: []string{"UCabc", "UCdef"},
				BookTopics:    []string{"golang", "distributed systems"},
				BooksAPIKey:   "key-123",
				NewsRefresh:   60 * time.Minute,
				VideoRefresh:  120 * time.Minute,
				BookRefresh:   1440 * time.Minute,
			},
		},
		{
			name: "allowed users with spaces",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "tok",
				"ALLOWED_USERS":      " 10 , 20 , ",
			},
			want: &Config{
				TelegramBotToken: "tok",
				DatabasePath:     "./data/bot.db",
				LogLevel:         "info",
				AllowedUsers:     []int64{10, 20},
				NewsFeeds:        defaultFeeds,
				BookTopics:       defaultTopics,
				NewsRefresh:      180 * time.Minute,
				VideoRefresh:     360 * time.Minute,
				BookRefresh:      720 * time.Minute,
			},
		},
		{
			name: "invalid user id",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "tok",
				"ALLOWED_USERS":      "123,abc",
			},
			wantErr: true,
		},
		{
			name: "news feed without category",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "tok",
				"NEWS_FEEDS":         "https://no-category.example.com/rss",
			},
			wantErr: true,
		},
		{
			name: "refresh interval not a number",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN":   "tok",
				"NEWS_REFRESH_MINUTES": "soon",
			},
			wantErr: true,
		},
		{
			name: "refresh interval below one minute",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN":   "tok",
				"BOOK_REFRESH_MINUTES": "0",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envKeys {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsUserAllowed(t *testing.T) {
	tests := []struct {
		name         string
		allowedUsers []int64
		userID       int64
		want         bool
	}{
		{
			name:         "empty list allows everyone",
			allowedUsers: nil,
			userID:       42,
			want:         true,
		},
		{
			name:         "user in list",
			allowedUsers: []int64{10, 20, 30},
			userID:       20,
			want:         true,
		},
		{
			name:         "user not in list",
			allowedUsers: []int64{10, 20, 30},
			userID:       99,
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AllowedUsers: tt.allowedUsers}
			if got := cfg.IsUserAllowed(tt.userID); got != tt.want {
				t.Errorf("IsUserAllowed(%d) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}
}
