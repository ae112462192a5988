package bot

import (
	"fmt"
	"strconv"
	"strings"

	"jarvis_bot/internal/model"
)

// RateArgs holds the parsed arguments of the /rate command.
type RateArgs struct {
	Domain   model.Domain
	Rating   int
	Feedback string
}

// ParseDomain maps a user-facing domain word to a content domain.
func ParseDomain(s string) (model.Domain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "video", "videos":
		return model.DomainVideo, nil
	case "book", "books":
		return model.DomainBook, nil
	case "news", "article", "articles":
		return model.DomainArticle, nil
	default:
		return "", fmt.Errorf("unknown content type %q, use: video, book, news", s)
	}
}

// ParseRateArgs parses arguments for /rate.
// Format: <video|book|news> <1-5> [feedback...]
func ParseRateArgs(args string) (RateArgs, error) {
	parts := strings.Fields(args)
	if len(parts) < 2 {
		return RateArgs{}, fmt.Errorf("usage: /rate <video|book|news> <1-5> [comment]")
	}

	domain, err := ParseDomain(parts[0])
	if err != nil {
		return RateArgs{}, err
	}

	rating, err := strconv.Atoi(parts[1])
	if err != nil || rating < 1 || rating > 5 {
		return RateArgs{}, fmt.Errorf("rating must be between 1 and 5")
	}

	return RateArgs{
		Domain:   domain,
		Rating:   rating,
		Feedback: strings.Join(parts[2:], " "),
	}, nil
}

func domainLabel(d model.Domain) string {
	switch d {
	case model.DomainVideo:
		return "video"
	case model.DomainBook:
		return "book"
	case model.DomainArticle:
		return "news"
	default:
		return string(d)
	}
}
