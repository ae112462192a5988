package bot

import (
	"fmt"
	"strings"

	"jarvis_bot/internal/model"
	"jarvis_bot/internal/recommend"
)

// FormatItem formats a recommended item as a Telegram message.
func FormatItem(domain model.Domain, item model.Item) string {
	var b strings.Builder

	switch domain {
	case model.DomainVideo:
		fmt.Fprintf(&b, "🎬 %s\n", item.Title)
		if item.Attribution != "" {
			fmt.Fprintf(&b, "Channel: %s\n", item.Attribution)
		}
	case model.DomainBook:
		fmt.Fprintf(&b, "📚 %s\n", item.Title)
		if len(item.Authors) > 0 {
			fmt.Fprintf(&b, "By: %s\n", strings.Join(item.Authors, ", "))
		}
		if item.Rating > 0 {
			fmt.Fprintf(&b, "Rating: %.1f (%d ratings)\n", item.Rating, item.RatingCount)
		}
		if len(item.Categories) > 0 {
			fmt.Fprintf(&b, "Genre: %s\n", strings.Join(item.Categories, ", "))
		}
	default:
		fmt.Fprintf(&b, "📰 %s\n", item.Title)
		if item.Attribution != "" {
			fmt.Fprintf(&b, "Source: %s\n", item.Attribution)
		}
	}

	if item.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", item.Description)
	}
	if item.URL != "" {
		fmt.Fprintf(&b, "\n%s", item.URL)
	}
	return b.String()
}

// FormatInsights formats the activity summary for the stats command.
func FormatInsights(in *recommend.Insights) string {
	if in.TotalInteractions == 0 {
		return "No activity yet. Ask for a pick with /video, /book, or /news."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your activity:\n\nTotal interactions: %d\n", in.TotalInteractions)

	if len(in.ByDomain) > 0 {
		b.WriteString("\nBy content type:\n")
		for _, domain := range model.Domains {
			if count := in.ByDomain[domain]; count > 0 {
				fmt.Fprintf(&b, "  %s: %d\n", domainLabel(domain), count)
			}
		}
	}

	if len(in.MostActiveDays) > 0 {
		b.WriteString("\nMost active days:\n")
		for i, day := range in.MostActiveDays {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&b, "  %s: %d\n", day.Day, day.Count)
		}
	}

	b.WriteString("\nTop interests:\n")
	writeInterestLine(&b, "video", in.TopVideoInterests)
	writeInterestLine(&b, "books", in.TopBookGenres)
	writeInterestLine(&b, "news", in.TopArticleCategories)
	return b.String()
}

// FormatProfile formats the full preference profile for the interests command.
func FormatProfile(p *model.Profile) string {
	var b strings.Builder
	b.WriteString("Your preference profile:\n")
	writeInterestLine(&b, "video interests", p.VideoInterests.Values())
	writeInterestLine(&b, "book genres", p.BookGenres.Values())
	writeInterestLine(&b, "favorite authors", p.BookAuthors.Values())
	writeInterestLine(&b, "news categories", p.ArticleCategories.Values())
	writeInterestLine(&b, "news sources", p.ArticleSources.Values())
	b.WriteString("\nReact to picks or use /rate to refine it. /reset starts over.")
	return b.String()
}

func writeInterestLine(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		fmt.Fprintf(b, "  %s: none yet\n", label)
		return
	}
	fmt.Fprintf(b, "  %s: %s\n", label, strings.Join(values, ", "))
}
