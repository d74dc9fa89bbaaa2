package gnews

import (
	"time"
)

// Item is a processed news article ready for delivery.
type Item struct {
	GUID        string
	Title       string
	Link        string
	Description string
	PublishedAt time.Time
}

// FormatLocalTime renders t in the country's timezone and date layout.
// Unknown countries fall back to UTC with a neutral layout.
func FormatLocalTime(t time.Time, countryCode string) string {
	if cfg, ok := countryConfigs[countryCode]; ok {
		if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
			return t.In(loc).Format(cfg.DateLayout)
		}
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

// FormatMessage builds the webhook message body for a news item. The
// first line identifies the source feed, followed by the bolded title,
// the resolved link, the related article block, and the localized
// publication date.
func FormatMessage(item Item, prefix, category, topicName, emoji, countryCode string) string {
	source := "`" + prefix + " - " + category
	if topicName != "" {
		source += " - " + topicName
	}
	source += " " + emoji + "`"

	message := source + "\n**" + item.Title + "**\n" + item.Link
	if item.Description != "" {
		message += "\n>>> " + item.Description + "\n\n"
	} else {
		message += "\n\n"
	}
	message += "📅 " + FormatLocalTime(item.PublishedAt, countryCode)
	return message
}
