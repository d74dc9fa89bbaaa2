package database

import (
	"time"
)

// NewsItem represents a delivered news article keyed by its feed GUID.
type NewsItem struct {
	GUID         string
	Title        string
	Link         string
	Topic        string
	PublishedAt  *time.Time
	RelatedItems []RelatedItem
	CreatedAt    time.Time
}

// RelatedItem is a secondary article attached to a news item, stored as
// a JSON array in the related_items column.
type RelatedItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Press string `json:"press,omitempty"`
}

// Video represents a delivered YouTube video keyed by its video ID.
type Video struct {
	VideoID          string
	Title            string
	URL              string
	ChannelID        string
	ChannelTitle     string
	Description      string
	ThumbnailURL     string
	Duration         string
	CategoryName     string
	Tags             []string
	ScheduledStartAt *time.Time
	PublishedAt      *time.Time
	CreatedAt        time.Time
}
