// Package cfg loads runtime configuration for the news and video
// binaries from flags and environment variables.
package cfg

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

// ErrHelp marks the help-screen exit so callers can terminate cleanly.
var ErrHelp = fmt.Errorf("help requested")

const defaultTopicParams = "?hl=ko&gl=KR&ceid=KR%3Ako"

type rawNewsCfg struct {
	WebhookURL string `long:"webhook-url" env:"DISCORD_WEBHOOK_TOPIC" description:"Discord webhook URL (required)" required:"true"`
	AvatarURL  string `long:"avatar-url" env:"DISCORD_AVATAR_TOPIC" description:"Webhook avatar override"`
	Username   string `long:"username" env:"DISCORD_USERNAME_TOPIC" description:"Webhook username override"`

	TopicMode    bool   `long:"topic-mode" env:"TOPIC_MODE" description:"Fetch a named topic instead of a raw feed URL"`
	TopicKeyword string `long:"topic-keyword" env:"TOPIC_KEYWORD" description:"Topic keyword, e.g. headlines or technology"`
	TopicParams  string `long:"topic-params" env:"TOPIC_PARAMS" default:"?hl=ko&gl=KR&ceid=KR%3Ako" description:"Locale query string appended to the topic feed URL"`
	FeedURL      string `long:"feed-url" env:"RSS_URL_TOPIC" description:"Feed URL when topic mode is off"`

	AdvancedFilter string `long:"advanced-filter" env:"ADVANCED_FILTER_TOPIC" description:"Include/exclude keyword query"`
	DateFilter     string `long:"date-filter" env:"DATE_FILTER_TOPIC" description:"Date filter, e.g. past:24h or since:2024-01-01"`

	Initialize bool   `long:"initialize" env:"INITIALIZE_MODE_TOPIC" description:"Reset the store and process the whole feed"`
	OriginLink string `long:"origin-link" env:"ORIGIN_LINK_TOPIC" default:"true" description:"Resolve redirect links to their origin"`
	DBPath     string `long:"db-path" env:"DB_PATH_TOPIC" default:"google_news_topic.db" description:"Path to the sqlite database"`
	Debug      bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

type rawVideoCfg struct {
	APIKey string `long:"api-key" env:"YOUTUBE_API_KEY" description:"YouTube Data API key (required)" required:"true"`

	Mode          string `long:"mode" env:"YOUTUBE_MODE" default:"channels" description:"One of channels, playlists, search"`
	ChannelID     string `long:"channel-id" env:"YOUTUBE_CHANNEL_ID" description:"Channel ID for channels mode"`
	PlaylistID    string `long:"playlist-id" env:"YOUTUBE_PLAYLIST_ID" description:"Playlist ID for playlists mode"`
	PlaylistSort  string `long:"playlist-sort" env:"YOUTUBE_PLAYLIST_SORT" default:"default" description:"One of default, reverse, date_newest, date_oldest"`
	SearchKeyword string `long:"search-keyword" env:"YOUTUBE_SEARCH_KEYWORD" description:"Query for search mode"`

	WebhookURL       string `long:"webhook-url" env:"DISCORD_WEBHOOK_YOUTUBE" description:"Discord webhook URL (required)" required:"true"`
	DetailWebhookURL string `long:"detail-webhook-url" env:"DISCORD_WEBHOOK_YOUTUBE_DETAILVIEW" description:"Separate webhook for detail embeds"`
	AvatarURL        string `long:"avatar-url" env:"DISCORD_AVATAR_YOUTUBE" description:"Webhook avatar override"`
	Username         string `long:"username" env:"DISCORD_USERNAME_YOUTUBE" description:"Webhook username override"`
	Language         string `long:"language" env:"LANGUAGE_YOUTUBE" default:"English" description:"Message language: English or Korean"`
	DetailView       bool   `long:"detailview" env:"YOUTUBE_DETAILVIEW" description:"Also post a rich detail embed per video"`

	AdvancedFilter string `long:"advanced-filter" env:"ADVANCED_FILTER_YOUTUBE" description:"Include/exclude keyword query applied to titles"`
	DateFilter     string `long:"date-filter" env:"DATE_FILTER_YOUTUBE" description:"Date filter, e.g. past:24h or since:2024-01-01"`

	MaxResults     int64 `long:"max-results" env:"YOUTUBE_MAX_RESULTS" default:"10" description:"Videos fetched per run"`
	InitMaxResults int64 `long:"init-max-results" env:"YOUTUBE_INIT_MAX_RESULTS" default:"50" description:"Videos fetched on an initialize run"`
	Initialize     bool  `long:"initialize" env:"INITIALIZE_MODE_YOUTUBE" description:"Reset the store and process the whole listing"`

	DBPath string `long:"db-path" env:"DB_PATH_YOUTUBE" default:"youtube_videos.db" description:"Path to the sqlite database"`
	Debug  bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// LoadNews parses the news binary's configuration.
func LoadNews(args []string) (*NewsCfg, error) {
	var raw rawNewsCfg
	if err := parse(&raw, args); err != nil {
		return nil, err
	}

	cfg := &NewsCfg{
		WebhookURL:     raw.WebhookURL,
		AvatarURL:      strings.TrimSpace(raw.AvatarURL),
		Username:       strings.TrimSpace(raw.Username),
		TopicMode:      raw.TopicMode,
		TopicKeyword:   raw.TopicKeyword,
		TopicParams:    cmp.Or(raw.TopicParams, defaultTopicParams),
		FeedURL:        raw.FeedURL,
		AdvancedFilter: raw.AdvancedFilter,
		DateFilter:     raw.DateFilter,
		Initialize:     raw.Initialize,
		OriginLink:     parseBool(raw.OriginLink),
		DBPath:         raw.DBPath,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if cfg.TopicMode && cfg.TopicKeyword == "" {
		return nil, fmt.Errorf("topic keyword is required when topic mode is on")
	}
	if !cfg.TopicMode && cfg.FeedURL == "" {
		return nil, fmt.Errorf("feed URL is required when topic mode is off")
	}
	return cfg, nil
}

// LoadVideo parses the video binary's configuration.
func LoadVideo(args []string) (*VideoCfg, error) {
	var raw rawVideoCfg
	if err := parse(&raw, args); err != nil {
		return nil, err
	}

	cfg := &VideoCfg{
		APIKey:           raw.APIKey,
		Mode:             strings.ToLower(raw.Mode),
		ChannelID:        raw.ChannelID,
		PlaylistID:       raw.PlaylistID,
		PlaylistSort:     strings.ToLower(raw.PlaylistSort),
		SearchKeyword:    raw.SearchKeyword,
		WebhookURL:       raw.WebhookURL,
		DetailWebhookURL: raw.DetailWebhookURL,
		AvatarURL:        strings.TrimSpace(raw.AvatarURL),
		Username:         strings.TrimSpace(raw.Username),
		Language:         raw.Language,
		DetailView:       raw.DetailView,
		AdvancedFilter:   raw.AdvancedFilter,
		DateFilter:       raw.DateFilter,
		MaxResults:       raw.MaxResults,
		InitMaxResults:   raw.InitMaxResults,
		Initialize:       raw.Initialize,
		DBPath:           raw.DBPath,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	switch cfg.Mode {
	case "channels":
		if cfg.ChannelID == "" {
			return nil, fmt.Errorf("channel ID is required in channels mode")
		}
	case "playlists":
		if cfg.PlaylistID == "" {
			return nil, fmt.Errorf("playlist ID is required in playlists mode")
		}
		switch cfg.PlaylistSort {
		case "default", "reverse", "date_newest", "date_oldest":
		default:
			return nil, fmt.Errorf("invalid playlist sort: %s", cfg.PlaylistSort)
		}
	case "search":
		if cfg.SearchKeyword == "" {
			return nil, fmt.Errorf("search keyword is required in search mode")
		}
	default:
		return nil, fmt.Errorf("mode must be one of channels, playlists, search, got %s", cfg.Mode)
	}
	return cfg, nil
}

func parse(raw interface{}, args []string) error {
	parser := flags.NewParser(raw, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return ErrHelp
		}
		return fmt.Errorf("failed to parse configuration: %w", err)
	}
	return nil
}

// parseBool treats anything but an explicit negation as true.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "false", "f", "0", "no", "n":
		return false
	}
	return true
}
