package cfg

// NewsCfg holds the settings for one news run.
type NewsCfg struct {
	// Delivery
	WebhookURL string
	AvatarURL  string
	Username   string

	// Feed selection
	TopicMode    bool
	TopicKeyword string
	TopicParams  string
	FeedURL      string

	// Filtering
	AdvancedFilter string
	DateFilter     string

	// Behavior
	Initialize bool
	OriginLink bool
	DBPath     string
	Debug      bool
	Version    string
}

// VideoCfg holds the settings for one video run.
type VideoCfg struct {
	// API access
	APIKey string

	// Mode selection
	Mode          string
	ChannelID     string
	PlaylistID    string
	PlaylistSort  string
	SearchKeyword string

	// Delivery
	WebhookURL       string
	DetailWebhookURL string
	AvatarURL        string
	Username         string
	Language         string
	DetailView       bool

	// Filtering
	AdvancedFilter string
	DateFilter     string

	// Behavior
	MaxResults     int64
	InitMaxResults int64
	Initialize     bool
	DBPath         string
	Debug          bool
	Version        string
}
