package video

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"google.golang.org/api/youtube/v3"
)

// Locale selects the message language.
type Locale string

const (
	LocaleEnglish Locale = "English"
	LocaleKorean  Locale = "Korean"
)

// Video is an assembled video record ready for filtering, formatting,
// and delivery.
type Video struct {
	VideoID          string
	Title            string
	URL              string
	ChannelID        string
	ChannelTitle     string
	Description      string
	CategoryID       string
	CategoryName     string
	Duration         string
	ThumbnailURL     string
	Tags             []string
	LiveBroadcast    string
	ScheduledStartAt string
	PublishedAt      time.Time
}

// BuildVideo assembles a Video from a details lookup result.
func BuildVideo(videoID string, detail *youtube.Video, categoryName string, locale Locale) (Video, error) {
	snippet := detail.Snippet
	if snippet == nil || detail.ContentDetails == nil {
		return Video{}, fmt.Errorf("video %s is missing snippet or content details", videoID)
	}

	publishedAt, err := time.Parse(time.RFC3339, snippet.PublishedAt)
	if err != nil {
		return Video{}, fmt.Errorf("failed to parse published date for %s: %w", videoID, err)
	}

	duration, err := FormatDuration(detail.ContentDetails.Duration, locale)
	if err != nil {
		return Video{}, fmt.Errorf("failed to parse duration for %s: %w", videoID, err)
	}

	v := Video{
		VideoID:       videoID,
		Title:         snippet.Title,
		URL:           "https://youtu.be/" + videoID,
		ChannelID:     snippet.ChannelId,
		ChannelTitle:  snippet.ChannelTitle,
		Description:   snippet.Description,
		CategoryID:    snippet.CategoryId,
		CategoryName:  categoryName,
		Duration:      duration,
		Tags:          snippet.Tags,
		LiveBroadcast: snippet.LiveBroadcastContent,
		PublishedAt:   publishedAt,
	}
	if snippet.Thumbnails != nil && snippet.Thumbnails.High != nil {
		v.ThumbnailURL = snippet.Thumbnails.High.Url
	}
	if detail.LiveStreamingDetails != nil {
		v.ScheduledStartAt = detail.LiveStreamingDetails.ScheduledStartTime
	}
	return v, nil
}

// Playlist sort modes.
const (
	SortDefault    = "default"
	SortReverse    = "reverse"
	SortDateNewest = "date_newest"
	SortDateOldest = "date_oldest"
)

// ValidSortMode reports whether mode is a recognized playlist sort.
func ValidSortMode(mode string) bool {
	switch mode {
	case SortDefault, SortReverse, SortDateNewest, SortDateOldest:
		return true
	}
	return false
}

// SortPlaylist orders playlist candidates according to the sort mode.
// The default keeps the position order chosen by the playlist author.
func SortPlaylist(candidates []Candidate, mode string) {
	switch mode {
	case SortReverse:
		for i, j := 0, len(candidates)-1; i < j; i, j = i+1, j-1 {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		}
	case SortDateNewest:
		sortCandidatesByDate(candidates, true)
	case SortDateOldest:
		sortCandidatesByDate(candidates, false)
	default:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Position < candidates[j].Position
		})
	}
}

// sortCandidatesByDate orders candidates by their RFC 3339 publication
// timestamp, which sorts correctly as a string.
func sortCandidatesByDate(candidates []Candidate, newestFirst bool) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if newestFirst {
			return candidates[i].PublishedAt > candidates[j].PublishedAt
		}
		return candidates[i].PublishedAt < candidates[j].PublishedAt
	})
}

// ISO 8601 durations as produced by the API: PT1H2M3S, P1DT2H, P0D.
var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration parses the API's ISO 8601 duration strings.
func ParseISODuration(s string) (time.Duration, error) {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid ISO 8601 duration: %q", s)
	}
	var total time.Duration
	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("invalid ISO 8601 duration: %q", s)
		}
		total += time.Duration(n) * unit
	}
	return total, nil
}

// FormatDuration renders an ISO 8601 duration as a human-readable
// length in the requested locale.
func FormatDuration(iso string, locale Locale) (string, error) {
	d, err := ParseISODuration(iso)
	if err != nil {
		return "", err
	}

	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if locale == LocaleKorean {
		switch {
		case hours > 0:
			return fmt.Sprintf("%d시간 %d분 %d초", hours, minutes, seconds), nil
		case minutes > 0:
			return fmt.Sprintf("%d분 %d초", minutes, seconds), nil
		default:
			return fmt.Sprintf("%d초", seconds), nil
		}
	}
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds), nil
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds), nil
	default:
		return fmt.Sprintf("%ds", seconds), nil
	}
}

// FormatPublishedAt renders a timestamp for messages: KST wall-clock
// time for Korean, local time otherwise.
func FormatPublishedAt(t time.Time, locale Locale) string {
	if locale == LocaleKorean {
		kst := t.UTC().Add(9 * time.Hour)
		return fmt.Sprintf("%d년 %02d월 %02d일 %02d시 %02d분",
			kst.Year(), kst.Month(), kst.Day(), kst.Hour(), kst.Minute())
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// FormatScheduledStart renders a liveStreamingDetails timestamp, which
// arrives as an RFC 3339 string.
func FormatScheduledStart(raw string, locale Locale) (string, bool) {
	if raw == "" {
		return "", false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return "", false
	}
	return FormatPublishedAt(t, locale), true
}
