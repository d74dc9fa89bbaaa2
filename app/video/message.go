package video

import (
	"fmt"
	"strings"

	"github.com/jkwoo/feedwire/app/discord"
	"github.com/jkwoo/feedwire/app/format"
)

// Modes of operation.
const (
	ModeChannels  = "channels"
	ModePlaylists = "playlists"
	ModeSearch    = "search"
)

// ValidMode reports whether mode is a recognized operating mode.
func ValidMode(mode string) bool {
	switch mode {
	case ModeChannels, ModePlaylists, ModeSearch:
		return true
	}
	return false
}

// MessageContext carries the run-level inputs the plain message needs
// beyond the video itself.
type MessageContext struct {
	Mode          string
	Locale        Locale
	SearchKeyword string
	Playlist      *PlaylistInfo
}

// PlainMessage renders the notification message for a video.
func PlainMessage(v Video, ctx MessageContext) string {
	var b strings.Builder
	b.WriteString(sourceText(v, ctx))
	fmt.Fprintf(&b, "**%s**\n%s\n\n", v.Title, v.URL)

	if ctx.Locale == LocaleKorean {
		fmt.Fprintf(&b, "📁 카테고리: `%s`\n", v.CategoryName)
		fmt.Fprintf(&b, "⌛️ 영상 길이: `%s`\n", v.Duration)
		fmt.Fprintf(&b, "📅 게시일: `%s`\n", FormatPublishedAt(v.PublishedAt, ctx.Locale))
		fmt.Fprintf(&b, "🖼️ [썸네일](<%s>)", v.ThumbnailURL)
		if start, ok := FormatScheduledStart(v.ScheduledStartAt, ctx.Locale); ok {
			fmt.Fprintf(&b, "\n\n🔴 예정된 라이브 시작 시간: `%s`", start)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "📁 Category: `%s`\n", v.CategoryName)
	fmt.Fprintf(&b, "⌛️ Duration: `%s`\n", v.Duration)
	fmt.Fprintf(&b, "📅 Published: `%s`\n", FormatPublishedAt(v.PublishedAt, ctx.Locale))
	fmt.Fprintf(&b, "🖼️ [Thumbnail](<%s>)", v.ThumbnailURL)
	if start, ok := FormatScheduledStart(v.ScheduledStartAt, ctx.Locale); ok {
		fmt.Fprintf(&b, "\n\n🔴 Scheduled Live Start Time: `%s`", start)
	}
	return b.String()
}

func sourceText(v Video, ctx MessageContext) string {
	korean := ctx.Locale == LocaleKorean
	switch ctx.Mode {
	case ModeChannels:
		if korean {
			return fmt.Sprintf("`%s - YouTube`\n", v.ChannelTitle)
		}
		return fmt.Sprintf("`%s - YouTube Channel`\n", v.ChannelTitle)
	case ModePlaylists:
		if ctx.Playlist != nil {
			label := "YouTube Playlist by"
			if korean {
				label = "YouTube 재생목록 by"
			}
			return fmt.Sprintf("`📃 %s - %s %s`\n\n`%s - YouTube`\n",
				ctx.Playlist.Title, label, ctx.Playlist.ChannelTitle, v.ChannelTitle)
		}
		if korean {
			return fmt.Sprintf("`📃 YouTube 재생목록`\n`%s - YouTube`\n", v.ChannelTitle)
		}
		return fmt.Sprintf("`📃 YouTube Playlist`\n`%s - YouTube`\n", v.ChannelTitle)
	case ModeSearch:
		label := "YouTube Search Result"
		if korean {
			label = "YouTube 검색 결과"
		}
		return fmt.Sprintf("`🔎 %s - %s`\n\n`%s - YouTube`\n\n", ctx.SearchKeyword, label, v.ChannelTitle)
	}
	if korean {
		return fmt.Sprintf("`%s - YouTube`\n", v.ChannelTitle)
	}
	return fmt.Sprintf("`%s - YouTube Channel`\n", v.ChannelTitle)
}

const (
	embedColor = 16711680
	footerIcon = "https://icon.dataimpact.ing/media/original/youtube/youtube_social_circle_red.png"
)

// DetailEmbed builds the detail-view embed for a video.
func DetailEmbed(v Video, channelThumbnail string, locale Locale) discord.Embed {
	korean := locale == LocaleKorean
	pick := func(en, ko string) string {
		if korean {
			return ko
		}
		return en
	}

	tags := "N/A"
	if len(v.Tags) > 0 {
		quoted := make([]string, len(v.Tags))
		for i, tag := range v.Tags {
			quoted[i] = "`" + strings.TrimSpace(tag) + "`"
		}
		tags = strings.Join(quoted, " ")
	}

	return discord.Embed{
		Title:       v.Title,
		Description: format.Truncate(v.Description, 4096),
		URL:         v.URL,
		Color:       embedColor,
		Fields: []discord.EmbedField{
			{Name: pick("🆔 Video ID", "🆔 영상 ID"), Value: "`" + v.VideoID + "`"},
			{Name: pick("📁 Category", "📁 영상 분류"), Value: v.CategoryName},
			{Name: pick("🏷️ Tags", "🏷️ 영상 태그"), Value: tags},
			{Name: pick("⌛ Duration", "⌛ 영상 길이"), Value: v.Duration},
			{Name: pick("🔡 Subtitle", "🔡 영상 자막"), Value: fmt.Sprintf("[Download](https://downsub.com/?url=%s)", v.URL)},
			{Name: "▶️ " + pick("Play Video", "영상 재생"), Value: fmt.Sprintf("[Embed](https://www.youtube.com/embed/%s)", v.VideoID)},
		},
		Author: &discord.EmbedAuthor{
			Name:    v.ChannelTitle,
			URL:     "https://www.youtube.com/channel/" + v.ChannelID,
			IconURL: channelThumbnail,
		},
		Footer: &discord.EmbedFooter{
			Text:    "YouTube",
			IconURL: footerIcon,
		},
		Timestamp: v.PublishedAt.Format("2006-01-02T15:04:05Z07:00"),
		Image:     &discord.EmbedMedia{URL: v.ThumbnailURL},
	}
}
