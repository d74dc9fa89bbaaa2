package video

import (
	"strings"
	"testing"
	"time"
)

func testVideo() Video {
	return Video{
		VideoID:      "vid123",
		Title:        "Launch Recap",
		URL:          "https://youtu.be/vid123",
		ChannelID:    "UC123",
		ChannelTitle: "Space Channel",
		Description:  "Highlights from the launch.",
		CategoryName: "Science & Technology",
		Duration:     "15m 33s",
		ThumbnailURL: "https://img.example/high.jpg",
		Tags:         []string{"space", "rocket"},
		PublishedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPlainMessage_ChannelEnglish(t *testing.T) {
	msg := PlainMessage(testVideo(), MessageContext{Mode: ModeChannels, Locale: LocaleEnglish})

	wantLines := []string{
		"`Space Channel - YouTube Channel`",
		"**Launch Recap**",
		"https://youtu.be/vid123",
		"📁 Category: `Science & Technology`",
		"⌛️ Duration: `15m 33s`",
		"🖼️ [Thumbnail](<https://img.example/high.jpg>)",
	}
	for _, line := range wantLines {
		if !strings.Contains(msg, line) {
			t.Errorf("message missing %q:\n%s", line, msg)
		}
	}
	if strings.Contains(msg, "Scheduled Live") {
		t.Error("message mentions a live start time for a regular video")
	}
}

func TestPlainMessage_ChannelKorean(t *testing.T) {
	msg := PlainMessage(testVideo(), MessageContext{Mode: ModeChannels, Locale: LocaleKorean})

	wantLines := []string{
		"`Space Channel - YouTube`",
		"📁 카테고리: `Science & Technology`",
		"⌛️ 영상 길이: `15m 33s`",
		"📅 게시일: `2024년 06월 01일 21시 00분`",
		"🖼️ [썸네일](<https://img.example/high.jpg>)",
	}
	for _, line := range wantLines {
		if !strings.Contains(msg, line) {
			t.Errorf("message missing %q:\n%s", line, msg)
		}
	}
}

func TestPlainMessage_PlaylistHeader(t *testing.T) {
	ctx := MessageContext{
		Mode:     ModePlaylists,
		Locale:   LocaleEnglish,
		Playlist: &PlaylistInfo{Title: "Best Launches", ChannelTitle: "Space Channel"},
	}
	msg := PlainMessage(testVideo(), ctx)

	if !strings.HasPrefix(msg, "`📃 Best Launches - YouTube Playlist by Space Channel`\n\n`Space Channel - YouTube`\n") {
		t.Errorf("unexpected playlist header:\n%s", msg)
	}
}

func TestPlainMessage_PlaylistWithoutInfo(t *testing.T) {
	msg := PlainMessage(testVideo(), MessageContext{Mode: ModePlaylists, Locale: LocaleEnglish})

	if !strings.HasPrefix(msg, "`📃 YouTube Playlist`\n`Space Channel - YouTube`\n") {
		t.Errorf("unexpected playlist header:\n%s", msg)
	}
}

func TestPlainMessage_SearchHeader(t *testing.T) {
	ctx := MessageContext{Mode: ModeSearch, Locale: LocaleEnglish, SearchKeyword: "rocket launch"}
	msg := PlainMessage(testVideo(), ctx)

	if !strings.HasPrefix(msg, "`🔎 rocket launch - YouTube Search Result`\n\n`Space Channel - YouTube`\n\n") {
		t.Errorf("unexpected search header:\n%s", msg)
	}
}

func TestPlainMessage_ScheduledLive(t *testing.T) {
	v := testVideo()
	v.ScheduledStartAt = "2024-06-02T09:00:00Z"

	msg := PlainMessage(v, MessageContext{Mode: ModeChannels, Locale: LocaleKorean})
	if !strings.Contains(msg, "🔴 예정된 라이브 시작 시간: `2024년 06월 02일 18시 00분`") {
		t.Errorf("message missing scheduled live line:\n%s", msg)
	}
}

func TestDetailEmbed(t *testing.T) {
	v := testVideo()
	embed := DetailEmbed(v, "https://img.example/channel.jpg", LocaleEnglish)

	if embed.Title != "Launch Recap" || embed.URL != "https://youtu.be/vid123" {
		t.Errorf("unexpected title/url: %q %q", embed.Title, embed.URL)
	}
	if embed.Color != 16711680 {
		t.Errorf("Color = %d", embed.Color)
	}
	if len(embed.Fields) != 6 {
		t.Fatalf("got %d fields, want 6", len(embed.Fields))
	}
	if embed.Fields[0].Value != "`vid123`" {
		t.Errorf("video ID field = %q", embed.Fields[0].Value)
	}
	if embed.Fields[2].Value != "`space` `rocket`" {
		t.Errorf("tags field = %q", embed.Fields[2].Value)
	}
	if embed.Fields[4].Value != "[Download](https://downsub.com/?url=https://youtu.be/vid123)" {
		t.Errorf("subtitle field = %q", embed.Fields[4].Value)
	}
	if embed.Fields[5].Value != "[Embed](https://www.youtube.com/embed/vid123)" {
		t.Errorf("play field = %q", embed.Fields[5].Value)
	}
	if embed.Author == nil || embed.Author.IconURL != "https://img.example/channel.jpg" {
		t.Errorf("author = %+v", embed.Author)
	}
	if embed.Footer == nil || embed.Footer.Text != "YouTube" {
		t.Errorf("footer = %+v", embed.Footer)
	}
	if embed.Timestamp != "2024-06-01T12:00:00Z" {
		t.Errorf("Timestamp = %q", embed.Timestamp)
	}
	if embed.Image == nil || embed.Image.URL != "https://img.example/high.jpg" {
		t.Errorf("image = %+v", embed.Image)
	}
}

func TestDetailEmbed_NoTags(t *testing.T) {
	v := testVideo()
	v.Tags = nil

	embed := DetailEmbed(v, "", LocaleEnglish)
	if embed.Fields[2].Value != "N/A" {
		t.Errorf("tags field = %q, want N/A", embed.Fields[2].Value)
	}
}

func TestDetailEmbed_LongDescription(t *testing.T) {
	v := testVideo()
	v.Description = strings.Repeat("a", 5000)

	embed := DetailEmbed(v, "", LocaleEnglish)
	if len(embed.Description) != 4096 {
		t.Errorf("description length = %d, want 4096", len(embed.Description))
	}
}

func TestValidMode(t *testing.T) {
	for _, mode := range []string{ModeChannels, ModePlaylists, ModeSearch} {
		if !ValidMode(mode) {
			t.Errorf("ValidMode(%q) = false", mode)
		}
	}
	if ValidMode("live") {
		t.Error("ValidMode accepted an unknown mode")
	}
}
