package video

import (
	"testing"
	"time"

	"google.golang.org/api/youtube/v3"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"PT1H2M3S", time.Hour + 2*time.Minute + 3*time.Second},
		{"PT15M33S", 15*time.Minute + 33*time.Second},
		{"PT42S", 42 * time.Second},
		{"P1DT2H", 26 * time.Hour},
		{"P0D", 0},
	}
	for _, tt := range tests {
		got, err := ParseISODuration(tt.in)
		if err != nil {
			t.Fatalf("ParseISODuration(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseISODuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseISODuration_Invalid(t *testing.T) {
	for _, in := range []string{"", "1h30m", "P1W", "PT1H2M3"} {
		if _, err := ParseISODuration(in); err == nil {
			t.Errorf("ParseISODuration(%q) succeeded, want error", in)
		}
	}
}

func TestFormatDuration_English(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PT1H2M3S", "1h 2m 3s"},
		{"PT15M0S", "15m 0s"},
		{"PT42S", "42s"},
	}
	for _, tt := range tests {
		got, err := FormatDuration(tt.in, LocaleEnglish)
		if err != nil {
			t.Fatalf("FormatDuration(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("FormatDuration(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration_Korean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PT1H2M3S", "1시간 2분 3초"},
		{"PT15M33S", "15분 33초"},
		{"PT42S", "42초"},
	}
	for _, tt := range tests {
		got, err := FormatDuration(tt.in, LocaleKorean)
		if err != nil {
			t.Fatalf("FormatDuration(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("FormatDuration(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPublishedAt_Korean(t *testing.T) {
	ts := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)

	got := FormatPublishedAt(ts, LocaleKorean)
	want := "2024년 06월 02일 08시 30분"
	if got != want {
		t.Errorf("FormatPublishedAt = %q, want %q", got, want)
	}
}

func TestFormatPublishedAt_English(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

	got := FormatPublishedAt(ts, LocaleEnglish)
	want := ts.Local().Format("2006-01-02 15:04:05")
	if got != want {
		t.Errorf("FormatPublishedAt = %q, want %q", got, want)
	}
}

func TestFormatScheduledStart(t *testing.T) {
	got, ok := FormatScheduledStart("2024-06-01T23:30:00Z", LocaleKorean)
	if !ok {
		t.Fatal("FormatScheduledStart returned not ok for a valid timestamp")
	}
	if want := "2024년 06월 02일 08시 30분"; got != want {
		t.Errorf("FormatScheduledStart = %q, want %q", got, want)
	}

	if _, ok := FormatScheduledStart("", LocaleEnglish); ok {
		t.Error("FormatScheduledStart returned ok for an empty timestamp")
	}
	if _, ok := FormatScheduledStart("not-a-date", LocaleEnglish); ok {
		t.Error("FormatScheduledStart returned ok for garbage input")
	}
}

func testCandidates() []Candidate {
	return []Candidate{
		{VideoID: "a", PublishedAt: "2024-06-03T00:00:00Z", Position: 0},
		{VideoID: "b", PublishedAt: "2024-06-01T00:00:00Z", Position: 1},
		{VideoID: "c", PublishedAt: "2024-06-02T00:00:00Z", Position: 2},
	}
}

func candidateOrder(candidates []Candidate) string {
	var s string
	for _, c := range candidates {
		s += c.VideoID
	}
	return s
}

func TestSortPlaylist(t *testing.T) {
	tests := []struct {
		mode string
		want string
	}{
		{SortDefault, "abc"},
		{SortReverse, "cba"},
		{SortDateNewest, "acb"},
		{SortDateOldest, "bca"},
	}
	for _, tt := range tests {
		candidates := testCandidates()
		SortPlaylist(candidates, tt.mode)
		if got := candidateOrder(candidates); got != tt.want {
			t.Errorf("SortPlaylist(%q) order = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestValidSortMode(t *testing.T) {
	for _, mode := range []string{SortDefault, SortReverse, SortDateNewest, SortDateOldest} {
		if !ValidSortMode(mode) {
			t.Errorf("ValidSortMode(%q) = false", mode)
		}
	}
	if ValidSortMode("position") {
		t.Error("ValidSortMode accepted an unknown mode")
	}
}

func TestBuildVideo(t *testing.T) {
	detail := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:                "Launch Recap",
			ChannelId:            "UC123",
			ChannelTitle:         "Space Channel",
			Description:          "Highlights from the launch.",
			CategoryId:           "28",
			PublishedAt:          "2024-06-01T12:00:00Z",
			Tags:                 []string{"space", "rocket"},
			LiveBroadcastContent: "none",
			Thumbnails: &youtube.ThumbnailDetails{
				High: &youtube.Thumbnail{Url: "https://img.example/high.jpg"},
			},
		},
		ContentDetails: &youtube.VideoContentDetails{Duration: "PT15M33S"},
		LiveStreamingDetails: &youtube.VideoLiveStreamingDetails{
			ScheduledStartTime: "2024-06-01T11:00:00Z",
		},
	}

	v, err := BuildVideo("vid123", detail, "Science & Technology", LocaleEnglish)
	if err != nil {
		t.Fatalf("BuildVideo returned error: %v", err)
	}

	if v.URL != "https://youtu.be/vid123" {
		t.Errorf("URL = %q", v.URL)
	}
	if v.Duration != "15m 33s" {
		t.Errorf("Duration = %q", v.Duration)
	}
	if v.CategoryName != "Science & Technology" {
		t.Errorf("CategoryName = %q", v.CategoryName)
	}
	if v.ThumbnailURL != "https://img.example/high.jpg" {
		t.Errorf("ThumbnailURL = %q", v.ThumbnailURL)
	}
	if v.ScheduledStartAt != "2024-06-01T11:00:00Z" {
		t.Errorf("ScheduledStartAt = %q", v.ScheduledStartAt)
	}
	if !v.PublishedAt.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("PublishedAt = %v", v.PublishedAt)
	}
	if len(v.Tags) != 2 || v.Tags[0] != "space" {
		t.Errorf("Tags = %v", v.Tags)
	}
}

func TestBuildVideo_MissingSnippet(t *testing.T) {
	if _, err := BuildVideo("vid123", &youtube.Video{}, "Unknown", LocaleEnglish); err == nil {
		t.Fatal("BuildVideo succeeded without a snippet")
	}
}
