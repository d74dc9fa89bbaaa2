package gnews

import (
	"strings"
	"testing"
	"time"
)

func TestFormatLocalTime_Korea(t *testing.T) {
	utc := time.Date(2024, 6, 1, 3, 30, 0, 0, time.UTC)

	got := FormatLocalTime(utc, "KR")
	if got != "2024년 06월 01일 12:30:00 (KST)" {
		t.Errorf("Unexpected Korean timestamp %q", got)
	}
}

func TestFormatLocalTime_UnknownCountry(t *testing.T) {
	utc := time.Date(2024, 6, 1, 3, 30, 0, 0, time.UTC)

	got := FormatLocalTime(utc, "XX")
	if got != "2024-06-01 03:30:00" {
		t.Errorf("Expected UTC fallback, got %q", got)
	}
}

func TestFormatMessage(t *testing.T) {
	item := Item{
		Title:       "Markets rally",
		Link:        "https://example.com/markets",
		Description: "- [Related](<https://example.com/r>) | Press",
		PublishedAt: time.Date(2024, 6, 1, 3, 30, 0, 0, time.UTC),
	}

	got := FormatMessage(item, "Google 뉴스", "비즈니스 뉴스", "비즈니스", "🇰🇷", "KR")

	lines := strings.Split(got, "\n")
	if lines[0] != "`Google 뉴스 - 비즈니스 뉴스 - 비즈니스 🇰🇷`" {
		t.Errorf("Unexpected source line %q", lines[0])
	}
	if lines[1] != "**Markets rally**" {
		t.Errorf("Unexpected title line %q", lines[1])
	}
	if lines[2] != "https://example.com/markets" {
		t.Errorf("Unexpected link line %q", lines[2])
	}
	if !strings.Contains(got, ">>> - [Related](<https://example.com/r>) | Press") {
		t.Errorf("Missing quoted description:\n%s", got)
	}
	if !strings.HasSuffix(got, "📅 2024년 06월 01일 12:30:00 (KST)") {
		t.Errorf("Missing localized date suffix:\n%s", got)
	}
}

func TestFormatMessage_NoDescription(t *testing.T) {
	item := Item{
		Title:       "Quiet day",
		Link:        "https://example.com/quiet",
		PublishedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	got := FormatMessage(item, "Google News", "Topics", "", "🇺🇸", "XX")

	if strings.Contains(got, ">>>") {
		t.Errorf("Did not expect quote block:\n%s", got)
	}
	if !strings.HasPrefix(got, "`Google News - Topics 🇺🇸`") {
		t.Errorf("Topic segment should be omitted when empty:\n%s", got)
	}
}
