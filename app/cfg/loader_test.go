package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestLoadNews_TopicMode(t *testing.T) {
	cfg, err := LoadNews([]string{
		"--webhook-url=https://discord.test/hook",
		"--topic-mode",
		"--topic-keyword=technology",
	})
	if err != nil {
		t.Fatalf("LoadNews returned error: %v", err)
	}

	if cfg.TopicKeyword != "technology" {
		t.Errorf("TopicKeyword = %q", cfg.TopicKeyword)
	}
	if cfg.TopicParams != "?hl=ko&gl=KR&ceid=KR%3Ako" {
		t.Errorf("TopicParams default = %q", cfg.TopicParams)
	}
	if cfg.DBPath != "google_news_topic.db" {
		t.Errorf("DBPath default = %q", cfg.DBPath)
	}
	if !cfg.OriginLink {
		t.Error("OriginLink should default to true")
	}
}

func TestLoadNews_TopicModeRequiresKeyword(t *testing.T) {
	_, err := LoadNews([]string{
		"--webhook-url=https://discord.test/hook",
		"--topic-mode",
	})
	if err == nil {
		t.Fatal("LoadNews succeeded without a topic keyword")
	}
}

func TestLoadNews_RawModeRequiresFeedURL(t *testing.T) {
	_, err := LoadNews([]string{"--webhook-url=https://discord.test/hook"})
	if err == nil {
		t.Fatal("LoadNews succeeded without a feed URL")
	}
}

func TestLoadNews_OriginLinkNegations(t *testing.T) {
	for _, v := range []string{"false", "F", "0", "no", "N"} {
		cfg, err := LoadNews([]string{
			"--webhook-url=https://discord.test/hook",
			"--feed-url=https://news.example/rss",
			"--origin-link=" + v,
		})
		if err != nil {
			t.Fatalf("LoadNews returned error: %v", err)
		}
		if cfg.OriginLink {
			t.Errorf("OriginLink = true for %q", v)
		}
	}
}

func TestLoadVideo_Channels(t *testing.T) {
	cfg, err := LoadVideo([]string{
		"--api-key=key",
		"--webhook-url=https://discord.test/hook",
		"--channel-id=UC123",
	})
	if err != nil {
		t.Fatalf("LoadVideo returned error: %v", err)
	}

	if cfg.Mode != "channels" {
		t.Errorf("Mode default = %q", cfg.Mode)
	}
	if cfg.MaxResults != 10 || cfg.InitMaxResults != 50 {
		t.Errorf("result limits = %d/%d", cfg.MaxResults, cfg.InitMaxResults)
	}
	if cfg.Language != "English" {
		t.Errorf("Language default = %q", cfg.Language)
	}
	if cfg.DBPath != "youtube_videos.db" {
		t.Errorf("DBPath default = %q", cfg.DBPath)
	}
}

func TestLoadVideo_ChannelsRequiresChannelID(t *testing.T) {
	_, err := LoadVideo([]string{
		"--api-key=key",
		"--webhook-url=https://discord.test/hook",
	})
	if err == nil {
		t.Fatal("LoadVideo succeeded without a channel ID")
	}
}

func TestLoadVideo_PlaylistSortValidation(t *testing.T) {
	_, err := LoadVideo([]string{
		"--api-key=key",
		"--webhook-url=https://discord.test/hook",
		"--mode=playlists",
		"--playlist-id=PL123",
		"--playlist-sort=position",
	})
	if err == nil {
		t.Fatal("LoadVideo accepted an invalid playlist sort")
	}
}

func TestLoadVideo_Search(t *testing.T) {
	cfg, err := LoadVideo([]string{
		"--api-key=key",
		"--webhook-url=https://discord.test/hook",
		"--mode=Search",
		"--search-keyword=rocket launch",
	})
	if err != nil {
		t.Fatalf("LoadVideo returned error: %v", err)
	}
	if cfg.Mode != "search" {
		t.Errorf("Mode = %q, want lowercased", cfg.Mode)
	}
	if cfg.SearchKeyword != "rocket launch" {
		t.Errorf("SearchKeyword = %q", cfg.SearchKeyword)
	}
}

func TestLoadVideo_UnknownMode(t *testing.T) {
	_, err := LoadVideo([]string{
		"--api-key=key",
		"--webhook-url=https://discord.test/hook",
		"--mode=live",
	})
	if err == nil {
		t.Fatal("LoadVideo accepted an unknown mode")
	}
}
