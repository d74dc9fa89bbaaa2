package video

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jkwoo/feedwire/app/database"
	"github.com/jkwoo/feedwire/app/discord"
	"github.com/jkwoo/feedwire/app/filter"
)

const (
	defaultMaxResults     = 10
	defaultInitMaxResults = 50
)

// ProcessorConfig controls a single video run.
type ProcessorConfig struct {
	Mode           string
	ChannelID      string
	PlaylistID     string
	PlaylistSort   string
	SearchKeyword  string
	MaxResults     int64
	InitMaxResults int64
	Initialize     bool
	Locale         Locale
	DetailView     bool
	PostPause      time.Duration
	DetailPause    time.Duration
}

// Processor drives one end-to-end video run: list candidates for the
// configured mode, drop videos already delivered, filter, format, and
// post each survivor before recording it.
type Processor struct {
	cfg        ProcessorConfig
	client     *Client
	repo       *database.VideoRepository
	sink       *discord.Client
	detailSink *discord.Client
	query      filter.Query
	dates      filter.DateFilter
	logger     *slog.Logger
}

// NewProcessor wires a video processor. detailSink may be nil, in which
// case detail embeds go to the main sink.
func NewProcessor(cfg ProcessorConfig, client *Client, repo *database.VideoRepository,
	sink, detailSink *discord.Client, query filter.Query, dates filter.DateFilter,
	logger *slog.Logger) *Processor {

	if cfg.MaxResults == 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.InitMaxResults == 0 {
		cfg.InitMaxResults = defaultInitMaxResults
	}
	if cfg.PostPause == 0 {
		cfg.PostPause = 2 * time.Second
	}
	if cfg.DetailPause == 0 {
		cfg.DetailPause = time.Second
	}
	if detailSink == nil {
		detailSink = sink
	}
	return &Processor{
		cfg:        cfg,
		client:     client,
		repo:       repo,
		sink:       sink,
		detailSink: detailSink,
		query:      query,
		dates:      dates,
		logger:     logger,
	}
}

// Run executes one video run. Delivery and storage failures end the run
// so the next invocation retries the same videos.
func (p *Processor) Run(ctx context.Context) error {
	candidates, playlist, err := p.listCandidates(ctx)
	if err != nil {
		return err
	}
	p.logger.Info("listed candidate videos", "mode", p.cfg.Mode, "count", len(candidates))

	if p.cfg.Initialize {
		if err := p.repo.Reset(); err != nil {
			return err
		}
		p.logger.Info("store reset, processing all videos")
	}

	videos, err := p.collectNew(ctx, candidates)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		p.logger.Info("no new videos to process")
		return nil
	}

	// Oldest first; channel and search runs deliver newest first instead.
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].PublishedAt.Before(videos[j].PublishedAt)
	})
	if p.cfg.Mode == ModeChannels || p.cfg.Mode == ModeSearch {
		for i, j := 0, len(videos)-1; i < j; i, j = i+1, j-1 {
			videos[i], videos[j] = videos[j], videos[i]
		}
	}

	msgCtx := MessageContext{
		Mode:          p.cfg.Mode,
		Locale:        p.cfg.Locale,
		SearchKeyword: p.cfg.SearchKeyword,
		Playlist:      playlist,
	}
	for _, v := range videos {
		if err := p.deliver(ctx, v, msgCtx); err != nil {
			return err
		}
	}

	p.logger.Info("video run complete", "delivered", len(videos))
	return nil
}

// listCandidates lists video candidates for the configured mode, plus
// playlist metadata when running against a playlist.
func (p *Processor) listCandidates(ctx context.Context) ([]Candidate, *PlaylistInfo, error) {
	max := p.cfg.MaxResults
	if p.cfg.Initialize {
		max = p.cfg.InitMaxResults
	}

	switch p.cfg.Mode {
	case ModeChannels:
		candidates, err := p.client.ChannelVideos(ctx, p.cfg.ChannelID, max)
		return candidates, nil, err
	case ModePlaylists:
		playlist, err := p.client.PlaylistDetails(ctx, p.cfg.PlaylistID)
		if err != nil {
			p.logger.Error("failed to look up playlist details", "error", err)
			playlist = nil
		}
		candidates, err := p.client.PlaylistVideos(ctx, p.cfg.PlaylistID, p.cfg.PlaylistSort, max)
		return candidates, playlist, err
	case ModeSearch:
		candidates, err := p.client.SearchVideos(ctx, p.cfg.SearchKeyword, max)
		return candidates, nil, err
	}
	return nil, nil, fmt.Errorf("unknown mode: %s", p.cfg.Mode)
}

// collectNew resolves details for the candidates and keeps the ones
// that are unseen and pass the date and keyword filters.
func (p *Processor) collectNew(ctx context.Context, candidates []Candidate) ([]Video, error) {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.VideoID
	}
	details, err := p.client.VideoDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	var videos []Video
	for _, c := range candidates {
		detail, ok := details[c.VideoID]
		if !ok {
			p.logger.Warn("no details returned for video", "video_id", c.VideoID)
			continue
		}

		if !p.cfg.Initialize {
			exists, err := p.repo.Exists(c.VideoID)
			if err != nil {
				return nil, err
			}
			if exists {
				continue
			}
		}

		publishedAt, err := time.Parse(time.RFC3339, detail.Snippet.PublishedAt)
		if err != nil {
			p.logger.Warn("skipping video with unparseable date", "video_id", c.VideoID)
			continue
		}
		if !p.cfg.Initialize && !p.dates.MatchAny(publishedAt) {
			p.logger.Debug("video outside date filter", "title", detail.Snippet.Title)
			continue
		}
		if !p.query.Match(detail.Snippet.Title) {
			p.logger.Info("video excluded by keyword filter", "title", detail.Snippet.Title)
			continue
		}

		categoryName := p.client.CategoryName(ctx, detail.Snippet.CategoryId)
		v, err := BuildVideo(c.VideoID, detail, categoryName, p.cfg.Locale)
		if err != nil {
			p.logger.Warn("skipping malformed video", "video_id", c.VideoID, "error", err)
			continue
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// deliver posts the plain message, then the detail embed when enabled,
// and records the video. Embed failures are logged but do not end the
// run since the plain message already went out.
func (p *Processor) deliver(ctx context.Context, v Video, msgCtx MessageContext) error {
	if err := p.sink.Post(ctx, PlainMessage(v, msgCtx)); err != nil {
		return err
	}
	p.pause(ctx, p.cfg.PostPause)

	if p.cfg.DetailView {
		p.pause(ctx, p.cfg.DetailPause)
		embed := DetailEmbed(v, p.client.ChannelThumbnail(ctx, v.ChannelID), p.cfg.Locale)
		if err := p.detailSink.PostEmbed(ctx, "", embed); err != nil {
			p.logger.Error("failed to post detail embed", "title", v.Title, "error", err)
		} else {
			p.pause(ctx, p.cfg.PostPause)
		}
	}

	if err := p.repo.Store(toRecord(v)); err != nil {
		return err
	}
	p.logger.Info("video delivered", "title", v.Title)
	return nil
}

func toRecord(v Video) database.Video {
	publishedAt := v.PublishedAt
	record := database.Video{
		VideoID:      v.VideoID,
		Title:        v.Title,
		URL:          v.URL,
		ChannelID:    v.ChannelID,
		ChannelTitle: v.ChannelTitle,
		Description:  v.Description,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		CategoryName: v.CategoryName,
		Tags:         v.Tags,
		PublishedAt:  &publishedAt,
	}
	if t, err := time.Parse(time.RFC3339, v.ScheduledStartAt); err == nil {
		record.ScheduledStartAt = &t
	}
	return record
}

func (p *Processor) pause(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
