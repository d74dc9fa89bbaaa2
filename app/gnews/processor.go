package gnews

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jkwoo/feedwire/app/database"
	"github.com/jkwoo/feedwire/app/discord"
	"github.com/jkwoo/feedwire/app/filter"
	"github.com/jkwoo/feedwire/app/format"
)

// ProcessorConfig controls a single news run.
type ProcessorConfig struct {
	TopicMode    bool
	TopicKeyword string
	TopicParams  string
	FeedURL      string // used when TopicMode is false
	Initialize   bool
	PostPause    time.Duration
}

// Processor drives one end-to-end news run: fetch the feed, drop items
// already delivered, filter, resolve links, format, and post each
// surviving item to the webhook before recording it.
type Processor struct {
	cfg      ProcessorConfig
	fetcher  *FeedFetcher
	resolver URLResolver
	repo     *database.NewsRepository
	sink     *discord.Client
	query    filter.Query
	dates    filter.DateFilter
	logger   *slog.Logger
}

func NewProcessor(cfg ProcessorConfig, fetcher *FeedFetcher, resolver URLResolver,
	repo *database.NewsRepository, sink *discord.Client,
	query filter.Query, dates filter.DateFilter, logger *slog.Logger) *Processor {

	if cfg.PostPause == 0 {
		cfg.PostPause = 3 * time.Second
	}
	return &Processor{
		cfg:      cfg,
		fetcher:  fetcher,
		resolver: resolver,
		repo:     repo,
		sink:     sink,
		query:    query,
		dates:    dates,
		logger:   logger,
	}
}

// Run executes one news run. Failures on individual items are logged
// and skipped; only feed-level failures end the run.
func (p *Processor) Run(ctx context.Context) error {
	feedURL, topicName, keyword, lang, err := p.resolveFeed()
	if err != nil {
		return err
	}
	p.logger.Info("fetching news feed", "url", feedURL)

	feed, err := p.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return err
	}
	p.logger.Info("fetched news feed", "items", len(feed.Items))

	if p.cfg.Initialize {
		if err := p.repo.Reset(); err != nil {
			return err
		}
		p.logger.Info("store reset, processing all items")
	}

	pending, err := p.pendingItems(feed.Items)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		p.logger.Info("no new items to process")
		return nil
	}
	p.logger.Info("processing new items", "count", len(pending))

	// Oldest first so messages arrive in publication order.
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].PublishedParsed.Before(*pending[j].PublishedParsed)
	})

	countryCode := CountryFromParams(p.cfg.TopicParams)
	emoji := CountryEmoji(countryCode)
	prefix := NewsPrefix(lang)
	category := GeneralCategory(lang)
	if p.cfg.TopicMode {
		category = TopicCategory(keyword, lang)
	}

	processed := 0
	for _, raw := range pending {
		if err := p.processItem(ctx, raw, prefix, category, topicName, emoji, countryCode, keyword); err != nil {
			p.logger.Error("failed to process item", "title", raw.Title, "error", err)
			continue
		}
		processed++
	}

	p.logger.Info("news run complete", "processed", processed)
	return nil
}

// resolveFeed determines the feed URL and presentation labels for the
// configured mode.
func (p *Processor) resolveFeed() (feedURL, topicName, keyword, lang string, err error) {
	if p.cfg.TopicMode {
		lang = LanguageFromParams(p.cfg.TopicParams)
		info, ok := Topic(p.cfg.TopicKeyword, lang)
		if !ok {
			return "", "", "", "", fmt.Errorf("unknown topic keyword: %s", p.cfg.TopicKeyword)
		}
		return TopicURL(info.ID, p.cfg.TopicParams), info.Name, p.cfg.TopicKeyword, lang, nil
	}

	if p.cfg.FeedURL == "" {
		return "", "", "", "", fmt.Errorf("feed URL is required when topic mode is off")
	}
	lang = "en"
	keyword = "general"
	if name, kw, ok := TopicByID(p.cfg.FeedURL); ok {
		topicName = name
		keyword = kw
	}
	return p.cfg.FeedURL, topicName, keyword, lang, nil
}

// pendingItems drops items that were already delivered (unless the run
// is initializing) and items without a usable GUID or date.
func (p *Processor) pendingItems(items []*gofeed.Item) ([]*gofeed.Item, error) {
	var pending []*gofeed.Item
	for _, item := range items {
		if item.GUID == "" || item.PublishedParsed == nil {
			p.logger.Warn("skipping item without GUID or date", "title", item.Title)
			continue
		}
		if !p.cfg.Initialize {
			exists, err := p.repo.Exists(item.GUID)
			if err != nil {
				return nil, err
			}
			if exists {
				continue
			}
		}
		pending = append(pending, item)
	}
	return pending, nil
}

func (p *Processor) processItem(ctx context.Context, raw *gofeed.Item,
	prefix, category, topicName, emoji, countryCode, keyword string) error {

	pubDate := *raw.PublishedParsed
	if !p.dates.MatchAll(pubDate) {
		p.logger.Debug("item outside date filter", "title", raw.Title)
		return nil
	}

	title := format.EscapeBrackets(raw.Title)
	link := p.resolver.OriginalURL(ctx, raw.Link)

	desc, err := ParseDescription(ctx, raw.Description, p.resolver)
	if err != nil {
		return fmt.Errorf("failed to parse description: %w", err)
	}

	if !p.query.Match(title, desc.Rendered) {
		p.logger.Info("item excluded by keyword filter", "title", title)
		return nil
	}

	item := Item{
		GUID:        raw.GUID,
		Title:       title,
		Link:        link,
		Description: desc.Rendered,
		PublishedAt: pubDate,
	}
	message := FormatMessage(item, prefix, category, topicName, emoji, countryCode)

	if err := p.sink.Post(ctx, message); err != nil {
		return err
	}
	p.pause(ctx)

	record := database.NewsItem{
		GUID:         item.GUID,
		Title:        item.Title,
		Link:         item.Link,
		Topic:        keyword,
		PublishedAt:  &item.PublishedAt,
		RelatedItems: desc.RelatedItems,
	}
	if err := p.repo.Store(record); err != nil {
		return err
	}

	p.logger.Info("item delivered", "title", title)
	return nil
}

// pause waits between posts so the webhook is not flooded.
func (p *Processor) pause(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(p.cfg.PostPause):
	}
}
