package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jkwoo/feedwire/app/cfg"
	"github.com/jkwoo/feedwire/app/database"
	"github.com/jkwoo/feedwire/app/discord"
	"github.com/jkwoo/feedwire/app/filter"
	"github.com/jkwoo/feedwire/app/gnews"
)

func main() {
	config, err := cfg.LoadNews(os.Args[1:])
	if err != nil {
		if errors.Is(err, cfg.ErrHelp) {
			return
		}
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(config.Debug)
	logger.Info("starting news run", "version", config.Version,
		"topic_mode", config.TopicMode, "initialize", config.Initialize,
		"origin_link", config.OriginLink)

	if err := run(config, logger); err != nil {
		logger.Error("news run failed", "error", err)
		os.Exit(1)
	}
	logger.Info("news run finished")
}

func run(config *cfg.NewsCfg, logger *slog.Logger) error {
	version, dirty, err := database.RunMigrations(config.DBPath)
	if err != nil {
		return err
	}
	logger.Info("database ready", "schema_version", version, "dirty", dirty)

	db, err := database.Open(config.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	sink := discord.NewClient(config.WebhookURL,
		discord.WithIdentity(config.Username, config.AvatarURL))

	decoder := gnews.NewDecoder(gnews.NewBatchExecuteResolver())
	resolver := gnews.NewLinkResolver(decoder, logger)
	fetcher := gnews.NewFeedFetcher()

	processor := gnews.NewProcessor(
		gnews.ProcessorConfig{
			TopicMode:    config.TopicMode,
			TopicKeyword: config.TopicKeyword,
			TopicParams:  config.TopicParams,
			FeedURL:      config.FeedURL,
			Initialize:   config.Initialize,
		},
		fetcher,
		resolver,
		database.NewNewsRepository(db),
		sink,
		filter.ParseQuery(config.AdvancedFilter),
		filter.ParseDateFilter(config.DateFilter, time.Now().UTC()),
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return processor.Run(ctx)
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
