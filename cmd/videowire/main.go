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
	"github.com/jkwoo/feedwire/app/video"
)

func main() {
	config, err := cfg.LoadVideo(os.Args[1:])
	if err != nil {
		if errors.Is(err, cfg.ErrHelp) {
			return
		}
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(config.Debug)
	logger.Info("starting video run", "version", config.Version,
		"mode", config.Mode, "initialize", config.Initialize,
		"detailview", config.DetailView)

	if err := run(config, logger); err != nil {
		var apiErr *video.APIError
		var storeErr *database.StoreError
		var whErr *discord.WebhookError
		switch {
		case errors.As(err, &apiErr):
			logger.Error("YouTube API error", "error", apiErr)
		case errors.As(err, &storeErr):
			logger.Error("database error", "error", storeErr)
		case errors.As(err, &whErr):
			logger.Error("webhook error", "error", whErr)
		default:
			logger.Error("video run failed", "error", err)
		}
		os.Exit(1)
	}
	logger.Info("video run finished")
}

func run(config *cfg.VideoCfg, logger *slog.Logger) error {
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := video.NewClient(ctx, config.APIKey)
	if err != nil {
		return err
	}

	identity := discord.WithIdentity(config.Username, config.AvatarURL)
	sink := discord.NewClient(config.WebhookURL, identity)
	var detailSink *discord.Client
	if config.DetailWebhookURL != "" {
		detailSink = discord.NewClient(config.DetailWebhookURL, identity)
	}

	locale := video.LocaleEnglish
	if config.Language == "Korean" {
		locale = video.LocaleKorean
	}

	processor := video.NewProcessor(
		video.ProcessorConfig{
			Mode:           config.Mode,
			ChannelID:      config.ChannelID,
			PlaylistID:     config.PlaylistID,
			PlaylistSort:   config.PlaylistSort,
			SearchKeyword:  config.SearchKeyword,
			MaxResults:     config.MaxResults,
			InitMaxResults: config.InitMaxResults,
			Initialize:     config.Initialize,
			Locale:         locale,
			DetailView:     config.DetailView,
		},
		client,
		database.NewVideoRepository(db),
		sink,
		detailSink,
		filter.ParseQuery(config.AdvancedFilter),
		filter.ParseDateFilter(config.DateFilter, time.Now().UTC()),
		logger,
	)

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
