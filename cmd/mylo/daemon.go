package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mylo/internal/airtable"
	"mylo/internal/assistant"
	"mylo/internal/bus"
	"mylo/internal/channel"
	"mylo/internal/config"
	"mylo/internal/domain"
	"mylo/internal/earnings"
	"mylo/internal/intent"
	"mylo/internal/notion"
	"mylo/internal/store"
	"mylo/internal/trigger"
)

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger = setupLogger(cfg)

	if !cfg.Channels.Telegram.Enabled {
		return fmt.Errorf("no channel enabled: set channels.telegram.enabled in %s", resolveConfigPath())
	}
	if cfg.Channels.Telegram.Token == "" {
		return fmt.Errorf("telegram token missing: set channels.telegram.token or MYLO_TELEGRAM_TOKEN")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messageBus := bus.New(100, logger)
	defer messageBus.Close()

	classifier := intent.New()
	if dir := cfg.Intent.RulesDir; dir != "" {
		packs, err := intent.LoadRulePacks(config.ExpandPath(dir), logger)
		if err != nil {
			return fmt.Errorf("load rule packs: %w", err)
		}
		for _, pack := range packs {
			if err := classifier.AddPack(pack); err != nil {
				logger.Warn("skipping rule pack", "pack", pack.Name, "err", err)
			}
		}
	}

	searcher := notion.NewClient(notion.ClientConfig{
		Token:      cfg.Notion.Token,
		APIBase:    cfg.Notion.APIBase,
		APIVersion: cfg.Notion.APIVersion,
		PageSize:   cfg.Notion.PageSize,
		Logger:     logger,
	})

	ledger := airtable.NewClient(airtable.ClientConfig{
		Token:   cfg.Airtable.Token,
		BaseID:  cfg.Airtable.BaseID,
		APIBase: cfg.Airtable.APIBase,
		Logger:  logger,
	})

	engine := earnings.NewEngine(earnings.EngineConfig{
		Source:     ledger,
		Table:      cfg.Airtable.Table,
		MaxRecords: cfg.Airtable.MaxRecords,
		Fields:     cfg.Airtable.Fields,
		Logger:     logger,
	})

	asst := assistant.New(assistant.Config{
		Trigger:          trigger.New(cfg.General.TriggerPhrase),
		Classifier:       classifier,
		Searcher:         searcher,
		Earnings:         engine,
		MaxMessageLength: cfg.General.MaxMessageLength,
		Logger:           logger,
	})

	var stats assistant.Recorder
	if cfg.Stats.Enabled {
		st, err := store.Open(cfg.Stats.DBPath, logger)
		if err != nil {
			return fmt.Errorf("open stats store: %w", err)
		}
		defer st.Close()
		stats = st
	}

	loop := assistant.NewLoop(assistant.LoopConfig{
		Assistant:   asst,
		Bus:         messageBus,
		Stats:       stats,
		Concurrency: cfg.General.MaxConcurrentMessages,
		Logger:      logger,
	})

	channels := []domain.Channel{
		channel.NewTelegram(channel.TelegramConfig{
			Token:         cfg.Channels.Telegram.Token,
			AllowFrom:     cfg.Channels.Telegram.AllowFrom,
			ParseMode:     cfg.Channels.Telegram.ParseMode,
			TriggerPhrase: cfg.General.TriggerPhrase,
			Logger:        logger,
		}),
	}

	for _, ch := range channels {
		go func(ch domain.Channel) {
			if err := ch.Start(ctx, messageBus); err != nil {
				logger.Error("channel failed", "channel", ch.Name(), "err", err)
				cancel()
			}
		}(ch)
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		s := <-sig
		logger.Info("shutting down", "signal", s.String())
		cancel()
	}()

	loop.Run(ctx)
	return nil
}

func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.General.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	out := os.Stderr
	if cfg.General.LogFile != "" {
		f, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			out = f
		}
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}
