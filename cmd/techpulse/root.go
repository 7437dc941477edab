package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/biglone/techpulse/internal/config"
	"github.com/biglone/techpulse/internal/enrich"
	"github.com/biglone/techpulse/internal/fetch"
	"github.com/biglone/techpulse/internal/ingest"
	"github.com/biglone/techpulse/internal/logging"
	"github.com/biglone/techpulse/internal/sources"
	"github.com/biglone/techpulse/internal/store"
)

var (
	flagConfig   string
	flagDB       string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "techpulse",
	Short: "TechPulse tech news aggregator",
	Long: `TechPulse collects tech news from RSS feeds, Hacker News, Reddit,
X, and YouTube, then dedupes, tags, and scores the results into a local
SQLite database.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default ~/.techpulse/config.json)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to SQLite database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// app bundles the wired-up services the commands share.
type app struct {
	cfg   *config.Config
	store *store.Store
	ing   *ingest.Ingester
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

// setup loads configuration, initialises logging, opens the store, and
// wires the ingestion pipeline.
func setup() (*app, error) {
	path := flagConfig
	if path == "" {
		path = config.ConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	logging.Init(cfg.LogLevel)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	client := fetch.NewClient(time.Duration(cfg.FetchTimeoutSeconds)*time.Second, cfg.Proxy)
	registry := sources.NewRegistry(client, cfg.Credentials)
	enricher := enrich.NewOpenAI(cfg.AI)

	return &app{
		cfg:   cfg,
		store: st,
		ing:   ingest.New(st, registry, enricher),
	}, nil
}
