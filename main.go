package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-leaderboard/internal/assets"
	"github.com/mauv0809/court-leaderboard/internal/club"
	"github.com/mauv0809/court-leaderboard/internal/config"
	"github.com/mauv0809/court-leaderboard/internal/database"
	server "github.com/mauv0809/court-leaderboard/internal/http"
	"github.com/mauv0809/court-leaderboard/internal/metrics"
	"github.com/mauv0809/court-leaderboard/internal/notifier"
	"github.com/mauv0809/court-leaderboard/internal/notifier/slack"
	"github.com/mauv0809/court-leaderboard/internal/pubsub"
	"github.com/mauv0809/court-leaderboard/internal/ranking"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %s", err)
	}
	config.ConfigureLogger(cfg)

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	log.Info("Database initialization time recorded", "duration_ms", time.Since(startTime).Milliseconds())
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	ctx := context.Background()
	assetStore, err := newAssetStore(ctx, cfg.Assets)
	if err != nil {
		log.Fatalf("Failed to initialize asset store: %s", err)
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var opts []ranking.Option
	var pubsubClient pubsub.PubSubClient
	if cfg.ProjectID != "" {
		pubsubClient, err = pubsub.New(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer pubsubClient.Close()
		opts = append(opts, ranking.WithPublisher(pubsubClient, cfg.MatchTopic))
	} else {
		log.Warn("GCP_PROJECT not set, match events will not be published")
	}

	var slackNotifier notifier.Notifier
	if cfg.Slack.Enabled() {
		slackNotifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("Slack not configured, slash commands are disabled")
	}
	if !cfg.NotificationsEnabled() {
		log.Warn("Match announcements are disabled, they need GCP_PROJECT, SLACK_BOT_TOKEN and SLACK_CHANNEL_ID")
	}

	service := ranking.New(club.New(db), assetStore, metricsSvc, opts...)
	s := server.NewServer(service, assetStore, metricsSvc, metricsHandler, cfg, slackNotifier, pubsubClient)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}

// newAssetStore returns the S3 store when a bucket is configured and the
// local directory store otherwise.
func newAssetStore(ctx context.Context, cfg config.AssetsConfig) (assets.Store, error) {
	if cfg.Bucket != "" {
		log.Info("Using S3 asset store", "bucket", cfg.Bucket, "endpoint", cfg.Endpoint)
		return assets.NewS3Store(ctx, cfg)
	}
	log.Info("Using local asset store", "dir", cfg.Dir)
	return assets.NewDirStore(cfg.Dir)
}
