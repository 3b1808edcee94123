package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/court-leaderboard/internal/assets"
	"github.com/mauv0809/court-leaderboard/internal/config"
	"github.com/mauv0809/court-leaderboard/internal/metrics"
	"github.com/mauv0809/court-leaderboard/internal/notifier"
	"github.com/mauv0809/court-leaderboard/internal/pubsub"
	"github.com/mauv0809/court-leaderboard/internal/ranking"
)

type Server struct {
	Service        *ranking.Service
	Assets         assets.Store
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	PubSub         pubsub.PubSubClient
	Router         chi.Router
}
