package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/court-leaderboard/internal/assets"
	"github.com/mauv0809/court-leaderboard/internal/config"
	"github.com/mauv0809/court-leaderboard/internal/http/handlers"
	"github.com/mauv0809/court-leaderboard/internal/metrics"
	"github.com/mauv0809/court-leaderboard/internal/notifier"
	"github.com/mauv0809/court-leaderboard/internal/pubsub"
	"github.com/mauv0809/court-leaderboard/internal/ranking"
)

func NewServer(service *ranking.Service, assetStore assets.Store, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Service:        service,
		Assets:         assetStore,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		PubSub:         pubsub,
		Router:         chi.NewRouter(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	r := s.Router
	// CORS runs first so that every response, errors included, carries the headers.
	r.Use(corsMiddleware, s.metricsMiddleware, recoverMiddleware, paramsMiddleware)
	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(notFoundHandler)

	r.Handle("/metrics", s.MetricsHandler)
	r.Get("/health", handlers.HealthCheckHandler())

	r.Get("/players", handlers.ListPlayersHandler(s.Service))
	r.Post("/players", handlers.CreatePlayerHandler(s.Service))
	r.Get("/players/{id}", handlers.GetPlayerHandler(s.Service))
	r.Put("/players/{id}", handlers.UpdatePlayerHandler(s.Service))

	r.Get("/courts", handlers.ListCourtsHandler(s.Service))
	r.Get("/matches", handlers.ListMatchesHandler(s.Service))
	r.Post("/matches", handlers.RecordMatchHandler(s.Service))
	r.Get("/events", handlers.ListEventsHandler(s.Service))
	r.Post("/events", handlers.CreateEventHandler(s.Service))
	r.Get("/leaderboard", handlers.LeaderboardHandler(s.Service))
	r.Get("/assets/*", handlers.AssetHandler(s.Assets))

	if s.Notifier != nil {
		r.Group(func(r chi.Router) {
			r.Use(handlers.VerifySlackSignature(s.Cfg.Slack.SigningSecret))
			r.Post("/slack/command/leaderboard", handlers.LeaderboardCommandHandler(s.Service, s.Notifier))
			r.Post("/slack/command/player", handlers.PlayerCommandHandler(s.Service, s.Notifier))
		})
		if s.PubSub != nil {
			r.Post("/pubsub/match-recorded", handlers.MatchRecordedHandler(s.Notifier, s.PubSub))
		}
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not Found", http.StatusNotFound)
}
