package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leaderboard_matches_recorded_total",
			Help: "The total number of matches recorded.",
		}),
		PointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leaderboard_points_awarded_total",
			Help: "The total number of points awarded to match winners.",
		}),
		PlayersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leaderboard_players_created_total",
			Help: "The total number of players created.",
		}),
		AvatarUploads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leaderboard_avatar_uploads_total",
			Help: "The total number of avatar images stored.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leaderboard_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leaderboard_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "leaderboard_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_http_requests_total",
			Help: "The total number of HTTP requests served.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leaderboard_http_request_duration_seconds",
			Help:    "The duration of HTTP requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		s.MatchesRecorded,
		s.PointsAwarded,
		s.PlayersCreated,
		s.AvatarUploads,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
		s.HTTPRequests,
		s.HTTPDuration,
	)

	return s
}

func (s *Service) IncMatchesRecorded() {
	s.MatchesRecorded.Inc()
}

func (s *Service) AddPointsAwarded(points int) {
	if points > 0 {
		s.PointsAwarded.Add(float64(points))
	}
}

func (s *Service) IncPlayersCreated() {
	s.PlayersCreated.Inc()
}

func (s *Service) IncAvatarUploads() {
	s.AvatarUploads.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}

func (s *Service) ObserveHTTPRequest(method, route string, status int, duration float64) {
	s.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	s.HTTPDuration.WithLabelValues(method, route).Observe(duration)
}
