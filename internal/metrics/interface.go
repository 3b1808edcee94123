package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesRecorded()
	AddPointsAwarded(points int)
	IncPlayersCreated()
	IncAvatarUploads()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
	ObserveHTTPRequest(method, route string, status int, duration float64)
}
