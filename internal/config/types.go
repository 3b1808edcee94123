package config

// Config holds all configuration for the application.
type Config struct {
	Port       string `envconfig:"PORT" default:"8080"`
	DBName     string `envconfig:"DB_NAME" default:"court-leaderboard.db"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string `envconfig:"LOG_FORMAT" default:"json"`
	Turso      TursoConfig
	Assets     AssetsConfig
	Slack      SlackConfig
	ProjectID  string `envconfig:"GCP_PROJECT"`
	MatchTopic string `envconfig:"PUBSUB_MATCH_TOPIC" default:"match-recorded"`
}

type TursoConfig struct {
	PrimaryURL string `envconfig:"TURSO_PRIMARY_URL"`
	AuthToken  string `envconfig:"TURSO_AUTH_TOKEN"`
}

// AssetsConfig selects the avatar object store. An empty Bucket falls back to
// the local directory store rooted at Dir.
type AssetsConfig struct {
	Bucket          string `envconfig:"ASSETS_BUCKET"`
	Endpoint        string `envconfig:"ASSETS_ENDPOINT"`
	Region          string `envconfig:"ASSETS_REGION" default:"auto"`
	AccessKeyID     string `envconfig:"ASSETS_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"ASSETS_SECRET_ACCESS_KEY"`
	Dir             string `envconfig:"ASSETS_DIR" default:"./data/assets"`
}

type SlackConfig struct {
	Token         string `envconfig:"SLACK_BOT_TOKEN"`
	ChannelID     string `envconfig:"SLACK_CHANNEL_ID"`
	SigningSecret string `envconfig:"SLACK_SIGNING_SECRET"`
}
