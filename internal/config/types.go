package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	Slack         SlackConfig
	Xendit        XenditConfig
	ProjectID     string
	CORS          CORSConfig
	AdminToken    string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
type XenditConfig struct {
	SecretKey    string
	WebhookToken string
}
type CORSConfig struct {
	AllowedOrigins []string
}
