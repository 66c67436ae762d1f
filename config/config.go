package config

import "time"

type Config struct {
	DatabaseURI string        `envconfig:"DATABASE_URI" required:"true"`
	ServerPort  string        `envconfig:"AUTH_SERVICE_SERVER_PORT" default:"3000"`
	WebAppURL   string        `envconfig:"WEB_APP_URL" required:"true"`
	SentryDSN   string        `envconfig:"SENTRY_DSN"`
	AuthSecret  string        `envconfig:"AUTH_SECRET" required:"true"`
	SessionTTL  time.Duration `envconfig:"SESSION_EXPIRES" default:"720h"`
	JWTTTL      time.Duration `envconfig:"JWT_EXPIRES" default:"15m"`
	GitHub      GitHub        `envconfig:"GITHUB"`
	Mailgun     Mailgun       `envconfig:"MAILGUN"`
	SMTP        SMTP          `envconfig:"SMTP"`
}

type GitHub struct {
	ClientID     string `envconfig:"CLIENT_ID"`
	ClientSecret string `envconfig:"CLIENT_SECRET"`
	RedirectURL  string `envconfig:"REDIRECT_URL"`
}

type Mailgun struct {
	APIKey string `envconfig:"API_KEY"`
	Domain string `envconfig:"DOMAIN"`
}

type SMTP struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port string `envconfig:"PORT" default:"1025"`
	User string `envconfig:"USER"`
	Pass string `envconfig:"PASS"`
}
