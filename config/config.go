package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the full environment configuration. godotenv fills the
// process environment from .env first; envconfig then builds the struct.
type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	RedisAddr   string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	JWTSecret   string `envconfig:"JWT_SECRET" default:"solid_secret_key"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8000"`

	SMTPHost  string `envconfig:"SMTP_HOST"`
	SMTPPort  int    `envconfig:"SMTP_PORT" default:"587"`
	EmailUser string `envconfig:"EMAIL_USER"`
	EmailPass string `envconfig:"EMAIL_PASS"`
}

// MailConfigured reports whether SMTP delivery can be used.
func (c Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.EmailUser != ""
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
