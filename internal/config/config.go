package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSessionSecret is only meant for local development
const DefaultSessionSecret = "dev-session-secret-change-me"

// BuildID identifies the deployed survey build
const BuildID = "v2025-10-17-03"

// WebhookTimeout bounds the single webhook POST per submission
const WebhookTimeout = 6 * time.Second

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env         string `mapstructure:"env"`
	Port        string `mapstructure:"port"`
	LogoURL     string `mapstructure:"logo_url"`
	SenderName  string `mapstructure:"sender_name"`
	Footer      string `mapstructure:"footer"`
	CatalogPath string `mapstructure:"catalog_path"` // YAML catalog, empty = built-in questions
	SecretsPath string `mapstructure:"secrets_path"` // TOML file consulted for the webhook URL

	Store   Store   `mapstructure:"store"`
	Session Session `mapstructure:"session"`
	CORS    CORS    `mapstructure:"cors"`
}

// Store selects the local submission sink
type Store struct {
	Kind     string `mapstructure:"kind"` // csv or mongo
	CSVPath  string `mapstructure:"csv_path"`
	MongoURI string `mapstructure:"mongo_uri"`
	MongoDB  string `mapstructure:"mongo_db"`
}

// Session configures where wizard sessions live and how their handles are signed
type Session struct {
	RedisURI string        `mapstructure:"redis_uri"` // empty keeps sessions in memory
	Secret   string        `mapstructure:"secret"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// CORS holds the Access-Control-Allow-* header values
type CORS struct {
	AllowedOrigins string `mapstructure:"allowed_origins"`
	AllowedMethods string `mapstructure:"allowed_methods"`
	AllowedHeaders string `mapstructure:"allowed_headers"`
}

// UsesDefaultSecret reports whether sessions are signed with the development secret
func (c *Config) UsesDefaultSecret() bool {
	return c.Session.Secret == DefaultSessionSecret
}

// Load reads configuration from .env, an optional config file and environment variables.
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("port", "8080")
	v.SetDefault("logo_url", "")
	v.SetDefault("sender_name", "PwC – Konzeptvorstellung / MIS")
	v.SetDefault("footer", "Impressum · Datenschutz · Diese Umfrage dient ausschließlich der Konzeptvorstellung.")
	v.SetDefault("catalog_path", "")
	v.SetDefault("secrets_path", ".streamlit/secrets.toml")
	v.SetDefault("store.kind", "csv")
	v.SetDefault("store.csv_path", "responses.csv")
	v.SetDefault("store.mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("store.mongo_db", "survey")
	v.SetDefault("session.redis_uri", "")
	v.SetDefault("session.secret", DefaultSessionSecret)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("cors.allowed_origins", "*")
	v.SetDefault("cors.allowed_methods", "GET, POST, PUT, DELETE, OPTIONS")
	v.SetDefault("cors.allowed_headers", "Content-Type, Authorization")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("logo_url", "SURVEY_LOGO_URL")
	_ = v.BindEnv("sender_name", "SURVEY_SENDER")
	_ = v.BindEnv("footer", "SURVEY_FOOTER")
	_ = v.BindEnv("catalog_path", "SURVEY_CATALOG_PATH")
	_ = v.BindEnv("secrets_path", "SURVEY_SECRETS_PATH")
	_ = v.BindEnv("store.kind", "SURVEY_STORE")
	_ = v.BindEnv("store.csv_path", "SURVEY_CSV_PATH")
	_ = v.BindEnv("store.mongo_uri", "MONGO_URI")
	_ = v.BindEnv("store.mongo_db", "MONGO_DB")
	_ = v.BindEnv("session.redis_uri", "REDIS_URI")
	_ = v.BindEnv("session.secret", "SESSION_SECRET")
	_ = v.BindEnv("session.ttl", "SESSION_TTL")
	_ = v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")
	_ = v.BindEnv("cors.allowed_methods", "CORS_ALLOWED_METHODS")
	_ = v.BindEnv("cors.allowed_headers", "CORS_ALLOWED_HEADERS")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	switch cfg.Store.Kind {
	case "csv", "mongo":
	default:
		return nil, fmt.Errorf("unknown SURVEY_STORE %q (want csv or mongo)", cfg.Store.Kind)
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.Session.TTL)
	}

	// Remove redis:// prefix if present
	cfg.Session.RedisURI = strings.TrimPrefix(cfg.Session.RedisURI, "redis://")

	return &cfg, nil
}
