package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server    Server
	Database  Database
	Auth      Auth
	Gemini    Gemini
	RateLimit RateLimit
	Janitor   Janitor
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type Gemini struct {
	APIKey string
	Model  string
}

type RateLimit struct {
	// Requests per minute allowed per user on the AI-backed routes.
	PerMinute int
	Burst     int
}

type Janitor struct {
	Enabled  bool
	Schedule string
	// Sessions with no activity for this long are marked paused.
	IdleTimeout time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("TOKEN_TTL_HOURS", 24)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 3)
	viper.SetDefault("JANITOR_ENABLED", true)
	viper.SetDefault("JANITOR_SCHEDULE", "@hourly")
	viper.SetDefault("JANITOR_IDLE_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.TokenTTL = time.Duration(viper.GetInt("TOKEN_TTL_HOURS")) * time.Hour

	config.Gemini.APIKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.Model = viper.GetString("GEMINI_MODEL")

	config.RateLimit.PerMinute = viper.GetInt("RATE_LIMIT_PER_MINUTE")
	config.RateLimit.Burst = viper.GetInt("RATE_LIMIT_BURST")

	config.Janitor.Enabled = viper.GetBool("JANITOR_ENABLED")
	config.Janitor.Schedule = viper.GetString("JANITOR_SCHEDULE")
	config.Janitor.IdleTimeout = time.Duration(viper.GetInt("JANITOR_IDLE_HOURS")) * time.Hour

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
