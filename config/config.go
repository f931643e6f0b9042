package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Redis    Redis
	Feedback Feedback
	Session  Session
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

type Redis struct {
	// URL is a standard redis connection URL. Empty disables the catalog cache.
	URL string
	// CatalogTTLSeconds bounds how long test summaries/details stay cached.
	CatalogTTLSeconds int
}

type Feedback struct {
	// DelayMs simulates evaluator latency; stands in for a future network call.
	DelayMs int
}

type Session struct {
	// EnforceTimingDefault applies when a start request omits enforce_timing.
	EnforceTimingDefault bool
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REDIS_CATALOG_TTL_SECONDS", 300)
	viper.SetDefault("FEEDBACK_DELAY_MS", 1500)

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Redis.URL = viper.GetString("REDIS_URL")
	config.Redis.CatalogTTLSeconds = viper.GetInt("REDIS_CATALOG_TTL_SECONDS")
	config.Feedback.DelayMs = viper.GetInt("FEEDBACK_DELAY_MS")
	config.Session.EnforceTimingDefault = viper.GetBool("SESSION_ENFORCE_TIMING")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
