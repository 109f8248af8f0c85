package logger

import (
	"os"
	"strings"
	"time"

	"github.com/lshigami/softskills/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets up the global zerolog logger from the process environment so that
// config loading itself is logged. FromConfig replaces it once .env is read.
func Init() {
	Configure(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
}

// FromConfig applies APP_ENV and LOG_LEVEL as resolved by viper.
func FromConfig(cfg *config.Config) {
	Configure(cfg.AppEnv, cfg.LogLevel)
	log.Debug().Str("env", cfg.AppEnv).Str("level", zerolog.GlobalLevel().String()).Msg("Logger configured")
}

// Configure gives development a console writer and everything else JSON on stdout.
func Configure(env, level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	switch strings.ToLower(env) {
	case "prod", "production":
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	default:
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
