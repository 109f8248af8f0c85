package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DefaultCooldown      = 7 * 24 * time.Hour
	DefaultScorerTimeout = 20 * time.Second
	DefaultUserCacheTTL  = 10 * time.Minute
)

type Config struct {
	AppEnv   string
	LogLevel string
	Server   Server
	Database Database
	Scorer   Scorer
	Attempt  Attempt
	Redis    Redis
}

type Server struct {
	Port string
}

type Database struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string `json:"-"`
	Name     string
	Path     string // sqlite file
}

type Scorer struct {
	Provider      string // "mock", "gemini" or "openai"
	Timeout       time.Duration
	GeminiApiKey  string `json:"-"`
	GeminiModel   string
	OpenAIApiKey  string `json:"-"`
	OpenAIBaseURL string
	OpenAIModel   string
	MockSeed      int64
}

type Attempt struct {
	Cooldown            time.Duration
	EligibilityFailOpen bool
}

type Redis struct {
	Addr     string
	Password string `json:"-"`
	DB       int
	CacheTTL time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_PATH", "softskills.db")
	viper.SetDefault("SCORER_PROVIDER", "mock")
	viper.SetDefault("SCORER_TIMEOUT", DefaultScorerTimeout)
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("ATTEMPT_COOLDOWN", DefaultCooldown)
	viper.SetDefault("ELIGIBILITY_FAIL_OPEN", true)
	viper.SetDefault("USER_CACHE_TTL", DefaultUserCacheTTL)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.AppEnv = viper.GetString("APP_ENV")
	config.LogLevel = viper.GetString("LOG_LEVEL")

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Driver = viper.GetString("DATABASE_DRIVER")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.Path = viper.GetString("DATABASE_PATH")

	config.Scorer.Provider = viper.GetString("SCORER_PROVIDER")
	config.Scorer.Timeout = viper.GetDuration("SCORER_TIMEOUT")
	config.Scorer.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.Scorer.GeminiModel = viper.GetString("GEMINI_MODEL")
	config.Scorer.OpenAIApiKey = viper.GetString("OPENAI_API_KEY")
	config.Scorer.OpenAIBaseURL = viper.GetString("OPENAI_BASE_URL")
	config.Scorer.OpenAIModel = viper.GetString("OPENAI_MODEL")
	config.Scorer.MockSeed = viper.GetInt64("MOCK_SCORER_SEED")

	config.Attempt.Cooldown = viper.GetDuration("ATTEMPT_COOLDOWN")
	config.Attempt.EligibilityFailOpen = viper.GetBool("ELIGIBILITY_FAIL_OPEN")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")
	config.Redis.CacheTTL = viper.GetDuration("USER_CACHE_TTL")

	if config.Attempt.Cooldown <= 0 {
		log.Warn().Dur("cooldown", config.Attempt.Cooldown).Msg("ATTEMPT_COOLDOWN must be positive, using default")
		config.Attempt.Cooldown = DefaultCooldown
	}
	if config.Scorer.Timeout <= 0 {
		config.Scorer.Timeout = DefaultScorerTimeout
	}

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}
