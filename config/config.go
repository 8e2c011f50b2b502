package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the immutable process configuration. It is loaded once at startup
// and passed into component constructors; components never read the
// environment themselves.
//
// Both API keys are optional. A missing YOUTUBE_API_KEY disables the Data API
// source and every fetch goes straight to the scraping fallback; a missing
// GROQ_API_KEY disables remote summarization and replies.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"local"`
	Port   int    `env:"PORT" envDefault:"8080"`

	YouTubeAPIKey string `env:"YOUTUBE_API_KEY"`
	GroqAPIKey    string `env:"GROQ_API_KEY"`
	GroqBaseURL   string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	GroqModel     string `env:"GROQ_MODEL" envDefault:"llama-3.1-8b-instant"`

	SentimentModelURL string `env:"SENTIMENT_MODEL_URL,notEmpty"`

	DBPath string `env:"DB_PATH" envDefault:"tubepulse.db"`

	MaxComments    int           `env:"MAX_COMMENTS" envDefault:"100"`
	SampleSize     int           `env:"SAMPLE_SIZE" envDefault:"5"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"20s"`
	ScrapeRPS      float64       `env:"SCRAPE_RPS" envDefault:"2"`

	// WatchSchedule is a cron expression for re-analysis of watched videos.
	WatchSchedule string `env:"WATCH_SCHEDULE" envDefault:"*/30 * * * *"`
}

// Load reads .env (if present) and the environment into a Config.
func Load() (*Config, error) {
	// .env is a local convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.MaxComments < 1 {
		return nil, fmt.Errorf("MAX_COMMENTS must be >= 1, got %d", cfg.MaxComments)
	}
	if cfg.SampleSize < 1 {
		return nil, fmt.Errorf("SAMPLE_SIZE must be >= 1, got %d", cfg.SampleSize)
	}

	return cfg, nil
}

// Local reports whether the process runs in a local dev environment.
func (c *Config) Local() bool {
	return c.AppEnv == "local"
}
