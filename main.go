package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"tubepulse/classifier"
	"tubepulse/config"
	"tubepulse/cronjobs"
	"tubepulse/db"
	"tubepulse/fetcher"
	"tubepulse/processor"
	"tubepulse/responder"
	"tubepulse/routes"
	"tubepulse/summarization"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	logger.Info().Str("env", cfg.AppEnv).Msg("starting tubepulse")

	store, err := db.New(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer store.Close()

	// The Data API source only joins the chain when a key is configured; the
	// scraper is always present as the fallback.
	var sources []fetcher.Source
	if cfg.YouTubeAPIKey != "" {
		apiSrc, err := fetcher.NewAPISource(context.Background(), cfg.YouTubeAPIKey, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build YouTube Data API source")
		}
		sources = append(sources, apiSrc)
	} else {
		logger.Warn().Msg("YOUTUBE_API_KEY not set, fetching via scraping only")
	}
	sources = append(sources, fetcher.NewScrapeSource(cfg.RequestTimeout, cfg.ScrapeRPS, logger))

	fetch := fetcher.NewAdapter(logger, sources...)
	clf := classifier.New(cfg.SentimentModelURL, cfg.RequestTimeout, logger)

	var groqClient *openai.Client
	strategies := []summarization.Strategy{}
	if cfg.GroqAPIKey != "" {
		strategies = append(strategies, summarization.NewGroqStrategy(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel))

		groqCfg := openai.DefaultConfig(cfg.GroqAPIKey)
		groqCfg.BaseURL = cfg.GroqBaseURL
		groqClient = openai.NewClientWithConfig(groqCfg)
	} else {
		logger.Warn().Msg("GROQ_API_KEY not set, using local summaries and template replies")
	}
	strategies = append(strategies, summarization.NewLocalStrategy())

	summ := summarization.New(logger, strategies...)
	resp := responder.New(groqClient, cfg.GroqModel, logger)

	proc := processor.New(fetch, clf, summ, store, cfg.SampleSize, logger)

	c, err := cronjobs.InitCronJobs(cfg.WatchSchedule, proc, store, cfg.MaxComments, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to schedule watch-list sweep")
	}
	defer c.Stop()

	r := routes.SetupRouter(proc, store, resp, cfg.MaxComments)
	logger.Info().Int("port", cfg.Port).Msg("listening")
	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var out = zerolog.New(os.Stdout)
	if cfg.Local() {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}
	return out.With().Timestamp().Logger()
}
