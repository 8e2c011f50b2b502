// Package cronjobs schedules re-analysis of watched videos so the dashboard
// always has a recent run per tracked video.
package cronjobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"tubepulse/db"
	"tubepulse/processor"
)

// runTimeout bounds one scheduled analysis; a stuck video must not stall the
// whole sweep.
const runTimeout = 5 * time.Minute

// InitCronJobs starts the watch-list sweep on the given schedule and returns
// the cron handle so main can stop it on shutdown.
func InitCronJobs(schedule string, p *processor.Processor, store *db.Store, maxComments int, logger zerolog.Logger) (*cron.Cron, error) {
	log := logger.With().Str("component", "cron").Logger()

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		sweep(p, store, maxComments, log)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	log.Info().Str("schedule", schedule).Msg("watch-list sweep scheduled")

	return c, nil
}

func sweep(p *processor.Processor, store *db.Store, maxComments int, log zerolog.Logger) {
	ctx := context.Background()

	watched, err := store.ListWatchedVideos(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load watch list")
		return
	}
	if len(watched) == 0 {
		return
	}

	log.Info().Int("videos", len(watched)).Msg("watch-list sweep running")

	for _, w := range watched {
		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		run, err := p.Analyze(runCtx, w.VideoID, maxComments)
		cancel()

		if err != nil {
			log.Warn().Err(err).Str("video_id", w.VideoID).Msg("scheduled analysis failed")
			continue
		}

		if err := store.TouchWatchedVideo(ctx, w.VideoID, run.ID); err != nil {
			log.Warn().Err(err).Str("video_id", w.VideoID).Msg("failed to record scheduled run")
		}
	}
}
