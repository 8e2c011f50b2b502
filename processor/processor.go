// Package processor runs the full analysis pipeline for one video:
// fetch → normalize → classify → aggregate → digest → persist. The pipeline
// is a single-threaded, single-pass batch; only the fetch and digest steps
// touch the network through their own adapters.
package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tubepulse/aggregator"
	"tubepulse/classifier"
	"tubepulse/fetcher"
	"tubepulse/metrics"
	"tubepulse/normalizer"
	"tubepulse/types"
)

// Fetcher is the comment source adapter.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string, maxComments int) ([]types.Comment, string, error)
}

// Classifier labels normalized texts.
type Classifier interface {
	ClassifyBatch(ctx context.Context, texts []string) []classifier.Prediction
}

// Summarizer produces the digest.
type Summarizer interface {
	Summarize(ctx context.Context, summary types.SentimentSummary, comments []types.ClassifiedComment) (types.Digest, error)
}

// RunStore persists finished runs.
type RunStore interface {
	SaveRun(ctx context.Context, run *types.AnalysisRun) error
}

// Processor wires the pipeline stages together.
type Processor struct {
	fetcher    Fetcher
	classifier Classifier
	summarizer Summarizer
	store      RunStore
	sampleSize int
	logger     zerolog.Logger
}

// New builds a processor. store may be nil when persistence is not wanted.
func New(f Fetcher, c Classifier, s Summarizer, store RunStore, sampleSize int, logger zerolog.Logger) *Processor {
	return &Processor{
		fetcher:    f,
		classifier: c,
		summarizer: s,
		store:      store,
		sampleSize: sampleSize,
		logger:     logger.With().Str("component", "processor").Logger(),
	}
}

// Analyze runs the pipeline over one video. rawURL may be a full YouTube URL
// or a bare video ID. An existing video with zero comments yields a valid
// empty run; only total source failure is an error.
func (p *Processor) Analyze(ctx context.Context, rawURL string, maxComments int) (*types.AnalysisRun, error) {
	started := time.Now()

	videoID, err := fetcher.ExtractVideoID(rawURL)
	if err != nil {
		metrics.RunsCompleted.WithLabelValues("invalid_url").Inc()
		return nil, err
	}

	logger := p.logger.With().Str("video_id", videoID).Logger()
	logger.Info().Int("max_comments", maxComments).Msg("starting analysis")

	comments, source, err := p.fetcher.Fetch(ctx, videoID, maxComments)
	if err != nil && !errors.Is(err, fetcher.ErrNoComments) {
		metrics.RunsCompleted.WithLabelValues("source_unavailable").Inc()
		return nil, fmt.Errorf("fetch comments: %w", err)
	}
	metrics.CommentsFetched.WithLabelValues(source).Add(float64(len(comments)))

	classified := p.classify(ctx, comments)
	summary := aggregator.Aggregate(classified, p.sampleSize)

	run := &types.AnalysisRun{
		ID:        uuid.NewString(),
		VideoID:   videoID,
		Source:    source,
		FetchedAt: started.UTC(),
		Comments:  classified,
		Summary:   summary,
	}

	// The digest is a best-effort enhancement; its failure never blocks the
	// classified table.
	digest, err := p.summarizer.Summarize(ctx, summary, classified)
	if err != nil {
		logger.Warn().Err(err).Msg("digest unavailable for run")
	} else {
		run.Digest = &digest
		metrics.DigestFallbacks.WithLabelValues(string(digest.Source)).Inc()
	}

	if p.store != nil {
		if err := p.store.SaveRun(ctx, run); err != nil {
			logger.Error().Err(err).Str("run_id", run.ID).Msg("failed to persist run")
		}
	}

	metrics.RunsCompleted.WithLabelValues("ok").Inc()
	metrics.RunDuration.Observe(time.Since(started).Seconds())
	logger.Info().Str("run_id", run.ID).Int("comments", len(classified)).
		Str("source", source).Dur("took", time.Since(started)).Msg("analysis finished")

	return run, nil
}

// classify normalizes every comment and labels the batch. Comments whose
// cleaned text is empty are neutral by definition and classified locally.
func (p *Processor) classify(ctx context.Context, comments []types.Comment) []types.ClassifiedComment {
	if len(comments) == 0 {
		return nil
	}

	normalized := make([]types.NormalizedComment, len(comments))
	texts := make([]string, len(comments))
	for i, c := range comments {
		normalized[i] = types.NormalizedComment{
			Comment:   c,
			CleanText: normalizer.Normalize(c.Text),
		}
		texts[i] = normalized[i].CleanText
	}

	preds := p.classifier.ClassifyBatch(ctx, texts)

	classified := make([]types.ClassifiedComment, len(comments))
	for i, n := range normalized {
		classified[i] = types.ClassifiedComment{
			NormalizedComment: n,
			Label:             preds[i].Label,
			Score:             preds[i].Score,
		}
		metrics.CommentsClassified.WithLabelValues(string(preds[i].Label)).Inc()
	}

	return classified
}
