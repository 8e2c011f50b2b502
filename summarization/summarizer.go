// Package summarization produces the natural-language digest of a comment
// set. A remote LLM is the primary strategy with a deterministic local
// extractive method as fallback; the digest is best effort and never blocks
// the rest of the pipeline.
package summarization

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"tubepulse/types"
)

// ErrSummarizationFailed means every strategy failed; the run proceeds
// without a digest.
var ErrSummarizationFailed = errors.New("summarization failed")

// Strategy is one way of producing a digest.
type Strategy interface {
	Name() string
	Summarize(ctx context.Context, summary types.SentimentSummary, comments []types.ClassifiedComment) (types.Digest, error)
}

// Summarizer tries its strategies in order and returns the first digest.
type Summarizer struct {
	strategies []Strategy
	logger     zerolog.Logger
}

// New builds a summarizer over the given ordered strategies.
func New(logger zerolog.Logger, strategies ...Strategy) *Summarizer {
	return &Summarizer{
		strategies: strategies,
		logger:     logger.With().Str("component", "summarizer").Logger(),
	}
}

// Summarize produces a digest for the classified set, trying each strategy in
// order.
func (s *Summarizer) Summarize(ctx context.Context, summary types.SentimentSummary, comments []types.ClassifiedComment) (types.Digest, error) {
	var lastErr error

	for _, strat := range s.strategies {
		digest, err := strat.Summarize(ctx, summary, comments)
		if err == nil {
			return digest, nil
		}

		s.logger.Warn().Err(err).Str("strategy", strat.Name()).Msg("summarization strategy failed")
		lastErr = err
	}

	if lastErr != nil {
		return types.Digest{}, errors.Join(ErrSummarizationFailed, lastErr)
	}
	return types.Digest{}, ErrSummarizationFailed
}
