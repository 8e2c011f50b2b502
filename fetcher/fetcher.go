// Package fetcher retrieves top-level comments for a video. Retrieval is a
// strategy pair: the YouTube Data API when a key is configured, and a keyless
// InnerTube scraper as fallback. Both normalize into the same Comment shape.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"

	"tubepulse/types"
)

var (
	// ErrSourceUnavailable means every configured source failed; the run
	// cannot proceed.
	ErrSourceUnavailable = errors.New("no comment source available")
	// ErrNoComments is a terminal but valid outcome: the video exists and has
	// zero comments.
	ErrNoComments = errors.New("no comments found")
	// ErrInvalidVideoURL means no video ID could be derived from the input.
	ErrInvalidVideoURL = errors.New("invalid video URL")
)

// Source is one way of retrieving comments for a video.
type Source interface {
	Name() string
	Fetch(ctx context.Context, videoID string, maxComments int) ([]types.Comment, error)
}

// Adapter tries its sources in order and returns the first success.
type Adapter struct {
	sources []Source
	logger  zerolog.Logger
}

// NewAdapter builds an adapter over the given ordered sources.
func NewAdapter(logger zerolog.Logger, sources ...Source) *Adapter {
	return &Adapter{
		sources: sources,
		logger:  logger.With().Str("component", "fetcher").Logger(),
	}
}

// Fetch retrieves up to maxComments comments for videoID and reports which
// source served them. It returns ErrNoComments when a source confirms the
// video simply has none, and ErrSourceUnavailable when every source failed.
func (a *Adapter) Fetch(ctx context.Context, videoID string, maxComments int) ([]types.Comment, string, error) {
	if maxComments < 1 {
		return nil, "", fmt.Errorf("maxComments must be >= 1, got %d", maxComments)
	}
	if len(a.sources) == 0 {
		return nil, "", ErrSourceUnavailable
	}

	var lastErr error
	for _, src := range a.sources {
		comments, err := src.Fetch(ctx, videoID, maxComments)
		if err == nil {
			if len(comments) == 0 {
				return nil, src.Name(), ErrNoComments
			}
			a.logger.Info().Str("source", src.Name()).Str("video_id", videoID).
				Int("comments", len(comments)).Msg("fetched comments")
			return comments, src.Name(), nil
		}
		if errors.Is(err, ErrNoComments) {
			// The source resolved the video and found nothing; that is an
			// answer, not a failure, so the fallback is skipped.
			return nil, src.Name(), ErrNoComments
		}

		a.logger.Warn().Err(err).Str("source", src.Name()).Str("video_id", videoID).
			Msg("source failed, trying next")
		lastErr = err
	}

	return nil, "", fmt.Errorf("%w: %v", ErrSourceUnavailable, lastErr)
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/shorts/)([A-Za-z0-9_-]{6,})`),
	regexp.MustCompile(`youtube\.com/watch\?[^#\s]*[?&]v=([A-Za-z0-9_-]{6,})`),
}

var bareIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID accepts a watch/short/embed URL or a bare 11-character ID.
func ExtractVideoID(raw string) (string, error) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			return m[1], nil
		}
	}
	if bareIDRe.MatchString(raw) {
		return raw, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVideoURL, raw)
}
