package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"tubepulse/types"
)

// pageSize is the Data API maximum for commentThreads.list.
const pageSize = 100

// apiSource fetches comments through the YouTube Data API v3. It is only
// constructed when an API key is configured.
type apiSource struct {
	svc    *youtube.Service
	logger zerolog.Logger
}

// NewAPISource builds the Data API source.
func NewAPISource(ctx context.Context, apiKey string, logger zerolog.Logger) (Source, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &apiSource{
		svc:    svc,
		logger: logger.With().Str("component", "fetcher").Str("source", "data-api").Logger(),
	}, nil
}

func (s *apiSource) Name() string { return "data-api" }

// Fetch paginates commentThreads.list until maxComments or pages are
// exhausted. A failure after the first page returns the partial result.
func (s *apiSource) Fetch(ctx context.Context, videoID string, maxComments int) ([]types.Comment, error) {
	comments := make([]types.Comment, 0, maxComments)
	pageToken := ""

	for len(comments) < maxComments {
		size := int64(maxComments - len(comments))
		if size > pageSize {
			size = pageSize
		}

		call := s.svc.CommentThreads.List([]string{"snippet"}).
			VideoId(videoID).
			MaxResults(size).
			Order("relevance").
			TextFormat("plainText").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := doWithRetry(ctx, call.Do)
		if err != nil {
			if len(comments) > 0 {
				// Later-page failure: the fetched prefix is still a valid
				// partial result.
				s.logger.Warn().Err(err).Str("video_id", videoID).
					Int("fetched", len(comments)).Msg("pagination failed, returning partial result")
				return comments, nil
			}
			return nil, fmt.Errorf("commentThreads.list: %w", err)
		}

		for _, item := range resp.Items {
			if len(comments) >= maxComments {
				break
			}
			comments = append(comments, threadToComment(item))
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return comments, nil
}

func threadToComment(item *youtube.CommentThread) types.Comment {
	sn := item.Snippet.TopLevelComment.Snippet

	published, err := time.Parse(time.RFC3339, sn.PublishedAt)
	if err != nil {
		published = time.Time{}
	}

	return types.Comment{
		ID:          item.Snippet.TopLevelComment.Id,
		Author:      sn.AuthorDisplayName,
		Text:        sn.TextDisplay,
		PublishedAt: published,
		LikeCount:   int(sn.LikeCount),
	}
}

// doWithRetry runs one API call with a single retry, per the outbound-call
// policy: bounded timeout, one retry, then the adapter falls back.
func doWithRetry[T any](ctx context.Context, do func(...googleapi.CallOption) (T, error)) (T, error) {
	resp, err := do()
	if err == nil {
		return resp, nil
	}

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-time.After(time.Second):
	}

	return do()
}
