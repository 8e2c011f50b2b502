package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"tubepulse/types"
)

const (
	defaultWatchBase = "https://www.youtube.com"
	// webClientVersion is sent when the watch page does not expose one.
	webClientVersion = "2.20240620.05.00"
	scrapeUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

var (
	innertubeKeyRe   = regexp.MustCompile(`"INNERTUBE_API_KEY":"([^"]+)"`)
	clientVersionRe  = regexp.MustCompile(`"INNERTUBE_CONTEXT_CLIENT_VERSION":"([^"]+)"`)
	continuationRe   = regexp.MustCompile(`"continuationCommand":\{"token":"([^"]+)"`)
	errNoContinuation = errors.New("no comment continuation on watch page")
)

// scrapeSource derives comments from the keyless InnerTube endpoint the web
// player itself uses: fetch the watch page, pull out the API key and first
// comment continuation, then follow youtubei/v1/next continuations.
type scrapeSource struct {
	base    string
	http    *http.Client
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewScrapeSource builds the fallback source. rps bounds outbound requests.
func NewScrapeSource(timeout time.Duration, rps float64, logger zerolog.Logger) Source {
	return &scrapeSource{
		base:    defaultWatchBase,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger.With().Str("component", "fetcher").Str("source", "scrape").Logger(),
	}
}

func (s *scrapeSource) Name() string { return "scrape" }

func (s *scrapeSource) Fetch(ctx context.Context, videoID string, maxComments int) ([]types.Comment, error) {
	apiKey, clientVersion, token, err := s.loadWatchPage(ctx, videoID)
	if err != nil {
		if errors.Is(err, errNoContinuation) {
			// Page resolved but exposes no comment section.
			return nil, ErrNoComments
		}
		return nil, err
	}

	comments := make([]types.Comment, 0, maxComments)
	now := time.Now()

	for token != "" && len(comments) < maxComments {
		page, next, err := s.nextPage(ctx, apiKey, clientVersion, token)
		if err != nil {
			if len(comments) > 0 {
				s.logger.Warn().Err(err).Str("video_id", videoID).
					Int("fetched", len(comments)).Msg("continuation failed, returning partial result")
				return comments, nil
			}
			return nil, err
		}

		for _, r := range page {
			if len(comments) >= maxComments {
				break
			}
			comments = append(comments, rendererToComment(r, now))
		}

		token = next
	}

	return comments, nil
}

// loadWatchPage fetches the watch page and extracts the InnerTube API key,
// client version, and the first comment continuation token.
func (s *scrapeSource) loadWatchPage(ctx context.Context, videoID string) (apiKey, clientVersion, token string, err error) {
	if err = s.limiter.Wait(ctx); err != nil {
		return "", "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"/watch?v="+videoID, nil)
	if err != nil {
		return "", "", "", err
	}
	req.Header.Set("User-Agent", scrapeUserAgent)
	req.Header.Set("Cookie", "CONSENT=YES+cb")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", "", "", fmt.Errorf("fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", "", fmt.Errorf("watch page returned status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", "", fmt.Errorf("read watch page: %w", err)
	}

	keyMatch := innertubeKeyRe.FindSubmatch(body)
	if keyMatch == nil {
		return "", "", "", errors.New("no InnerTube API key on watch page")
	}
	apiKey = string(keyMatch[1])

	clientVersion = webClientVersion
	if m := clientVersionRe.FindSubmatch(body); m != nil {
		clientVersion = string(m[1])
	}

	tokenMatch := continuationRe.FindSubmatch(body)
	if tokenMatch == nil {
		return "", "", "", errNoContinuation
	}
	token = string(tokenMatch[1])

	return apiKey, clientVersion, token, nil
}

// nextPage posts one continuation and returns its comments plus the token for
// the following page ("" when exhausted).
func (s *scrapeSource) nextPage(ctx context.Context, apiKey, clientVersion, token string) ([]*types.CommentRenderer, string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	reqBody := types.InnerTubeRequest{
		Context: types.InnerTubeContext{
			Client: types.InnerTubeClient{
				ClientName:    "WEB",
				ClientVersion: clientVersion,
				HL:            "en",
				GL:            "US",
			},
		},
		Continuation: token,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.base+"/youtubei/v1/next?key="+apiKey+"&prettyPrint=false", bytes.NewReader(payload))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", scrapeUserAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("youtubei/v1/next: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("youtubei/v1/next returned status %s", resp.Status)
	}

	var parsed types.InnerTubeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, "", fmt.Errorf("decode continuation response: %w", err)
	}

	var (
		renderers []*types.CommentRenderer
		next      string
	)
	for _, ep := range parsed.OnResponseReceivedEndpoints {
		action := ep.AppendContinuationItemsAction
		if action == nil {
			action = ep.ReloadContinuationItemsCommand
		}
		if action == nil {
			continue
		}
		for _, item := range action.ContinuationItems {
			switch {
			case item.CommentThreadRenderer != nil && item.CommentThreadRenderer.Comment.CommentRenderer != nil:
				renderers = append(renderers, item.CommentThreadRenderer.Comment.CommentRenderer)
			case item.ContinuationItemRenderer != nil:
				next = item.ContinuationItemRenderer.ContinuationEndpoint.ContinuationCommand.Token
			}
		}
	}

	return renderers, next, nil
}

func rendererToComment(r *types.CommentRenderer, now time.Time) types.Comment {
	return types.Comment{
		ID:          r.CommentID,
		Author:      r.AuthorText.String(),
		Text:        r.ContentText.String(),
		PublishedAt: parseRelativeTime(r.PublishedTimeText.String(), now),
		LikeCount:   parseVoteCount(r.VoteCount.String()),
	}
}

// parseVoteCount folds YouTube's abbreviated counts ("1.2K", "3M") into ints.
func parseVoteCount(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	mult := 1.0
	switch {
	case strings.HasSuffix(raw, "K"):
		mult, raw = 1e3, strings.TrimSuffix(raw, "K")
	case strings.HasSuffix(raw, "M"):
		mult, raw = 1e6, strings.TrimSuffix(raw, "M")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return int(v * mult)
}

var relativeUnits = map[string]time.Duration{
	"second": time.Second,
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
	"week":   7 * 24 * time.Hour,
	"month":  30 * 24 * time.Hour,
	"year":   365 * 24 * time.Hour,
}

var relativeRe = regexp.MustCompile(`^(\d+)\s+(second|minute|hour|day|week|month|year)s?\s+ago`)

// parseRelativeTime converts "3 weeks ago (edited)" into an absolute
// timestamp relative to now. Unparseable input yields the zero time.
func parseRelativeTime(raw string, now time.Time) time.Time {
	m := relativeRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return time.Time{}
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}
	}

	return now.Add(-time.Duration(n) * relativeUnits[m[2]])
}
