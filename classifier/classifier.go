// Package classifier calls the hosted pretrained sentiment model. The model
// is a black box behind an HTTP endpoint: batches of text in, one 3-way label
// with a confidence score per text out.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tubepulse/types"
)

const (
	// batchSize caps how many texts go into a single model call.
	batchSize = 32
	// maxTextLen is the model's input limit; longer texts are truncated.
	maxTextLen = 512
)

// ErrClassificationFailed marks a model invocation that did not produce a
// usable prediction. Affected comments are labeled unknown, never dropped.
var ErrClassificationFailed = errors.New("classification failed")

// Prediction is one model output.
type Prediction struct {
	Label types.Label
	Score float64
}

// modelRequest is the request body for a batch call.
type modelRequest []modelItem

type modelItem struct {
	ContentID string `json:"content_id"`
	Text      string `json:"text"`
}

// modelResponse mirrors the hosted model's batch response.
type modelResponse []modelResult

type modelResult struct {
	ContentID      string  `json:"content_id"`
	SentimentLabel string  `json:"sentiment_label"`
	Confidence     float64 `json:"confidence"`
}

// Client talks to the hosted sentiment model.
type Client struct {
	url    string
	http   *http.Client
	logger zerolog.Logger
}

// New builds a classifier client against the given model endpoint.
func New(modelURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		url:    modelURL,
		http:   &http.Client{Timeout: timeout},
		logger: logger.With().Str("component", "classifier").Logger(),
	}
}

// Classify labels a single normalized text. The empty string is a defined
// edge case handled locally: neutral with score 0.0, no model call.
func (c *Client) Classify(ctx context.Context, text string) (types.Label, float64, error) {
	if text == "" {
		return types.LabelNeutral, 0.0, nil
	}

	preds, err := c.callModel(ctx, []string{text})
	if err != nil {
		return types.LabelUnknown, 0, err
	}

	return preds[0].Label, preds[0].Score, nil
}

// ClassifyBatch labels every text, chunking calls to the model's batch limit.
// A failed chunk marks only its own items unknown; the batch never aborts.
func (c *Client) ClassifyBatch(ctx context.Context, texts []string) []Prediction {
	out := make([]Prediction, len(texts))

	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		chunk := texts[start:end]

		// Empty texts resolve locally; only the rest go to the model.
		remote := make([]string, 0, len(chunk))
		remoteIdx := make([]int, 0, len(chunk))
		for i, t := range chunk {
			if t == "" {
				out[start+i] = Prediction{Label: types.LabelNeutral, Score: 0.0}
				continue
			}
			remote = append(remote, t)
			remoteIdx = append(remoteIdx, start+i)
		}

		if len(remote) == 0 {
			continue
		}

		preds, err := c.callModel(ctx, remote)
		if err != nil {
			c.logger.Warn().Err(err).Int("chunk_start", start).Int("chunk_size", len(remote)).
				Msg("model call failed, marking chunk unknown")
			for _, idx := range remoteIdx {
				out[idx] = Prediction{Label: types.LabelUnknown}
			}
			continue
		}

		for i, idx := range remoteIdx {
			out[idx] = preds[i]
		}
	}

	return out
}

// callModel performs one batch request with a single retry on transient
// failures.
func (c *Client) callModel(ctx context.Context, texts []string) ([]Prediction, error) {
	req := make(modelRequest, len(texts))
	for i, t := range texts {
		if len(t) > maxTextLen {
			t = t[:maxTextLen]
		}
		req[i] = modelItem{ContentID: fmt.Sprintf("%d", i), Text: t}
	}

	var (
		resp modelResponse
		err  error
	)
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrClassificationFailed, ctx.Err())
			case <-time.After(time.Second):
			}
		}
		resp, err = c.post(ctx, req)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}

	if len(resp) != len(texts) {
		return nil, fmt.Errorf("%w: model returned %d results for %d texts", ErrClassificationFailed, len(resp), len(texts))
	}

	preds := make([]Prediction, len(resp))
	for i, r := range resp {
		preds[i] = Prediction{Label: parseLabel(r.SentimentLabel), Score: clamp01(r.Confidence)}
	}

	return preds, nil
}

func (c *Client) post(ctx context.Context, body modelRequest) (modelResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model returned status %s", httpResp.Status)
	}

	var resp modelResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, err
	}

	return resp, nil
}

func parseLabel(raw string) types.Label {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive":
		return types.LabelPositive
	case "negative":
		return types.LabelNegative
	case "neutral":
		return types.LabelNeutral
	default:
		return types.LabelUnknown
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
