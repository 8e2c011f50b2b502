// Package responder drafts short replies to individual comments. Replies are
// LLM-generated when a key is configured and fall back to label-keyed
// templates otherwise; a per-comment failure never fails the batch.
package responder

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"tubepulse/types"
)

const (
	replyMaxTokens   = 120
	replyTemperature = 0.7
)

// Responder drafts replies for classified comments.
type Responder struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

// New builds a responder. client may be nil, in which case every reply uses
// the template fallback.
func New(client *openai.Client, model string, logger zerolog.Logger) *Responder {
	return &Responder{
		client: client,
		model:  model,
		logger: logger.With().Str("component", "responder").Logger(),
	}
}

// Draft produces one reply per comment.
func (r *Responder) Draft(ctx context.Context, comments []types.ClassifiedComment) []types.CommentResponse {
	out := make([]types.CommentResponse, len(comments))

	for i, c := range comments {
		resp := types.CommentResponse{CommentID: c.ID, Author: c.Author}

		if r.client != nil {
			reply, err := r.generate(ctx, c)
			if err == nil {
				resp.Response = reply
				resp.Generated = true
				out[i] = resp
				continue
			}
			r.logger.Warn().Err(err).Str("comment_id", c.ID).Msg("reply generation failed, using template")
		}

		resp.Response = templateReply(c)
		out[i] = resp
	}

	return out
}

func (r *Responder) generate(ctx context.Context, c types.ClassifiedComment) (string, error) {
	prompt := fmt.Sprintf(
		"Write a short, friendly reply (1-2 sentences) from a video creator to this YouTube comment. The comment's sentiment is %s. Address the commenter naturally, do not use hashtags.\n\nComment from %s:\n%s\n\nReply:",
		c.Label, c.Author, c.Text)

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   replyMaxTokens,
		Temperature: replyTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("reply completion: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty reply from model")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// templateReply is the deterministic no-network fallback, keyed on the
// comment's label.
func templateReply(c types.ClassifiedComment) string {
	name := c.Author
	if name == "" {
		name = "there"
	}

	switch c.Label {
	case types.LabelPositive:
		return fmt.Sprintf("Thanks so much, %s! Really glad you enjoyed it.", name)
	case types.LabelNegative:
		return fmt.Sprintf("Thanks for the honest feedback, %s. Noted for the next video.", name)
	default:
		return fmt.Sprintf("Thanks for watching and taking the time to comment, %s!", name)
	}
}
