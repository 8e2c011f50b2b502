package summarization

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"tubepulse/types"
)

const (
	// maxPromptComments bounds how many comments go into the prompt to
	// respect request-size limits.
	maxPromptComments = 30
	// maxCommentLen truncates individual comments inside the prompt.
	maxCommentLen = 200
	// minCommentLen skips low-signal comments ("lol", "first").
	minCommentLen = 10

	summaryMaxTokens   = 300
	summaryTemperature = 0.3
)

// groqStrategy calls an OpenAI-compatible chat endpoint (Groq) to write the
// digest.
type groqStrategy struct {
	client *openai.Client
	model  string
}

// NewGroqStrategy builds the remote strategy. Call only when an API key is
// configured.
func NewGroqStrategy(apiKey, baseURL, model string) Strategy {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &groqStrategy{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (g *groqStrategy) Name() string { return "groq" }

func (g *groqStrategy) Summarize(ctx context.Context, summary types.SentimentSummary, comments []types.ClassifiedComment) (types.Digest, error) {
	prompt := buildPrompt(summary, comments)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an assistant that summarizes YouTube comment sections concisely and neutrally.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   summaryMaxTokens,
		N:           1,
		Temperature: summaryTemperature,
	})
	if err != nil {
		return types.Digest{}, fmt.Errorf("groq chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return types.Digest{}, fmt.Errorf("groq returned empty response")
	}

	return types.Digest{
		Summary: strings.TrimSpace(resp.Choices[0].Message.Content),
		Source:  types.DigestSourceRemote,
	}, nil
}

// buildPrompt combines the aggregate statistics with a bounded sample of raw
// comment texts.
func buildPrompt(summary types.SentimentSummary, comments []types.ClassifiedComment) string {
	var sample []string
	for _, c := range comments {
		if len(sample) >= maxPromptComments {
			break
		}
		text := strings.TrimSpace(c.Text)
		if len(text) < minCommentLen {
			continue
		}
		if len(text) > maxCommentLen {
			text = text[:maxCommentLen]
		}
		sample = append(sample, "- "+text)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following YouTube comments and provide a concise summary of the main points, themes, and opinions expressed by viewers.\n\n")
	fmt.Fprintf(&b, "Sentiment distribution across %d classified comments: ", summary.Total)
	for i, l := range types.Labels {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %.1f%% (%d)", l, summary.Percentages[l], summary.Counts[l])
	}
	b.WriteString(".\n\nComments:\n")
	b.WriteString(strings.Join(sample, "\n"))
	b.WriteString("\n\nProvide a summary in 3-4 sentences covering the main topics discussed, the overall tone, and any key concerns or praise.\n\nSummary:")

	return b.String()
}
