package summarization

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubepulse/aggregator"
	"tubepulse/types"
)

type fakeStrategy struct {
	name   string
	digest types.Digest
	err    error
	calls  int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Summarize(context.Context, types.SentimentSummary, []types.ClassifiedComment) (types.Digest, error) {
	f.calls++
	return f.digest, f.err
}

func commentSet() []types.ClassifiedComment {
	mk := func(id, text, clean string, label types.Label) types.ClassifiedComment {
		return types.ClassifiedComment{
			NormalizedComment: types.NormalizedComment{
				Comment:   types.Comment{ID: id, Text: text},
				CleanText: clean,
			},
			Label: label,
			Score: 0.8,
		}
	}

	var out []types.ClassifiedComment
	for i := 0; i < 4; i++ {
		out = append(out, mk("p"+string(rune('0'+i)), "the editing in this video is amazing", "editing video amazing", types.LabelPositive))
	}
	out = append(out, mk("n1", "audio was too quiet honestly", "audio quiet honestly", types.LabelNegative))
	return out
}

func TestSummarizerPrefersPrimary(t *testing.T) {
	primary := &fakeStrategy{name: "remote", digest: types.Digest{Summary: "ok", Source: types.DigestSourceRemote}}
	fallback := &fakeStrategy{name: "local"}

	s := New(zerolog.Nop(), primary, fallback)

	digest, err := s.Summarize(context.Background(), types.SentimentSummary{}, nil)
	require.NoError(t, err)
	assert.Equal(t, types.DigestSourceRemote, digest.Source)
	assert.Equal(t, 0, fallback.calls)
}

func TestSummarizerFallsBack(t *testing.T) {
	primary := &fakeStrategy{name: "remote", err: errors.New("rate limited")}
	fallback := &fakeStrategy{name: "local", digest: types.Digest{Summary: "fallback", Source: types.DigestSourceLocalFallback}}

	s := New(zerolog.Nop(), primary, fallback)

	digest, err := s.Summarize(context.Background(), types.SentimentSummary{}, nil)
	require.NoError(t, err)
	assert.Equal(t, types.DigestSourceLocalFallback, digest.Source)
	assert.Equal(t, 1, primary.calls)
}

func TestSummarizerAllFail(t *testing.T) {
	primary := &fakeStrategy{name: "remote", err: errors.New("timeout")}
	fallback := &fakeStrategy{name: "local", err: errors.New("broken")}

	s := New(zerolog.Nop(), primary, fallback)

	_, err := s.Summarize(context.Background(), types.SentimentSummary{}, nil)
	assert.ErrorIs(t, err, ErrSummarizationFailed)
}

func TestLocalStrategy(t *testing.T) {
	comments := commentSet()
	summary := aggregator.Aggregate(comments, 5)

	digest, err := NewLocalStrategy().Summarize(context.Background(), summary, comments)
	require.NoError(t, err)

	assert.Equal(t, types.DigestSourceLocalFallback, digest.Source)
	assert.Contains(t, digest.Summary, "predominantly positive")
	assert.Contains(t, digest.Summary, "80.0%")
	assert.Contains(t, digest.Summary, "4 positive, 1 negative, and 0 neutral")
	// "editing", "video" and "amazing" each occur 4 times.
	assert.Contains(t, digest.Summary, "amazing")
}

func TestLocalStrategyDeterministic(t *testing.T) {
	comments := commentSet()
	summary := aggregator.Aggregate(comments, 5)

	first, err := NewLocalStrategy().Summarize(context.Background(), summary, comments)
	require.NoError(t, err)
	second, err := NewLocalStrategy().Summarize(context.Background(), summary, comments)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLocalStrategyEmpty(t *testing.T) {
	digest, err := NewLocalStrategy().Summarize(context.Background(), types.SentimentSummary{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "No comments available for summarization.", digest.Summary)
}

func TestBuildPromptBounds(t *testing.T) {
	long := strings.Repeat("x", 500)
	var comments []types.ClassifiedComment
	for i := 0; i < 60; i++ {
		comments = append(comments, types.ClassifiedComment{
			NormalizedComment: types.NormalizedComment{Comment: types.Comment{Text: "comment body " + long}},
		})
	}

	summary := types.SentimentSummary{
		Total:       60,
		Counts:      map[types.Label]int{types.LabelPositive: 60},
		Percentages: map[types.Label]float64{types.LabelPositive: 100},
	}

	prompt := buildPrompt(summary, comments)

	assert.Equal(t, maxPromptComments, strings.Count(prompt, "- comment body"))
	assert.NotContains(t, prompt, strings.Repeat("x", maxCommentLen+1))
	assert.Contains(t, prompt, "positive 100.0% (60)")
}
