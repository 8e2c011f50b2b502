package summarization

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tubepulse/types"
)

const (
	// localWordLimit bounds how many comments feed topic extraction.
	localWordLimit = 30
	// minTopicLen and minTopicCount gate what counts as a topic word.
	minTopicLen   = 4
	minTopicCount = 3
	maxTopics     = 5
)

// localStrategy is the deterministic no-network fallback: dominant sentiment
// plus the most frequent content words of the cleaned texts.
type localStrategy struct{}

// NewLocalStrategy builds the extractive fallback strategy.
func NewLocalStrategy() Strategy { return localStrategy{} }

func (localStrategy) Name() string { return "local" }

func (localStrategy) Summarize(_ context.Context, summary types.SentimentSummary, comments []types.ClassifiedComment) (types.Digest, error) {
	if len(comments) == 0 {
		return types.Digest{
			Summary: "No comments available for summarization.",
			Source:  types.DigestSourceLocalFallback,
		}, nil
	}

	dominant := dominantLabel(summary)

	var b strings.Builder
	fmt.Fprintf(&b, "Analysis of %d comments shows a predominantly %s sentiment (%.1f%%). ",
		summary.Total, dominant, summary.Percentages[dominant])

	if topics := topTopics(comments); len(topics) > 0 {
		fmt.Fprintf(&b, "Common topics discussed include: %s. ", strings.Join(topics, ", "))
	}

	fmt.Fprintf(&b, "The comments contain %d positive, %d negative, and %d neutral responses.",
		summary.Counts[types.LabelPositive], summary.Counts[types.LabelNegative], summary.Counts[types.LabelNeutral])

	return types.Digest{
		Summary: b.String(),
		Source:  types.DigestSourceLocalFallback,
	}, nil
}

// dominantLabel picks the label with the highest count, preferring display
// order on ties.
func dominantLabel(summary types.SentimentSummary) types.Label {
	dominant := types.Labels[0]
	for _, l := range types.Labels[1:] {
		if summary.Counts[l] > summary.Counts[dominant] {
			dominant = l
		}
	}
	return dominant
}

// topTopics ranks content words of the cleaned texts by frequency, breaking
// ties alphabetically so output is deterministic.
func topTopics(comments []types.ClassifiedComment) []string {
	freq := map[string]int{}

	limit := len(comments)
	if limit > localWordLimit {
		limit = localWordLimit
	}
	for _, c := range comments[:limit] {
		for _, w := range strings.Fields(c.CleanText) {
			if len(w) >= minTopicLen {
				freq[w]++
			}
		}
	}

	words := make([]string, 0, len(freq))
	for w, n := range freq {
		if n >= minTopicCount {
			words = append(words, w)
		}
	}

	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > maxTopics {
		words = words[:maxTopics]
	}
	return words
}
