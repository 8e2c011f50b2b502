// Package aggregator derives the summary statistics the dashboard renders:
// label counts, percentage shares, and a bounded set of top comments per
// label.
package aggregator

import (
	"math"
	"sort"

	"tubepulse/types"
)

// DefaultSampleSize bounds the per-label sample when no explicit size is
// configured.
const DefaultSampleSize = 5

// Aggregate computes a SentimentSummary over a classified set. Pure and total:
// an empty input (or one with only unknown labels) yields zero counts and 0%
// everywhere. Unknown-labeled comments are excluded from counts, percentages
// and samples but stay in the run for export.
func Aggregate(classified []types.ClassifiedComment, sampleSize int) types.SentimentSummary {
	if sampleSize < 1 {
		sampleSize = DefaultSampleSize
	}

	summary := types.SentimentSummary{
		Counts:      make(map[types.Label]int, len(types.Labels)),
		Percentages: make(map[types.Label]float64, len(types.Labels)),
		Samples:     make(map[types.Label][]types.ClassifiedComment, len(types.Labels)),
	}

	byLabel := make(map[types.Label][]indexed, len(types.Labels))
	for _, l := range types.Labels {
		summary.Counts[l] = 0
		summary.Percentages[l] = 0
	}

	for i, c := range classified {
		if c.Label == types.LabelUnknown {
			continue
		}
		summary.Counts[c.Label]++
		summary.Total++
		byLabel[c.Label] = append(byLabel[c.Label], indexed{pos: i, comment: c})
	}

	if summary.Total > 0 {
		fillPercentages(&summary)
	}

	for label, entries := range byLabel {
		summary.Samples[label] = topComments(entries, sampleSize)
	}

	return summary
}

type indexed struct {
	pos     int
	comment types.ClassifiedComment
}

// topComments orders a label's comments by score, then like count, then
// original fetch position, and keeps the first sampleSize.
func topComments(entries []indexed, sampleSize int) []types.ClassifiedComment {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.comment.Score != b.comment.Score {
			return a.comment.Score > b.comment.Score
		}
		if a.comment.LikeCount != b.comment.LikeCount {
			return a.comment.LikeCount > b.comment.LikeCount
		}
		return a.pos < b.pos
	})

	if len(entries) > sampleSize {
		entries = entries[:sampleSize]
	}

	out := make([]types.ClassifiedComment, len(entries))
	for i, e := range entries {
		out[i] = e.comment
	}
	return out
}

// fillPercentages computes per-label shares in tenths of a percent with
// round-half-up, then folds any rounding remainder into the largest bucket so
// the shares always sum to exactly 100.0.
func fillPercentages(summary *types.SentimentSummary) {
	tenths := make(map[types.Label]int, len(types.Labels))
	sum := 0
	largest := types.Labels[0]

	for _, l := range types.Labels {
		share := float64(summary.Counts[l]) / float64(summary.Total) * 1000
		t := int(math.Floor(share + 0.5))
		tenths[l] = t
		sum += t
		if summary.Counts[l] > summary.Counts[largest] {
			largest = l
		}
	}

	tenths[largest] += 1000 - sum

	for _, l := range types.Labels {
		summary.Percentages[l] = float64(tenths[l]) / 10
	}
}
