package types

import "time"

// Label is the sentiment bucket a comment lands in after classification.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
	// LabelUnknown marks comments whose classification failed. They are kept
	// in the run and in exports but excluded from summary counts.
	LabelUnknown Label = "unknown"
)

// Labels lists the definitive labels, in display order. Unknown is excluded.
var Labels = []Label{LabelPositive, LabelNegative, LabelNeutral}

// Comment is a single top-level comment as returned by the source adapter.
// Immutable once produced.
type Comment struct {
	ID          string    `json:"id"`
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	PublishedAt time.Time `json:"published_at"`
	LikeCount   int       `json:"like_count"`
}

// NormalizedComment carries the cleaned-up text alongside the original.
type NormalizedComment struct {
	Comment
	CleanText string `json:"clean_text"`
}

// ClassifiedComment is the final per-comment record of a pipeline run.
type ClassifiedComment struct {
	NormalizedComment
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}
