package types

import "time"

// SentimentSummary is a read-only view over a classified comment set.
// Counts and Percentages cover definitive labels only; Percentages sum to
// 100.0 (rounding remainder folded into the largest bucket).
type SentimentSummary struct {
	Total       int                         `json:"total"`
	Counts      map[Label]int               `json:"counts"`
	Percentages map[Label]float64           `json:"percentages"`
	Samples     map[Label][]ClassifiedComment `json:"samples"`
}

// DigestSource records which strategy produced a digest.
type DigestSource string

const (
	DigestSourceRemote        DigestSource = "remote"
	DigestSourceLocalFallback DigestSource = "local_fallback"
)

// Digest is a short natural-language summary of a comment set.
type Digest struct {
	Summary string       `json:"summary"`
	Source  DigestSource `json:"source"`
}

// AnalysisRun is one complete pass of the pipeline over a single video.
type AnalysisRun struct {
	ID        string              `json:"id"`
	VideoID   string              `json:"video_id"`
	Source    string              `json:"source"`
	FetchedAt time.Time           `json:"fetched_at"`
	Comments  []ClassifiedComment `json:"comments"`
	Summary   SentimentSummary    `json:"summary"`
	// Digest is best effort: nil when both summarization strategies failed.
	Digest *Digest `json:"digest,omitempty"`
}

// CommentResponse is a drafted reply to a single comment.
type CommentResponse struct {
	CommentID string `json:"comment_id"`
	Author    string `json:"author"`
	Response  string `json:"response"`
	Generated bool   `json:"generated"`
}
