// Package metrics exposes the Prometheus collectors for the pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommentsFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tubepulse_comments_fetched_total",
		Help: "The total number of comments fetched, by source",
	}, []string{"source"})

	CommentsClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tubepulse_comments_classified_total",
		Help: "The total number of classified comments, by label",
	}, []string{"label"})

	RunsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tubepulse_runs_total",
		Help: "The total number of analysis runs, by outcome",
	}, []string{"status"})

	DigestFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tubepulse_digests_total",
		Help: "The total number of digests produced, by source",
	}, []string{"source"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tubepulse_run_duration_seconds",
		Help:    "Duration of a full analysis run",
		Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120, 300},
	})
)
