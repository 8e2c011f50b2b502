package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// WatchedVideo is a video the cron worker re-analyzes on schedule.
type WatchedVideo struct {
	VideoID        string     `json:"video_id"`
	AddedAt        time.Time  `json:"added_at"`
	LastRunID      string     `json:"last_run_id,omitempty"`
	LastAnalyzedAt *time.Time `json:"last_analyzed_at,omitempty"`
}

// AddWatchedVideo registers a video for scheduled re-analysis. Adding an
// already-watched video is a no-op.
func (s *Store) AddWatchedVideo(ctx context.Context, videoID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO watched_videos (video_id, added_at) VALUES (?, ?)
		 ON CONFLICT(video_id) DO NOTHING`,
		videoID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("add watched video: %w", err)
	}
	return nil
}

// ListWatchedVideos returns the watch list in insertion order.
func (s *Store) ListWatchedVideos(ctx context.Context) ([]WatchedVideo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT video_id, added_at, last_run_id, last_analyzed_at FROM watched_videos ORDER BY added_at`)
	if err != nil {
		return nil, fmt.Errorf("select watched videos: %w", err)
	}
	defer rows.Close()

	var out []WatchedVideo
	for rows.Next() {
		var (
			w         WatchedVideo
			lastRunID sql.NullString
			lastAt    sql.NullTime
		)
		if err := rows.Scan(&w.VideoID, &w.AddedAt, &lastRunID, &lastAt); err != nil {
			return nil, fmt.Errorf("scan watched video: %w", err)
		}
		w.LastRunID = lastRunID.String
		if lastAt.Valid {
			t := lastAt.Time
			w.LastAnalyzedAt = &t
		}
		out = append(out, w)
	}

	return out, rows.Err()
}

// RemoveWatchedVideo drops a video from the watch list.
func (s *Store) RemoveWatchedVideo(ctx context.Context, videoID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM watched_videos WHERE video_id = ?`, videoID)
	if err != nil {
		return fmt.Errorf("remove watched video: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchWatchedVideo records the latest run for a watched video.
func (s *Store) TouchWatchedVideo(ctx context.Context, videoID, runID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE watched_videos SET last_run_id = ?, last_analyzed_at = ? WHERE video_id = ?`,
		runID, time.Now().UTC(), videoID)
	if err != nil {
		return fmt.Errorf("touch watched video: %w", err)
	}
	return nil
}
