package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tubepulse/types"
)

// RunMeta is the list view of a run, without its comments.
type RunMeta struct {
	ID           string    `json:"id"`
	VideoID      string    `json:"video_id"`
	Source       string    `json:"source"`
	FetchedAt    time.Time `json:"fetched_at"`
	CommentCount int       `json:"comment_count"`
}

// SaveRun stores a finished run and its comments in one transaction.
func (s *Store) SaveRun(ctx context.Context, run *types.AnalysisRun) error {
	summaryJSON, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var digestSummary, digestSource sql.NullString
	if run.Digest != nil {
		digestSummary = sql.NullString{String: run.Digest.Summary, Valid: true}
		digestSource = sql.NullString{String: string(run.Digest.Source), Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, video_id, source, fetched_at, comment_count, summary_json, digest_summary, digest_source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.VideoID, run.Source, run.FetchedAt, len(run.Comments), string(summaryJSON), digestSummary, digestSource)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, c := range run.Comments {
		var published sql.NullTime
		if !c.PublishedAt.IsZero() {
			published = sql.NullTime{Time: c.PublishedAt, Valid: true}
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_comments (run_id, position, comment_id, author, text, clean_text, label, score, like_count, published_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, c.ID, c.Author, c.Text, c.CleanText, string(c.Label), c.Score, c.LikeCount, published)
		if err != nil {
			return fmt.Errorf("insert comment %s: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

// GetRun loads one run with its comments in fetch order.
func (s *Store) GetRun(ctx context.Context, id string) (*types.AnalysisRun, error) {
	run := &types.AnalysisRun{ID: id}

	var (
		summaryJSON   string
		digestSummary sql.NullString
		digestSource  sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT video_id, source, fetched_at, summary_json, digest_summary, digest_source FROM runs WHERE id = ?`, id).
		Scan(&run.VideoID, &run.Source, &run.FetchedAt, &summaryJSON, &digestSummary, &digestSource)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select run: %w", err)
	}

	if err := json.Unmarshal([]byte(summaryJSON), &run.Summary); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w", err)
	}

	if digestSummary.Valid {
		run.Digest = &types.Digest{
			Summary: digestSummary.String,
			Source:  types.DigestSource(digestSource.String),
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT comment_id, author, text, clean_text, label, score, like_count, published_at
		 FROM run_comments WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c         types.ClassifiedComment
			label     string
			published sql.NullTime
		)
		if err := rows.Scan(&c.ID, &c.Author, &c.Text, &c.CleanText, &label, &c.Score, &c.LikeCount, &published); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.Label = types.Label(label)
		if published.Valid {
			c.PublishedAt = published.Time
		}
		run.Comments = append(run.Comments, c)
	}

	return run, rows.Err()
}

// ListRuns returns run metadata, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunMeta, error) {
	if limit < 1 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_id, source, fetched_at, comment_count FROM runs ORDER BY fetched_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer rows.Close()

	var out []RunMeta
	for rows.Next() {
		var m RunMeta
		if err := rows.Scan(&m.ID, &m.VideoID, &m.Source, &m.FetchedAt, &m.CommentCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

// DeleteRun removes a run and, via cascade, its comments.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
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
