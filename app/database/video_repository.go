package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
)

// VideoRepository handles database operations for delivered videos
type VideoRepository struct {
	db *DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Exists reports whether a video with the given ID has already been
// delivered.
func (r *VideoRepository) Exists(videoID string) (bool, error) {
	var found string
	err := r.db.QueryRow("SELECT video_id FROM videos WHERE video_id = ? LIMIT 1", videoID).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, &StoreError{Op: "lookup", Err: err}
	}
	return true, nil
}

// Store upserts a delivered video keyed by video ID.
func (r *VideoRepository) Store(v Video) error {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return &StoreError{Op: "encode", Err: err}
	}

	ib := sqlbuilder.NewInsertBuilder()
	ib.ReplaceInto("videos").
		Cols("video_id", "title", "url", "channel_id", "channel_title",
			"description", "thumbnail_url", "duration", "category_name",
			"tags", "scheduled_start_at", "published_at").
		Values(v.VideoID, v.Title, v.URL, v.ChannelID, v.ChannelTitle,
			v.Description, v.ThumbnailURL, v.Duration, v.CategoryName,
			string(tagsJSON), v.ScheduledStartAt, v.PublishedAt)
	query, args := ib.Build()

	if _, err := r.db.Exec(query, args...); err != nil {
		return &StoreError{Op: "store", Err: err}
	}
	return nil
}

// Count returns the total number of stored videos.
func (r *VideoRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM videos").Scan(&count)
	if err != nil {
		return 0, &StoreError{Op: "count", Err: err}
	}
	return count, nil
}

// Get returns a stored video by ID, or nil when absent.
func (r *VideoRepository) Get(videoID string) (*Video, error) {
	var v Video
	var scheduledAt, publishedAt sql.NullTime
	var tagsJSON string

	err := r.db.QueryRow(`
		SELECT video_id, title, url, channel_id, channel_title,
		       description, thumbnail_url, duration, category_name,
		       tags, scheduled_start_at, published_at, created_at
		FROM videos
		WHERE video_id = ?
	`, videoID).Scan(&v.VideoID, &v.Title, &v.URL, &v.ChannelID, &v.ChannelTitle,
		&v.Description, &v.ThumbnailURL, &v.Duration, &v.CategoryName,
		&tagsJSON, &scheduledAt, &publishedAt, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "get", Err: err}
	}

	if scheduledAt.Valid {
		v.ScheduledStartAt = &scheduledAt.Time
	}
	if publishedAt.Valid {
		v.PublishedAt = &publishedAt.Time
	}
	if err := json.Unmarshal([]byte(tagsJSON), &v.Tags); err != nil {
		return nil, &StoreError{Op: "decode", Err: fmt.Errorf("tags for %s: %w", videoID, err)}
	}

	return &v, nil
}

// Reset deletes all stored videos. Used when a run starts in initialize
// mode.
func (r *VideoRepository) Reset() error {
	if _, err := r.db.Exec("DELETE FROM videos"); err != nil {
		return &StoreError{Op: "reset", Err: err}
	}
	return nil
}
