package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
)

// NewsRepository handles database operations for delivered news items
type NewsRepository struct {
	db *DB
}

// NewNewsRepository creates a new news item repository
func NewNewsRepository(db *DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// Exists reports whether an item with the given GUID has already been
// delivered.
func (r *NewsRepository) Exists(guid string) (bool, error) {
	var found string
	err := r.db.QueryRow("SELECT guid FROM news_items WHERE guid = ? LIMIT 1", guid).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, &StoreError{Op: "lookup", Err: err}
	}
	return true, nil
}

// Store upserts a delivered news item keyed by GUID. Related items are
// serialized into the related_items JSON column.
func (r *NewsRepository) Store(item NewsItem) error {
	related := item.RelatedItems
	if related == nil {
		related = []RelatedItem{}
	}
	relatedJSON, err := json.Marshal(related)
	if err != nil {
		return &StoreError{Op: "encode", Err: err}
	}

	ib := sqlbuilder.NewInsertBuilder()
	ib.ReplaceInto("news_items").
		Cols("guid", "title", "link", "topic", "published_at", "related_items").
		Values(item.GUID, item.Title, item.Link, item.Topic, item.PublishedAt, string(relatedJSON))
	query, args := ib.Build()

	if _, err := r.db.Exec(query, args...); err != nil {
		return &StoreError{Op: "store", Err: err}
	}
	return nil
}

// Count returns the total number of stored news items.
func (r *NewsRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM news_items").Scan(&count)
	if err != nil {
		return 0, &StoreError{Op: "count", Err: err}
	}
	return count, nil
}

// Get returns a stored news item by GUID, or nil when absent.
func (r *NewsRepository) Get(guid string) (*NewsItem, error) {
	var item NewsItem
	var publishedAt sql.NullTime
	var relatedJSON string

	err := r.db.QueryRow(`
		SELECT guid, title, link, topic, published_at, related_items, created_at
		FROM news_items
		WHERE guid = ?
	`, guid).Scan(&item.GUID, &item.Title, &item.Link, &item.Topic,
		&publishedAt, &relatedJSON, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "get", Err: err}
	}

	if publishedAt.Valid {
		item.PublishedAt = &publishedAt.Time
	}
	if err := json.Unmarshal([]byte(relatedJSON), &item.RelatedItems); err != nil {
		return nil, &StoreError{Op: "decode", Err: fmt.Errorf("related items for %s: %w", guid, err)}
	}

	return &item, nil
}

// Reset deletes all stored news items. Used when a run starts in
// initialize mode.
func (r *NewsRepository) Reset() error {
	if _, err := r.db.Exec("DELETE FROM news_items"); err != nil {
		return &StoreError{Op: "reset", Err: err}
	}
	return nil
}
