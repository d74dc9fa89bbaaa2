package database

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	if _, _, err := RunMigrations(path); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestNewsRepository_Exists(t *testing.T) {
	repo := NewNewsRepository(openTestDB(t))

	found, err := repo.Exists("missing-guid")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found {
		t.Error("Expected missing GUID to not exist")
	}

	if err := repo.Store(NewsItem{GUID: "guid-1", Title: "First"}); err != nil {
		t.Fatalf("Failed to store item: %v", err)
	}

	found, err = repo.Exists("guid-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !found {
		t.Error("Expected stored GUID to exist")
	}
}

func TestNewsRepository_Store_Upsert(t *testing.T) {
	repo := NewNewsRepository(openTestDB(t))

	pub := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	item := NewsItem{
		GUID:        "guid-1",
		Title:       "Original title",
		Link:        "https://example.com/a",
		Topic:       "Business",
		PublishedAt: &pub,
		RelatedItems: []RelatedItem{
			{Title: "Related", URL: "https://example.com/b", Press: "Example Press"},
		},
	}
	if err := repo.Store(item); err != nil {
		t.Fatalf("Failed to store item: %v", err)
	}

	item.Title = "Updated title"
	if err := repo.Store(item); err != nil {
		t.Fatalf("Failed to restore item: %v", err)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Failed to count items: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 item after upsert, got %d", count)
	}

	got, err := repo.Get("guid-1")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if got == nil {
		t.Fatal("Expected stored item, got nil")
	}
	if got.Title != "Updated title" {
		t.Errorf("Expected updated title, got %q", got.Title)
	}
	if got.Topic != "Business" {
		t.Errorf("Expected topic Business, got %q", got.Topic)
	}
	if len(got.RelatedItems) != 1 || got.RelatedItems[0].Press != "Example Press" {
		t.Errorf("Related items did not round-trip: %+v", got.RelatedItems)
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(pub) {
		t.Errorf("Expected published_at %v, got %v", pub, got.PublishedAt)
	}
}

func TestNewsRepository_Get_Missing(t *testing.T) {
	repo := NewNewsRepository(openTestDB(t))

	got, err := repo.Get("missing-guid")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing GUID, got %+v", got)
	}
}

func TestNewsRepository_Reset(t *testing.T) {
	repo := NewNewsRepository(openTestDB(t))

	for _, guid := range []string{"guid-1", "guid-2", "guid-3"} {
		if err := repo.Store(NewsItem{GUID: guid}); err != nil {
			t.Fatalf("Failed to store %s: %v", guid, err)
		}
	}

	if err := repo.Reset(); err != nil {
		t.Fatalf("Failed to reset: %v", err)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Failed to count items: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty table after reset, got %d items", count)
	}
}
