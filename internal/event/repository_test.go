package event

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
)

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	rec := &Record{Title: "Pitch Night", Tags: []string{"startup"}}
	if err := repo.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if rec.ID != 1 {
		t.Errorf("first insert id = %d, want 1", rec.ID)
	}

	second := &Record{Title: "AI Summit"}
	if err := repo.Insert(ctx, second); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("second insert id = %d, want 2", second.ID)
	}

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Title != "Pitch Night" {
		t.Errorf("GetByID() title = %q", got.Title)
	}

	// Stored record must not alias the caller's slice
	got.Tags[0] = "mutated"
	again, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if again.Tags[0] != "startup" {
		t.Errorf("stored tags mutated through returned copy: %v", again.Tags)
	}

	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(999) error = %v, want ErrNotFound", err)
	}
}

// TestPostgresRepository exercises the Postgres repository against a real
// database. Requires DATABASE_URL; skipped otherwise.
func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		t.Skipf("database not reachable: %v", err)
	}

	repo := NewPostgresRepository(conn)

	rec := &Record{
		Title:       "Integration Test Event",
		Description: "created by repository_test",
		Type:        "Meetup",
		Topic:       "Technology",
		Tags:        []string{"tech", "networking"},
	}
	if err := repo.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("Insert() did not assign an id")
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), "DELETE FROM events WHERE id = $1", rec.ID)
	}()

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Title != rec.Title {
		t.Errorf("title = %q, want %q", got.Title, rec.Title)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "tech" || got.Tags[1] != "networking" {
		t.Errorf("tags round trip = %v", got.Tags)
	}

	if _, err := repo.GetByID(ctx, -1); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(-1) error = %v, want ErrNotFound", err)
	}
}
