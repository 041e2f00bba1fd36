package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ErrNotFound is returned when an event does not exist.
var ErrNotFound = errors.New("event not found")

// Repository defines persistence for submitted events.
type Repository interface {
	// Insert stores a new event and assigns its id.
	Insert(ctx context.Context, rec *Record) error

	// GetByID retrieves an event by its id.
	GetByID(ctx context.Context, id int) (*Record, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
// Used for testing and development.
type InMemoryRepository struct {
	events map[int]*Record
	nextID int
}

// NewInMemoryRepository creates a new in-memory event repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		events: make(map[int]*Record),
		nextID: 1,
	}
}

// Insert stores a copy of the record and assigns the next id.
func (r *InMemoryRepository) Insert(_ context.Context, rec *Record) error {
	rec.ID = r.nextID
	r.nextID++

	stored := *rec
	stored.Tags = append([]string(nil), rec.Tags...)
	r.events[stored.ID] = &stored
	return nil
}

// GetByID retrieves an event by id. Returns ErrNotFound when absent.
func (r *InMemoryRepository) GetByID(_ context.Context, id int) (*Record, error) {
	rec, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *rec
	out.Tags = append([]string(nil), rec.Tags...)
	return &out, nil
}

// PostgresRepository persists events in the events table.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a Postgres-backed event repository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores a new event row. Tags are stored as a text array.
func (r *PostgresRepository) Insert(ctx context.Context, rec *Record) error {
	const query = `
		INSERT INTO events (title, description, location, type, topic, date, url, tags, is_featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}

	err := r.db.QueryRowContext(ctx, query,
		rec.Title,
		rec.Description,
		rec.Location,
		rec.Type,
		rec.Topic,
		rec.Date,
		nullable(rec.URL),
		pq.Array(tags),
		rec.IsFeatured,
		rec.CreatedAt,
		rec.UpdatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetByID retrieves an event row by id. Returns ErrNotFound when absent.
func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Record, error) {
	const query = `
		SELECT id, title, description, location, type, topic, date, url, tags, is_featured, created_at, updated_at
		FROM events
		WHERE id = $1`

	var (
		rec  Record
		url  sql.NullString
		tags pq.StringArray
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.Title,
		&rec.Description,
		&rec.Location,
		&rec.Type,
		&rec.Topic,
		&rec.Date,
		&url,
		&tags,
		&rec.IsFeatured,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}

	rec.URL = url.String
	rec.Tags = []string(tags)
	return &rec, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
