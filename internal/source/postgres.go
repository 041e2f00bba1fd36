package source

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// PostgresSource reads the events table as a raw tabular source. Columns are
// mapped to canonical field names so the aggregator normalizes database rows
// the same way it normalizes CSV rows.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource creates a source backed by the events table.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Name identifies the database source in logs.
func (s *PostgresSource) Name() string { return "postgres:events" }

// Rows queries every event row, in id order.
func (s *PostgresSource) Rows(ctx context.Context) ([]map[string]string, error) {
	const query = `
		SELECT id, title, description, location, type, topic, date, url, tags, is_featured, created_at, updated_at
		FROM events
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []map[string]string
	for rows.Next() {
		var (
			id                   int
			title                string
			description          sql.NullString
			location             sql.NullString
			typ                  sql.NullString
			topic                sql.NullString
			date                 sql.NullString
			url                  sql.NullString
			tags                 pq.StringArray
			isFeatured           bool
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &title, &description, &location, &typ, &topic, &date, &url, &tags, &isFeatured, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}

		row := map[string]string{
			"id":          strconv.Itoa(id),
			"title":       title,
			"description": description.String,
			"location":    location.String,
			"type":        typ.String,
			"topic":       topic.String,
			"date":        date.String,
			"url":         url.String,
			"tags":        strings.Join(tags, ","),
			"is_featured": strconv.FormatBool(isFeatured),
			"created_at":  createdAt.UTC().Format(time.RFC3339),
			"updated_at":  updatedAt.UTC().Format(time.RFC3339),
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}

	return out, nil
}
