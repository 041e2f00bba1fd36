// Package source provides the raw record sources feeding the event
// aggregator: CSV files on disk, CSV objects in S3-compatible storage, and a
// Postgres events table. Sources are independent; one failing never aborts
// the others.
package source

import (
	"context"
	"log/slog"

	"github.com/eventscout/eventscout/internal/event"
)

// Source is one origin of raw tabular event data.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string

	// Rows returns every row as a field-name → value mapping, in the
	// source's own order.
	Rows(ctx context.Context) ([]map[string]string, error)
}

// LoadAll fetches rows from every source in order and tags them with their
// source and row indexes for the aggregator. A source that fails to load is
// logged and skipped; it still consumes its source index so synthetic ids
// stay stable across partial failures. The returned count is the number of
// sources that failed.
func LoadAll(ctx context.Context, sources []Source) ([]event.RawRecord, int) {
	var records []event.RawRecord
	failed := 0

	for srcIdx, src := range sources {
		rows, err := src.Rows(ctx)
		if err != nil {
			slog.WarnContext(ctx, "skipping unavailable source",
				"source", src.Name(),
				"source_index", srcIdx,
				"error", err)
			failed++
			continue
		}
		for rowIdx, row := range rows {
			records = append(records, event.RawRecord{
				Fields:      row,
				SourceIndex: srcIdx,
				RowIndex:    rowIdx,
			})
		}
	}

	return records, failed
}
