package event

import (
	"strconv"
	"strings"
	"time"

	"github.com/eventscout/eventscout/internal/validate"
)

// RawRecord is one row from a tabular source: a field-name → value mapping
// tagged with the index of the source it came from and its row position
// within that source. Field names are whatever the source's headers say.
type RawRecord struct {
	Fields      map[string]string
	SourceIndex int
	RowIndex    int
}

// Get returns the trimmed value for the first alias that has a non-empty
// value, or empty string when none do.
func (r RawRecord) Get(aliases ...string) string {
	for _, key := range aliases {
		if v := strings.TrimSpace(r.Fields[key]); v != "" {
			return v
		}
	}
	return ""
}

// Alias tables for the logical fields, in resolution priority order.
// Kept as data rather than code branches so new source headers only need a
// table entry.
var (
	idAliases          = []string{"id", "ID", "Event ID", "event_id"}
	titleAliases       = []string{"title", "name", "event_title", "Event Name"}
	descriptionAliases = []string{"description", "summary", "overview", "Focus"}
	locationAliases    = []string{"location", "city", "venue", "Location"}
	typeAliases        = []string{"type", "category", "Focus"}
	topicAliases       = []string{"topic", "track", "Focus"}
	dateAliases        = []string{"date", "event_date", "Date"}
	urlAliases         = []string{"url", "link", "URL", "website", "registration", "event_url", "source"}
	tagAliases         = []string{"tags", "topics", "Focus"}
	featuredAliases    = []string{"is_featured", "featured"}
)

// synthesizedIDStride spaces synthetic ids so two sources never collide even
// when both start at row 0. Sources with more than 10000 rows would overlap;
// none of the current feeds come close.
const synthesizedIDStride = 10000

// Normalize converts a single raw row into a Record. It never fails: every
// missing or malformed field falls back to its documented default.
func Normalize(raw RawRecord, now time.Time) Record {
	rec := Record{
		ID:          resolveID(raw),
		Title:       raw.Get(titleAliases...),
		Description: raw.Get(descriptionAliases...),
		Location:    raw.Get(locationAliases...),
		Type:        raw.Get(typeAliases...),
		Topic:       raw.Get(topicAliases...),
		Date:        raw.Get(dateAliases...),
		Tags:        splitTags(raw.Get(tagAliases...)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if rec.Title == "" {
		rec.Title = PlaceholderTitle
	}

	if u, ok := validate.EventURL(raw.Get(urlAliases...)); ok {
		rec.URL = u
	}

	rec.IsFeatured = strings.EqualFold(raw.Get(featuredAliases...), "true")

	if ts := parseTimestamp(raw.Fields["created_at"]); !ts.IsZero() {
		rec.CreatedAt = ts
	}
	if ts := parseTimestamp(raw.Fields["updated_at"]); !ts.IsZero() {
		rec.UpdatedAt = ts
	}

	return rec
}

// Aggregate normalizes raw rows from any number of sources into one flat
// candidate list. Rows keep their input order; every input row produces
// exactly one output record.
func Aggregate(rows []RawRecord) []Record {
	now := time.Now().UTC()
	out := make([]Record, 0, len(rows))
	for _, raw := range rows {
		out = append(out, Normalize(raw, now))
	}
	return out
}

// resolveID parses the natural identifier when present and positive;
// otherwise it synthesizes a batch-unique id from the source and row indexes.
func resolveID(raw RawRecord) int {
	if v := raw.Get(idAliases...); v != "" {
		if id, err := strconv.Atoi(v); err == nil && id > 0 {
			return id
		}
	}
	return raw.SourceIndex*synthesizedIDStride + raw.RowIndex + 1
}

// splitTags splits a comma-delimited tag field, trimming each piece and
// dropping empties.
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// parseTimestamp attempts RFC3339 parsing of a source timestamp field.
// Returns the zero time when the field is absent or unparseable.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return ts
}
