// Package search implements keyword and filter matching over a normalized
// event candidate list. All functions are pure: they never mutate their
// input and keep the input's relative order.
package search

import (
	"strings"

	"github.com/eventscout/eventscout/internal/event"
)

// DefaultLimit is the number of results returned when no limit is supplied.
const DefaultLimit = 6

// MinQueryLength is the shortest free-text query that triggers keyword
// matching. Shorter queries are treated as no keyword filter so a single
// keystroke does not match everything.
const MinQueryLength = 2

// Params are the search inputs. All fields are optional; zero values mean
// "no constraint". Limit <= 0 falls back to DefaultLimit.
type Params struct {
	Query string
	Type  string
	Topic string
	Date  string
	Limit int
}

// Search applies the structured filters and then the keyword filter, AND-ed
// together, and returns up to Limit matches in input order.
func Search(events []event.Record, params Params) []event.Record {
	results := Filter(events, params)

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Filter applies all supplied predicates without truncation. Exposed
// separately so callers that paginate themselves can reuse it.
func Filter(events []event.Record, params Params) []event.Record {
	results := make([]event.Record, 0, len(events))

	typeFilter := strings.TrimSpace(params.Type)
	topicFilter := strings.TrimSpace(params.Topic)
	dateFilter := strings.TrimSpace(params.Date)
	query := strings.ToLower(strings.TrimSpace(params.Query))
	if len(query) < MinQueryLength {
		query = ""
	}

	for _, e := range events {
		if typeFilter != "" && !looseMatch(e.Type, typeFilter) {
			continue
		}
		if topicFilter != "" && !looseMatch(e.Topic, topicFilter) {
			continue
		}
		if dateFilter != "" && strings.TrimSpace(e.Date) != dateFilter {
			continue
		}
		if query != "" && !matchesKeyword(e, query) {
			continue
		}
		results = append(results, e)
	}

	return results
}

// looseMatch compares a candidate field against a filter value
// case-insensitively, passing on equality or when either string contains the
// other. The either-direction containment deliberately tolerates free-text
// category fields that don't line up with a controlled vocabulary.
func looseMatch(field, filter string) bool {
	f := strings.ToLower(strings.TrimSpace(field))
	v := strings.ToLower(strings.TrimSpace(filter))
	return f == v || strings.Contains(f, v) || strings.Contains(v, f)
}

// matchesKeyword reports whether the lowercased query appears in any of the
// candidate's searchable fields: title, description, type, topic, location,
// or any tag.
func matchesKeyword(e event.Record, query string) bool {
	if strings.Contains(strings.ToLower(e.Title), query) ||
		strings.Contains(strings.ToLower(e.Description), query) ||
		strings.Contains(strings.ToLower(e.Type), query) ||
		strings.Contains(strings.ToLower(e.Topic), query) ||
		strings.Contains(strings.ToLower(e.Location), query) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
