package search

import (
	"testing"

	"github.com/eventscout/eventscout/internal/event"
)

func sampleEvents() []event.Record {
	return []event.Record{
		{ID: 1, Title: "Web3 Builders Meetup", Description: "Decentralized apps", Type: "Meetup", Topic: "Web3", Date: "2026-09-10", Location: "Berlin"},
		{ID: 2, Title: "AI Summit", Description: "Machine learning at scale", Type: "Conference", Topic: "AI", Date: "2026-09-12", Location: "Online", Tags: []string{"ai", "tech"}},
		{ID: 3, Title: "Founder Dinner", Description: "Invite-only networking", Type: "Networking", Topic: "Business", Date: "2026-09-10", Location: "London"},
		{ID: 4, Title: "Design Workshop", Description: "Hands-on UX session", Type: "Workshop", Topic: "Design", Date: "2026-09-15", Location: "Paris"},
	}
}

func TestSearchKeyword(t *testing.T) {
	events := sampleEvents()

	tests := []struct {
		name    string
		params  Params
		wantIDs []int
	}{
		{"title match", Params{Query: "summit"}, []int{2}},
		{"description match", Params{Query: "networking"}, []int{3}},
		{"tag match", Params{Query: "tech"}, []int{2}},
		{"location match", Params{Query: "berlin"}, []int{1}},
		{"case insensitive", Params{Query: "WEB3"}, []int{1}},
		{"no match", Params{Query: "zzzz"}, nil},
		{"single char ignored", Params{Query: "z"}, []int{1, 2, 3, 4}},
		{"whitespace query ignored", Params{Query: "   "}, []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(events, tt.params)
			assertIDs(t, got, tt.wantIDs)
		})
	}
}

func TestSearchFilters(t *testing.T) {
	events := sampleEvents()

	tests := []struct {
		name    string
		params  Params
		wantIDs []int
	}{
		{"type exact", Params{Type: "Workshop"}, []int{4}},
		{"type loose contains", Params{Type: "shop"}, []int{4}},
		{"type loose reverse contains", Params{Type: "Big Design Workshop"}, []int{4}},
		{"topic filter", Params{Topic: "ai"}, []int{2}},
		{"date exact match only", Params{Date: "2026-09-10"}, []int{1, 3}},
		{"date no partial match", Params{Date: "2026-09"}, nil},
		{"filters are ANDed", Params{Date: "2026-09-10", Type: "Meetup"}, []int{1}},
		{"keyword and filter combined", Params{Query: "dinner", Date: "2026-09-10"}, []int{3}},
		{"conflicting filters", Params{Query: "summit", Type: "Workshop"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(events, tt.params)
			assertIDs(t, got, tt.wantIDs)
		})
	}
}

func TestSearchLimit(t *testing.T) {
	events := sampleEvents()

	if got := Search(events, Params{Limit: 2}); len(got) != 2 {
		t.Errorf("limit 2 returned %d results", len(got))
	}

	// Default limit applies when unset
	many := make([]event.Record, 0, 10)
	for i := 1; i <= 10; i++ {
		many = append(many, event.Record{ID: i, Title: "Event"})
	}
	if got := Search(many, Params{}); len(got) != DefaultLimit {
		t.Errorf("default limit returned %d results, want %d", len(got), DefaultLimit)
	}

	// Filter does not truncate
	if got := Filter(many, Params{}); len(got) != 10 {
		t.Errorf("Filter() truncated to %d results", len(got))
	}
}

func TestSearchPreservesInputOrder(t *testing.T) {
	events := sampleEvents()
	got := Search(events, Params{Date: "2026-09-10"})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("results out of input order: %v", ids(got))
	}
}

func TestSearchDoesNotMutateInput(t *testing.T) {
	events := sampleEvents()
	_ = Search(events, Params{Query: "summit"})
	if events[0].ID != 1 || events[3].ID != 4 {
		t.Error("input slice was mutated")
	}
}

func assertIDs(t *testing.T, got []event.Record, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got ids %v, want %v", ids(got), want)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("result[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
}

func ids(records []event.Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
