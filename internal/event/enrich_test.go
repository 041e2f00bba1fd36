package event

import (
	"testing"
)

func TestEnrich(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantType  string
		wantTopic string
	}{
		{"pitch night", "Startup Pitch Night Berlin", "Pitch Night", "Technology"},
		{"conference", "Global Web3 Conference", "Conference", "Web3"},
		{"summit maps to conference", "AI Summit 2026", "Conference", "AI"},
		{"hackathon", "48h Blockchain Hackathon", "Hackathon", "Web3"},
		{"webinar", "Free Online Growth Webinar", "Webinar", "Marketing"},
		{"workshop", "UX Design Workshop", "Workshop", "Design"},
		{"meetup", "Product Managers Meetup", "Meetup", "Product"},
		{"panel", "Investor Panel: Funding in 2026", "Panel", "Startup Funding"},
		{"exhibition", "HealthTech Expo", "Exhibition", "Health"},
		{"unmatched", "Annual Gala Dinner", "Other", "General"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Enrich(tt.title)
			if got.Type != tt.wantType {
				t.Errorf("Enrich(%q).Type = %q, want %q", tt.title, got.Type, tt.wantType)
			}
			if got.Topic != tt.wantTopic {
				t.Errorf("Enrich(%q).Topic = %q, want %q", tt.title, got.Topic, tt.wantTopic)
			}
		})
	}
}

func TestEnrichTags(t *testing.T) {
	t.Run("online title tagged online", func(t *testing.T) {
		got := Enrich("Online AI Workshop")
		if !hasTag(got.Tags, "online") {
			t.Errorf("tags = %v, want online", got.Tags)
		}
		if hasTag(got.Tags, "in-person") {
			t.Errorf("tags = %v, should not contain in-person", got.Tags)
		}
	})

	t.Run("default is in-person", func(t *testing.T) {
		got := Enrich("AI Workshop")
		if !hasTag(got.Tags, "in-person") {
			t.Errorf("tags = %v, want in-person", got.Tags)
		}
	})

	t.Run("free and beginner markers", func(t *testing.T) {
		got := Enrich("Free Introduction to Web3")
		if !hasTag(got.Tags, "free") || !hasTag(got.Tags, "beginner-friendly") {
			t.Errorf("tags = %v, want free and beginner-friendly", got.Tags)
		}
	})

	t.Run("tags deduplicated", func(t *testing.T) {
		// "tech" comes from the AI topic rule; it must appear once
		got := Enrich("AI and tech meetup")
		count := 0
		for _, tag := range got.Tags {
			if tag == "tech" {
				count++
			}
		}
		if count != 1 {
			t.Errorf("tag tech appears %d times in %v, want 1", count, got.Tags)
		}
	})
}

func TestApplyEnrichment(t *testing.T) {
	t.Run("fills empty fields", func(t *testing.T) {
		rec := Record{Title: "Crypto Hackathon"}
		ApplyEnrichment(&rec)
		if rec.Type != "Hackathon" {
			t.Errorf("type = %q, want Hackathon", rec.Type)
		}
		if rec.Topic != "Web3" {
			t.Errorf("topic = %q, want Web3", rec.Topic)
		}
		if len(rec.Tags) == 0 {
			t.Error("tags should be filled from inference")
		}
	})

	t.Run("keeps supplied fields", func(t *testing.T) {
		rec := Record{
			Title: "Crypto Hackathon",
			Type:  "Competition",
			Topic: "Finance",
			Tags:  []string{"custom"},
		}
		ApplyEnrichment(&rec)
		if rec.Type != "Competition" || rec.Topic != "Finance" {
			t.Errorf("supplied type/topic overwritten: %q / %q", rec.Type, rec.Topic)
		}
		if len(rec.Tags) != 1 || rec.Tags[0] != "custom" {
			t.Errorf("supplied tags overwritten: %v", rec.Tags)
		}
	})
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
