package event

import "strings"

// Enrichment is the inferred classification for an event whose source lacks
// dedicated type/topic/tag columns.
type Enrichment struct {
	Type  string
	Topic string
	Tags  []string
}

// typeRules maps an inferred event type to the title keywords that imply it,
// plus the tags that come with that type. First match wins.
var typeRules = []struct {
	keywords []string
	typ      string
	tags     []string
}{
	{[]string{"pitch"}, "Pitch Night", []string{"startup", "early-stage"}},
	{[]string{"conference", "summit"}, "Conference", []string{"flagship", "networking"}},
	{[]string{"hackathon"}, "Hackathon", []string{"coding", "competition"}},
	{[]string{"webinar", "online"}, "Webinar", []string{"virtual"}},
	{[]string{"workshop"}, "Workshop", []string{"hands-on", "learning"}},
	{[]string{"meetup"}, "Meetup", []string{"community", "networking"}},
	{[]string{"panel", "discussion"}, "Panel", []string{"discussion", "insights"}},
	{[]string{"expo", "exhibition"}, "Exhibition", []string{"showcase", "industry"}},
}

// topicRules maps an inferred topic to its trigger keywords and tags.
// First match wins.
var topicRules = []struct {
	keywords []string
	topic    string
	tags     []string
}{
	{[]string{"web3", "blockchain", "crypto"}, "Web3", []string{"web3", "blockchain"}},
	{[]string{"ai", "machine learning", "artificial intelligence"}, "AI", []string{"ai", "tech"}},
	{[]string{"marketing", "growth"}, "Marketing", []string{"marketing", "business"}},
	{[]string{"funding", "vc", "investor"}, "Startup Funding", []string{"funding", "investment"}},
	{[]string{"design", "ux", "ui"}, "Design", []string{"design", "creative"}},
	{[]string{"product", "management"}, "Product", []string{"product", "management"}},
	{[]string{"tech", "technology"}, "Technology", []string{"tech", "innovation"}},
	{[]string{"business", "entrepreneur"}, "Business", []string{"business", "entrepreneurship"}},
	{[]string{"health", "wellness"}, "Health", []string{"health", "wellness"}},
	{[]string{"education", "learning"}, "Education", []string{"education", "learning"}},
}

// Enrich infers a type, topic, and tag set from an event title. Unmatched
// titles get type "Other" and topic "General". Tags additionally encode
// format (online vs in-person), cost, and audience level, deduplicated in
// first-seen order.
func Enrich(title string) Enrichment {
	lower := strings.ToLower(title)
	e := Enrichment{Type: "Other", Topic: "General"}
	var tags []string

	for _, rule := range typeRules {
		if containsAny(lower, rule.keywords) {
			e.Type = rule.typ
			tags = append(tags, rule.tags...)
			break
		}
	}

	for _, rule := range topicRules {
		if containsAny(lower, rule.keywords) {
			e.Topic = rule.topic
			tags = append(tags, rule.tags...)
			break
		}
	}

	if containsAny(lower, []string{"online", "virtual", "zoom"}) {
		tags = append(tags, "online")
	} else {
		tags = append(tags, "in-person")
	}

	if strings.Contains(lower, "free") {
		tags = append(tags, "free")
	}

	if containsAny(lower, []string{"beginner", "introduction"}) {
		tags = append(tags, "beginner-friendly")
	}
	if containsAny(lower, []string{"advanced", "expert"}) {
		tags = append(tags, "advanced")
	}

	e.Tags = dedupe(tags)
	return e
}

// ApplyEnrichment fills a record's empty type, topic, and tags from the
// title-based inference. Fields the source already supplied are untouched.
func ApplyEnrichment(rec *Record) {
	e := Enrich(rec.Title)
	if rec.Type == "" {
		rec.Type = e.Type
	}
	if rec.Topic == "" {
		rec.Topic = e.Topic
	}
	if len(rec.Tags) == 0 {
		rec.Tags = e.Tags
	}
}

// isVirtualLocation reports whether a location string implies the event can
// be attended remotely.
func isVirtualLocation(location string) bool {
	lower := strings.ToLower(location)
	return strings.Contains(lower, "online") || strings.Contains(lower, "virtual")
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func dedupe(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := tags[:0]
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
