package recommend

import (
	"sort"
	"strings"

	"github.com/eventscout/eventscout/internal/event"
)

// DefaultLimit is the number of recommendations returned when no limit is
// supplied.
const DefaultLimit = 6

// MaxPersonalizedTags caps the display tags attached to a ranked event.
const MaxPersonalizedTags = 3

// RankedEvent is an event candidate extended with its personalization
// results.
type RankedEvent struct {
	event.Record
	MatchScore       int      `json:"match_score"`
	MatchReason      string   `json:"match_reason"`
	PersonalizedTags []string `json:"personalized_tags"`
}

// Engine computes role-based recommendations over a candidate snapshot.
type Engine struct {
	weights *Weights
}

// NewEngine creates an Engine with the given weights. Nil weights fall back
// to the defaults.
func NewEngine(weights *Weights) *Engine {
	if weights == nil {
		weights = DefaultWeights()
	}
	return &Engine{weights: weights}
}

// Recommend scores every candidate for the role and returns the top matches
// in descending score order. The sort is stable: equally-scored candidates
// keep their input order. Limit <= 0 falls back to DefaultLimit.
func (e *Engine) Recommend(events []event.Record, role string, limit int) []RankedEvent {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ranked := make([]RankedEvent, 0, len(events))
	for _, ev := range events {
		meta := ev.EffectiveMetadata()
		ranked = append(ranked, RankedEvent{
			Record:           ev,
			MatchScore:       Score(meta, role, e.weights),
			MatchReason:      matchReason(meta, role),
			PersonalizedTags: personalizedTags(meta, role),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// matchReason returns the event's role-specific value proposition, falling
// back to a fixed per-role sentence. Unknown roles get the generic fallback.
func matchReason(meta *event.Metadata, role string) string {
	if v, ok := meta.RoleSpecificValue[role]; ok && v != "" {
		return v
	}
	if reason, ok := fallbackReasons[role]; ok {
		return reason
	}
	return genericReason
}

// benefitTags maps keywords in the primary-benefit string to display tags,
// checked in this fixed order.
var benefitTags = []struct {
	keyword string
	tag     string
}{
	{"Funding", "Funding"},
	{"Networking", "Networking"},
	{"Learning", "Learning"},
	{"Career", "Career"},
}

// personalizedTags builds up to MaxPersonalizedTags display tags in priority
// order: role label, benefit keywords, then practical tags. Duplicates are
// skipped.
func personalizedTags(meta *event.Metadata, role string) []string {
	tags := make([]string, 0, MaxPersonalizedTags)
	seen := make(map[string]bool, MaxPersonalizedTags)

	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	if targetsRole(meta, role) {
		if label, ok := roleLabels[role]; ok {
			add(label)
		}
	}

	for _, bt := range benefitTags {
		// Case-sensitive by convention: benefit strings use title case.
		if strings.Contains(meta.PrimaryBenefit, bt.keyword) {
			add(bt.tag)
		}
	}

	if meta.Price == "Free" {
		add("Free")
	}
	if meta.VirtualOption {
		add("Virtual")
	}
	if meta.TimeCommitment == "short" {
		add("Quick")
	}
	if meta.NetworkingLevel == "high" {
		add("High Impact")
	}

	if len(tags) > MaxPersonalizedTags {
		tags = tags[:MaxPersonalizedTags]
	}
	return tags
}
