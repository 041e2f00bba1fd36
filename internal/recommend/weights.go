package recommend

import (
	"math"

	"github.com/eventscout/eventscout/internal/event"
)

// BroadRoleThreshold is the number of target roles above which an event is
// considered broadly applicable and earns the partial role-match credit.
const BroadRoleThreshold = 3

// MaxScore is the upper clamp applied to the final rounded score.
const MaxScore = 100

// Weights holds the calibratable scoring weight configuration.
type Weights struct {
	RoleMatch      float64 `json:"role_match"`      // Direct role match credit (default: 60)
	BroadMatch     float64 `json:"broad_match"`     // Broadly-applicable credit (default: 30)
	RatingBaseline float64 `json:"rating_baseline"` // Rating pivot point (default: 4.0)
	RatingFactor   float64 `json:"rating_factor"`   // Points per rating unit above baseline (default: 15)
	LargeBonus     float64 `json:"large_bonus"`     // Attendees >= 200 (default: 10)
	MediumBonus    float64 `json:"medium_bonus"`    // Attendees >= 100 (default: 7)
	SmallBonus     float64 `json:"small_bonus"`     // Attendees >= 50 (default: 5)
	FeaturePoints  float64 `json:"feature_points"`  // Points per special feature (default: 2)
	FeatureCap     float64 `json:"feature_cap"`     // Cap on feature points (default: 10)
	FeaturedBonus  float64 `json:"featured_bonus"`  // Featured flag (default: 3)
	TrendingBonus  float64 `json:"trending_bonus"`  // Trending flag (default: 2)
}

// DefaultWeights returns the default scoring weight configuration.
// The defaults reproduce the reference formula:
//
//	60 + (rating-4.0)*15 + scale + min(features*2, 10) + 3 + 2
func DefaultWeights() *Weights {
	return &Weights{
		RoleMatch:      60,
		BroadMatch:     30,
		RatingBaseline: 4.0,
		RatingFactor:   15,
		LargeBonus:     10,
		MediumBonus:    7,
		SmallBonus:     5,
		FeaturePoints:  2,
		FeatureCap:     10,
		FeaturedBonus:  3,
		TrendingBonus:  2,
	}
}

// Score computes the match score for a candidate's metadata against a role.
// Deterministic and purely additive; the result is rounded and clamped to at
// most MaxScore. Negative sums are returned as-is (no lower clamp).
func Score(meta *event.Metadata, role string, weights *Weights) int {
	if weights == nil {
		weights = DefaultWeights()
	}

	var score float64

	// Role match
	if targetsRole(meta, role) {
		score += weights.RoleMatch
	} else if len(meta.TargetRoles) > BroadRoleThreshold {
		score += weights.BroadMatch
	}

	// Quality adjustment: ratings below the baseline subtract
	score += (meta.Rating - weights.RatingBaseline) * weights.RatingFactor

	// Scale bonus, largest applicable tier only
	switch {
	case meta.Attendees >= 200:
		score += weights.LargeBonus
	case meta.Attendees >= 100:
		score += weights.MediumBonus
	case meta.Attendees >= 50:
		score += weights.SmallBonus
	}

	// Feature richness
	score += math.Min(float64(len(meta.SpecialFeatures))*weights.FeaturePoints, weights.FeatureCap)

	// Momentum; both flags may apply
	if meta.Featured {
		score += weights.FeaturedBonus
	}
	if meta.Trending {
		score += weights.TrendingBonus
	}

	rounded := int(math.Round(score))
	if rounded > MaxScore {
		return MaxScore
	}
	return rounded
}

// targetsRole reports whether the metadata explicitly targets the role.
func targetsRole(meta *event.Metadata, role string) bool {
	for _, r := range meta.TargetRoles {
		if r == role {
			return true
		}
	}
	return false
}
