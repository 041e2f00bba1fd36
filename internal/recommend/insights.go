package recommend

// genericReason is used when the role has no fallback sentence of its own.
const genericReason = "Relevant to your startup journey"

// fallbackReasons are the per-role match reasons used when an event has no
// role-specific value proposition.
var fallbackReasons = map[string]string{
	"founder":    "Great networking and learning opportunity for founders",
	"investor":   "Excellent for discovering investment opportunities",
	"employee":   "Perfect for career growth and skill development",
	"corporate":  "Ideal for understanding startup innovation",
	"enthusiast": "Perfect introduction to the startup ecosystem",
}

// roleLabels are the display tags attached when an event explicitly targets
// the user's role.
var roleLabels = map[string]string{
	"founder":    "For Founders",
	"investor":   "Investor Focus",
	"employee":   "Career Growth",
	"corporate":  "Enterprise",
	"enthusiast": "Community",
}

// RoleInsights describes how recommendations are biased for a role.
type RoleInsights struct {
	RoleDescription        string   `json:"role_description"`
	RecommendationStrategy string   `json:"recommendation_strategy"`
	TopBenefits            []string `json:"top_benefits"`
}

// roleInsights holds the per-role insight copy. Unknown roles fall back to
// the enthusiast entry.
var roleInsights = map[string]RoleInsights{
	"founder": {
		RoleDescription:        "Entrepreneur building or leading a startup",
		RecommendationStrategy: "Prioritizing funding opportunities, founder networking, and growth strategies",
		TopBenefits:            []string{"Funding Opportunities", "Founder Network", "Growth Strategies"},
	},
	"investor": {
		RoleDescription:        "Professional investing in startups and scale-ups",
		RecommendationStrategy: "Focusing on deal flow, portfolio insights, and industry trends",
		TopBenefits:            []string{"Deal Flow", "Market Insights", "Portfolio Support"},
	},
	"employee": {
		RoleDescription:        "Professional working at an early-stage company",
		RecommendationStrategy: "Emphasizing career growth, skill development, and networking",
		TopBenefits:            []string{"Career Growth", "Skill Building", "Professional Network"},
	},
	"corporate": {
		RoleDescription:        "Innovation professional within established companies",
		RecommendationStrategy: "Highlighting startup partnerships, innovation strategies, and market trends",
		TopBenefits:            []string{"Innovation Insights", "Startup Partnerships", "Market Trends"},
	},
	"enthusiast": {
		RoleDescription:        "Individual passionate about the startup ecosystem",
		RecommendationStrategy: "Curating learning experiences, community events, and ecosystem insights",
		TopBenefits:            []string{"Learning Opportunities", "Community Building", "Ecosystem Insights"},
	},
}

// InsightsForRole returns the insight copy for a role, falling back to the
// enthusiast entry for unknown roles.
func InsightsForRole(role string) RoleInsights {
	if insights, ok := roleInsights[role]; ok {
		return insights
	}
	return roleInsights["enthusiast"]
}
