package models

// Post types understood by the content generator.
const (
	PostTypePromo            = "promo"
	PostTypeBusinessTips     = "business_tips"
	PostTypeIndustryInsights = "industry_insights"
	PostTypeSeasonal         = "seasonal"
	PostTypeGeneral          = "general"
)

var PostTypes = []string{
	PostTypePromo,
	PostTypeBusinessTips,
	PostTypeIndustryInsights,
	PostTypeSeasonal,
	PostTypeGeneral,
}

// GenerationPreferences are the user's choices for a generation run.
type GenerationPreferences struct {
	Tone     string `json:"tone"`
	PostType string `json:"post_type"`
	Count    int    `json:"count"`
}

// DefaultPreferences mirrors the defaults a fresh session starts with.
func DefaultPreferences() GenerationPreferences {
	return GenerationPreferences{
		Tone:     "motivational",
		PostType: PostTypePromo,
		Count:    3,
	}
}
