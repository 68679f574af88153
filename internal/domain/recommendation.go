package domain

// Recommendation is a fully enriched movie plus its match score
// (0-100, one decimal) and the human-readable reasoning behind it.
type Recommendation struct {
	Movie
	MatchScore float64 `json:"match_score"`
	Reasoning  string  `json:"reasoning"`
}

type RecommendationResult struct {
	Recommendations []Recommendation
	CacheHit        bool
}

type RecommendationMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}
