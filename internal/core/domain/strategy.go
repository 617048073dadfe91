package domain

// SearchStrategy is the prioritized search plan derived from a vibe and its
// spec. It is produced fresh per discovery request and never persisted.
type SearchStrategy struct {
	SearchKeywords []string `json:"searchKeywords"`
	GenrePriority  []string `json:"genrePriority"`
	YearRange      string   `json:"yearRange,omitempty"`
	Rationale      string   `json:"rationale,omitempty"`
}

// FallbackStrategy derives a strategy purely from the spec. It is used
// whenever strategy planning fails, so the discovery pipeline always has a
// usable strategy to work with.
func FallbackStrategy(spec PlaylistSpec) SearchStrategy {
	keywords := []string{"chill", "relaxing"}
	if spec.Energy > 0.6 {
		keywords = []string{"energetic", "upbeat"}
	}
	return SearchStrategy{
		SearchKeywords: keywords,
		GenrePriority:  append([]string(nil), spec.Genres...),
		Rationale:      "derived from spec after strategy planning failed",
	}
}
