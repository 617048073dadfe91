package domain

// Track represents a candidate or result track. Identity fields come from the
// catalog service and are never mutated here; collections of tracks are only
// annotated, ranked, and filtered.
type Track struct {
	ID         string   `json:"id"`
	URI        string   `json:"uri"`
	Name       string   `json:"name"`
	Artists    []string `json:"artists"`
	PreviewURL string   `json:"preview_url,omitempty"`
	Popularity int      `json:"popularity"`

	Features *AudioFeatures `json:"features,omitempty"`
}

// AudioFeatures holds the audio-level attributes used for feature scoring.
// Valence is optional on both candidates and targets.
type AudioFeatures struct {
	Tempo        float64  `json:"tempo"`
	Energy       float64  `json:"energy"`
	Danceability float64  `json:"danceability"`
	Valence      *float64 `json:"valence,omitempty"`
}

// Artist is a minimal catalog artist reference, used when resolving seed
// names to catalog identifiers.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlaylistRef points at a playlist created on the catalog service.
type PlaylistRef struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
