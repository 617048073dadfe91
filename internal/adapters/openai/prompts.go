package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
)

const specSystemPrompt = `You are a playlist generator.
Reply ONLY with strict JSON matching this schema, no prose or extra text.

{
  "genres": string[1-5],
  "tempoRange": { "min": 60-220, "max": 60-220, min <= max },
  "energy": number (0..1),
  "danceability": number (0..1),
  "valence": number (0..1),
  "seedArtists": string[] (optional, 1-2 well-known artists if relevant),
  "seedTracks": string[] (optional, 1-2 specific songs if relevant),
  "notes": string (optional, brief description)
}

REQUIRED fields: genres, tempoRange, energy, danceability, valence
OPTIONAL fields: seedArtists, seedTracks, notes`

func specUserPrompt(vibe string, hints map[string]any) string {
	lines := []string{
		"Vibe: " + vibe,
		"Tempo min/max must be between 60 and 220 BPM.",
		"Include 1-5 genres.",
		"All audio features (energy, danceability, valence) are required.",
		"If you can suggest specific well-known artists or tracks that match the vibe, include them.",
		"Reply only with JSON, no extra prose.",
	}
	if len(hints) > 0 {
		if encoded, err := json.Marshal(hints); err == nil {
			lines = append(lines, "Hints: "+string(encoded))
		}
	}
	return strings.Join(lines, "\n")
}

const strategySystemPrompt = `You are a music search strategist.
Given a vibe description and a playlist spec, design search queries for a music catalog.
Reply ONLY with strict JSON matching this schema, no prose or extra text.

{
  "searchKeywords": string[3-5] (short descriptive search terms),
  "genrePriority": string[] (genre names, most relevant first),
  "yearRange": "YYYY-YYYY" (optional, only if the vibe implies an era),
  "rationale": string (brief explanation)
}`

func strategyUserPrompt(vibe string, spec domain.PlaylistSpec) string {
	lines := []string{
		"Vibe: " + vibe,
		fmt.Sprintf("Energy: %.2f", spec.Energy),
		fmt.Sprintf("Tempo: %.0f-%.0f BPM", spec.TempoRange.Min, spec.TempoRange.Max),
		"Genres: " + strings.Join(spec.Genres, ", "),
	}
	if spec.Valence != nil {
		lines = append(lines, fmt.Sprintf("Valence: %.2f", *spec.Valence))
	}
	if len(spec.SeedArtists) > 0 {
		lines = append(lines, "Seed artists: "+strings.Join(spec.SeedArtists, ", "))
	}
	lines = append(lines,
		"Provide 3-5 search keywords, a genre priority ordering, and a year range only when the era matters.",
		"Reply only with JSON, no extra prose.")
	return strings.Join(lines, "\n")
}
