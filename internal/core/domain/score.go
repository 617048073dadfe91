package domain

import "math"

const defaultValence = 0.5

// ScoreFeatures compares candidate audio features against a target and
// returns the negated Euclidean distance in normalized feature space, so a
// perfect match scores 0 and larger mismatches score more negative.
//
// Tempo is normalized onto a 0..1 scale via (tempo-60)/(220-60); values
// outside the BPM range produce out-of-[0,1] coordinates, which is fine for a
// relative distance metric and deliberately not clamped.
func ScoreFeatures(features, target AudioFeatures) float64 {
	dist := math.Sqrt(
		sq(normTempo(features.Tempo)-normTempo(target.Tempo)) +
			sq(features.Energy-target.Energy) +
			sq(features.Danceability-target.Danceability) +
			sq(valenceOrDefault(features.Valence)-valenceOrDefault(target.Valence)))

	return -dist
}

// TargetFeatures projects the spec onto the feature space used by
// ScoreFeatures, taking the midpoint of the tempo range as the tempo target.
func (s PlaylistSpec) TargetFeatures() AudioFeatures {
	return AudioFeatures{
		Tempo:        (s.TempoRange.Min + s.TempoRange.Max) / 2,
		Energy:       s.Energy,
		Danceability: s.Danceability,
		Valence:      s.Valence,
	}
}

func normTempo(tempo float64) float64 {
	return (tempo - TempoMin) / (TempoMax - TempoMin)
}

func valenceOrDefault(v *float64) float64 {
	if v == nil {
		return defaultValence
	}
	return *v
}

func sq(x float64) float64 {
	return x * x
}
