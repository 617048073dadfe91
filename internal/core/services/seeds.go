package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
	"github.com/ewilliams-labs/vibecraft/internal/core/ports"
)

// catalogIDPattern matches the catalog's 22-character alphanumeric IDs.
var catalogIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]{22}$`)

const (
	maxSeedArtists = 2
	maxSeedTracks  = 1

	// featureWindow is the half-width of the tolerance window placed around
	// each target audio-feature value.
	featureWindow = 0.15

	defaultRecCount = 50
)

// Seeds holds resolved catalog identifiers for the legacy recommendation call.
type Seeds struct {
	ArtistIDs []string
	TrackIDs  []string
}

// FeatureSource supplies energy estimates for tracks whose audio features the
// catalog did not provide. The preview-analysis worker implements it.
type FeatureSource interface {
	Energy(trackID string) (float64, bool)
}

// Recommender is the legacy parameter-based recommendation path. It is kept
// to interoperate with the deprecated recommendations endpoint and is usable
// independently of the discovery engine.
type Recommender struct {
	catalog  ports.MusicCatalog
	features FeatureSource // optional
}

// NewRecommender constructs a Recommender. features may be nil.
func NewRecommender(catalog ports.MusicCatalog, features FeatureSource) *Recommender {
	return &Recommender{catalog: catalog, features: features}
}

// ResolveSeeds resolves up to 2 seed artists and 1 seed track to catalog
// identifiers. Entries that already look like catalog IDs are used verbatim;
// names are resolved via a top-1 search, and entries with no search results
// are silently dropped.
func (r *Recommender) ResolveSeeds(ctx context.Context, spec domain.PlaylistSpec, token string) (Seeds, error) {
	var seeds Seeds

	for _, artist := range firstN(spec.SeedArtists, maxSeedArtists) {
		if catalogIDPattern.MatchString(artist) {
			seeds.ArtistIDs = append(seeds.ArtistIDs, artist)
			continue
		}
		matches, err := r.catalog.SearchArtists(ctx, token, artist, 1)
		if err != nil {
			return Seeds{}, fmt.Errorf("service: resolve artist %q: %w", artist, err)
		}
		if len(matches) > 0 {
			seeds.ArtistIDs = append(seeds.ArtistIDs, matches[0].ID)
		}
	}

	for _, track := range firstN(spec.SeedTracks, maxSeedTracks) {
		if catalogIDPattern.MatchString(track) {
			seeds.TrackIDs = append(seeds.TrackIDs, track)
			continue
		}
		matches, err := r.catalog.SearchTracks(ctx, token, track, 1)
		if err != nil {
			return Seeds{}, fmt.Errorf("service: resolve track %q: %w", track, err)
		}
		if len(matches) > 0 {
			seeds.TrackIDs = append(seeds.TrackIDs, matches[0].ID)
		}
	}

	return seeds, nil
}

// BuildParameters emits the parameter map for the legacy recommendation
// call: seed lists, tempo bounds, and a target value plus a tolerance window
// clamped to [0,1] for each unit-range feature.
func BuildParameters(spec domain.PlaylistSpec, seeds Seeds, count int) map[string]string {
	if count <= 0 {
		count = defaultRecCount
	}

	params := map[string]string{
		"seed_artists": strings.Join(seeds.ArtistIDs, ","),
		"seed_tracks":  strings.Join(seeds.TrackIDs, ","),
		"limit":        strconv.Itoa(count),
		"min_tempo":    formatFeature(spec.TempoRange.Min),
		"max_tempo":    formatFeature(spec.TempoRange.Max),
	}

	addWindow := func(name string, target float64) {
		lo, hi := window(target)
		params["target_"+name] = formatFeature(target)
		params["min_"+name] = formatFeature(lo)
		params["max_"+name] = formatFeature(hi)
	}

	addWindow("energy", spec.Energy)
	addWindow("danceability", spec.Danceability)
	if spec.Valence != nil {
		addWindow("valence", *spec.Valence)
	}

	return params
}

// Recommend runs the full legacy path: resolve seeds, build parameters, call
// the recommendations endpoint, and rank candidates by feature score against
// the spec's target. Candidates without usable features keep their relative
// order after all scored ones.
func (r *Recommender) Recommend(ctx context.Context, spec domain.PlaylistSpec, token string, count int) ([]domain.Track, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	validated, err := domain.ValidateSpec(spec)
	if err != nil {
		return nil, err
	}

	seeds, err := r.ResolveSeeds(ctx, validated, token)
	if err != nil {
		return nil, err
	}

	params := BuildParameters(validated, seeds, count)
	tracks, err := r.catalog.Recommendations(ctx, token, params)
	if err != nil {
		return nil, err
	}

	return r.rankByFeatures(tracks, validated), nil
}

func (r *Recommender) rankByFeatures(tracks []domain.Track, spec domain.PlaylistSpec) []domain.Track {
	target := spec.TargetFeatures()

	type scored struct {
		track domain.Track
		score float64
		known bool
	}

	ranked := make([]scored, 0, len(tracks))
	for _, t := range tracks {
		s := scored{track: t}
		switch {
		case t.Features != nil:
			s.score = domain.ScoreFeatures(*t.Features, target)
			s.known = true
		case r.features != nil:
			if energy, ok := r.features.Energy(t.ID); ok {
				// Only energy was measured; mirroring the target on the
				// other dimensions keeps them out of the distance.
				feat := target
				feat.Energy = energy
				s.score = domain.ScoreFeatures(feat, target)
				s.known = true
			}
		}
		ranked = append(ranked, s)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].known != ranked[j].known {
			return ranked[i].known
		}
		return ranked[i].score > ranked[j].score
	})

	out := make([]domain.Track, len(ranked))
	for i, s := range ranked {
		out[i] = s.track
	}
	return out
}

func window(target float64) (float64, float64) {
	lo := target - featureWindow
	if lo < 0 {
		lo = 0
	}
	hi := target + featureWindow
	if hi > 1 {
		hi = 1
	}
	return lo, hi
}

func formatFeature(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
