package services

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ewilliams-labs/vibecraft/internal/cache"
	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
	"github.com/ewilliams-labs/vibecraft/internal/core/ports"
)

const (
	// searchPageSize is the per-query result limit requested from the catalog.
	searchPageSize = 20
	// maxResults bounds the final ranked track list.
	maxResults = 50
)

// DiscoveryMeta describes how a discovery result was produced.
type DiscoveryMeta struct {
	Strategy        domain.SearchStrategy `json:"strategy"`
	QueriesExecuted int                   `json:"queriesExecuted"`
	TotalDiscovered int                   `json:"totalDiscovered"`
}

// DiscoveryResult is the outcome of one discovery request.
type DiscoveryResult struct {
	Tracks []domain.Track `json:"tracks"`
	Meta   DiscoveryMeta  `json:"meta"`
}

// Discovery runs the vibe-to-track discovery pipeline: strategy planning,
// query building, concurrent search fan-out, dedup, and ranking. It owns the
// accumulation buffers; callers only ever see the final ranked slice.
type Discovery struct {
	catalog ports.MusicCatalog
	planner ports.StrategyPlanner
	history ports.HistoryRepository // optional
}

// NewDiscovery constructs a Discovery service. history may be nil.
func NewDiscovery(catalog ports.MusicCatalog, planner ports.StrategyPlanner, history ports.HistoryRepository) *Discovery {
	return &Discovery{catalog: catalog, planner: planner, history: history}
}

// DiscoverFromVibe is the discovery entry point: it re-validates the supplied
// spec, derives a search strategy from the vibe, expands it into queries, and
// returns the ranked tracks plus metadata.
func (d *Discovery) DiscoverFromVibe(ctx context.Context, vibe string, spec domain.PlaylistSpec, token string) (DiscoveryResult, error) {
	if token == "" {
		return DiscoveryResult{}, domain.ErrUnauthorized
	}

	validated, err := domain.ValidateSpec(spec)
	if err != nil {
		return DiscoveryResult{}, err
	}

	strategy := d.planStrategy(ctx, vibe, validated)
	queries := BuildQueries(strategy, validated)
	tracks := d.Discover(ctx, queries, validated, token)

	d.recordHistory(ctx, vibe, tracks)

	return DiscoveryResult{
		Tracks: tracks,
		Meta: DiscoveryMeta{
			Strategy:        strategy,
			QueriesExecuted: len(queries),
			TotalDiscovered: len(tracks),
		},
	}, nil
}

// Discover executes the given queries against the catalog, deduplicates by
// track identifier (first occurrence wins), ranks by descending popularity
// with a stable tie-break, and truncates to maxResults. A failed query is
// logged and skipped; if every query fails the result is empty, not an
// error. No feature-based filtering happens here: filtering is handled
// upstream through query construction.
func (d *Discovery) Discover(ctx context.Context, queries []string, _ domain.PlaylistSpec, token string) []domain.Track {
	// All queries go out at once; the slot per query keeps accumulation in
	// submission order so first-occurrence-wins stays deterministic.
	slots := make([][]domain.Track, len(queries))
	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			tracks, err := d.catalog.SearchTracks(ctx, token, q, searchPageSize)
			if err != nil {
				log.Printf("WARN discovery: search failed for %q: %v", q, err)
				return
			}
			slots[i] = tracks
		}(i, q)
	}
	wg.Wait()

	var all []domain.Track
	for _, tracks := range slots {
		all = append(all, tracks...)
	}

	unique := dedupeByID(all)
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Popularity > unique[j].Popularity
	})

	if len(unique) > maxResults {
		unique = unique[:maxResults]
	}
	return unique
}

// SaveAsPlaylist creates a playlist on the catalog for the token's user and
// adds the given URIs verbatim.
func (d *Discovery) SaveAsPlaylist(ctx context.Context, token, name, description string, uris []string) (domain.PlaylistRef, error) {
	if token == "" {
		return domain.PlaylistRef{}, domain.ErrUnauthorized
	}

	userID, err := d.catalog.CurrentUserID(ctx, token)
	if err != nil {
		return domain.PlaylistRef{}, err
	}

	ref, err := d.catalog.CreatePlaylist(ctx, token, userID, name, description)
	if err != nil {
		return domain.PlaylistRef{}, err
	}

	if err := d.catalog.AddTracks(ctx, token, ref.ID, uris); err != nil {
		return domain.PlaylistRef{}, err
	}

	return ref, nil
}

func (d *Discovery) planStrategy(ctx context.Context, vibe string, spec domain.PlaylistSpec) domain.SearchStrategy {
	if d.planner == nil {
		return domain.FallbackStrategy(spec)
	}
	strategy, err := d.planner.PlanStrategy(ctx, vibe, spec)
	if err != nil {
		// Recoverable and silent to the end user: fall back to a strategy
		// derived purely from the spec.
		log.Printf("WARN discovery: strategy planning failed, using fallback: %v", err)
		return domain.FallbackStrategy(spec)
	}
	return strategy
}

func (d *Discovery) recordHistory(ctx context.Context, vibe string, tracks []domain.Track) {
	if d.history == nil {
		return
	}
	uris := make([]string, 0, len(tracks))
	for _, t := range tracks {
		uris = append(uris, t.URI)
	}
	rec := domain.DiscoveryRecord{
		ID:            uuid.NewString(),
		Vibe:          vibe,
		NormalizedKey: cache.Normalize(vibe),
		TrackURIs:     uris,
		CreatedAt:     time.Now(),
	}
	if err := d.history.SaveDiscovery(ctx, rec); err != nil {
		log.Printf("WARN discovery: failed to record history: %v", err)
	}
}

// dedupeByID removes duplicate track identifiers, keeping the field values of
// each identifier's first occurrence.
func dedupeByID(tracks []domain.Track) []domain.Track {
	seen := make(map[string]struct{}, len(tracks))
	unique := make([]domain.Track, 0, len(tracks))
	for _, t := range tracks {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		unique = append(unique, t)
	}
	return unique
}
