package ports

import (
	"context"

	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
)

// MusicCatalog is the outbound port for the external music-catalog service.
// Every call takes the caller's bearer token; an adapter may fall back to an
// app-level credential when the token is empty.
type MusicCatalog interface {
	// SearchTracks runs a track search for a prebuilt query string.
	SearchTracks(ctx context.Context, token, query string, limit int) ([]domain.Track, error)

	// SearchArtists runs an artist-name search.
	SearchArtists(ctx context.Context, token, query string, limit int) ([]domain.Artist, error)

	// Recommendations calls the legacy parameter-based recommendation
	// endpoint with parameters built by services.BuildParameters.
	Recommendations(ctx context.Context, token string, params map[string]string) ([]domain.Track, error)

	// CurrentUserID resolves the catalog user the token belongs to.
	CurrentUserID(ctx context.Context, token string) (string, error)

	// CreatePlaylist creates an empty playlist for the given user.
	CreatePlaylist(ctx context.Context, token, userID, name, description string) (domain.PlaylistRef, error)

	// AddTracks appends track URIs to a playlist. URIs from the discovery
	// engine are accepted verbatim.
	AddTracks(ctx context.Context, token, playlistID string, uris []string) error
}
