// Package spotify implements the music-catalog port against the Spotify Web
// API: search, legacy recommendations, and playlist mutation.
package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
	"github.com/ewilliams-labs/vibecraft/internal/core/ports"
)

const defaultBaseURL = "https://api.spotify.com/v1"

// Client is an HTTP client for the catalog API. Calls carry the caller's
// bearer token; when none is supplied and an app-level token source is
// configured, the app credential is used instead.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appTokens  oauth2.TokenSource
}

var _ ports.MusicCatalog = (*Client)(nil)

// NewClient constructs a catalog client. httpClient, baseURL, and appTokens
// may each be zero-valued to use defaults.
func NewClient(httpClient *http.Client, baseURL string, appTokens oauth2.TokenSource) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		appTokens:  appTokens,
	}
}

// SearchTracks runs a track search for a prebuilt query string.
func (c *Client) SearchTracks(ctx context.Context, token, query string, limit int) ([]domain.Track, error) {
	var body searchResponse
	if err := c.search(ctx, token, query, "track", limit, &body); err != nil {
		return nil, err
	}
	return mapTracksToDomain(body.Tracks.Items), nil
}

// SearchArtists runs an artist-name search.
func (c *Client) SearchArtists(ctx context.Context, token, query string, limit int) ([]domain.Artist, error) {
	var body searchResponse
	if err := c.search(ctx, token, query, "artist", limit, &body); err != nil {
		return nil, err
	}
	return mapArtistsToDomain(body.Artists.Items), nil
}

func (c *Client) search(ctx context.Context, token, query, entityType string, limit int, out *searchResponse) error {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", entityType)
	params.Set("limit", strconv.Itoa(limit))
	return c.getJSON(ctx, token, "/search", params, out)
}

// Recommendations calls the legacy parameter-based recommendation endpoint.
func (c *Client) Recommendations(ctx context.Context, token string, params map[string]string) ([]domain.Track, error) {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}

	var body recommendationsResponse
	if err := c.getJSON(ctx, token, "/recommendations", values, &body); err != nil {
		return nil, err
	}
	return mapTracksToDomain(body.Tracks), nil
}

// CurrentUserID resolves the user the bearer token belongs to.
func (c *Client) CurrentUserID(ctx context.Context, token string) (string, error) {
	var body userObject
	if err := c.getJSON(ctx, token, "/me", nil, &body); err != nil {
		return "", err
	}
	if body.ID == "" {
		return "", fmt.Errorf("spotify adapter: current user has no id")
	}
	return body.ID, nil
}

// CreatePlaylist creates an empty playlist for the given user.
func (c *Client) CreatePlaylist(ctx context.Context, token, userID, name, description string) (domain.PlaylistRef, error) {
	var body playlistObject
	path := fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID))
	req := createPlaylistRequest{Name: name, Description: description}
	if err := c.postJSON(ctx, token, path, req, &body); err != nil {
		return domain.PlaylistRef{}, err
	}
	if body.ID == "" {
		return domain.PlaylistRef{}, fmt.Errorf("spotify adapter: created playlist has no id")
	}
	return domain.PlaylistRef{ID: body.ID, URL: body.ExternalURLs.Spotify}, nil
}

// AddTracks appends track URIs to a playlist, verbatim.
func (c *Client) AddTracks(ctx context.Context, token, playlistID string, uris []string) error {
	path := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	return c.postJSON(ctx, token, path, addTracksRequest{URIs: uris}, nil)
}

func (c *Client) bearer(token string) (string, error) {
	if token != "" {
		return token, nil
	}
	if c.appTokens != nil {
		tok, err := c.appTokens.Token()
		if err != nil {
			return "", fmt.Errorf("spotify adapter: app token: %w", err)
		}
		return tok.AccessToken, nil
	}
	return "", domain.ErrUnauthorized
}

func (c *Client) getJSON(ctx context.Context, token, path string, params url.Values, out any) error {
	bearer, err := c.bearer(token)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.doWithRateLimitRetry(req)
	if err != nil {
		return fmt.Errorf("spotify adapter: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spotify adapter: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("spotify adapter: decode response: %w", err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, token, path string, payload, out any) error {
	bearer, err := c.bearer(token)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("spotify adapter: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doWithRateLimitRetry(req)
	if err != nil {
		return fmt.Errorf("spotify adapter: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("spotify adapter: status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("spotify adapter: decode response: %w", err)
	}
	return nil
}
