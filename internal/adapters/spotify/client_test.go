package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"golang.org/x/oauth2"

	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
)

const trackSearchBody = `{
	"tracks": {
		"items": [
			{
				"id": "6rqhFgbbKwnb9MLmUQDhG6",
				"uri": "spotify:track:6rqhFgbbKwnb9MLmUQDhG6",
				"name": "Night Drive",
				"artists": [{"id": "a1", "name": "First"}, {"id": "a2", "name": "Second"}],
				"preview_url": "https://p.example/clip.mp3",
				"popularity": 64
			}
		]
	}
}`

func TestSearchTracks_MapsWireFormat(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(trackSearchBody))
	}))
	defer srv.Close()

	client := NewClient(nil, srv.URL, nil)
	tracks, err := client.SearchTracks(context.Background(), "user-token", "genre:ambient chill", 20)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotPath != "/search" {
		t.Errorf("path: %q", gotPath)
	}
	if gotQuery != "genre:ambient chill" {
		t.Errorf("query param not passed through: %q", gotQuery)
	}
	if gotAuth != "Bearer user-token" {
		t.Errorf("authorization: %q", gotAuth)
	}

	if len(tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(tracks))
	}
	track := tracks[0]
	if track.ID != "6rqhFgbbKwnb9MLmUQDhG6" || track.Name != "Night Drive" {
		t.Errorf("identity fields: %+v", track)
	}
	if len(track.Artists) != 2 || track.Artists[0] != "First" || track.Artists[1] != "Second" {
		t.Errorf("artist names not flattened: %v", track.Artists)
	}
	if track.Popularity != 64 || track.PreviewURL != "https://p.example/clip.mp3" {
		t.Errorf("mapped fields: %+v", track)
	}
}

func TestSearchTracks_RateLimitRetriesOnce(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(trackSearchBody))
	}))
	defer srv.Close()

	client := NewClient(nil, srv.URL, nil)
	tracks, err := client.SearchTracks(context.Background(), "token", "q", 20)
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected 2 requests, got %d", calls)
	}
	if len(tracks) != 1 {
		t.Errorf("expected mapped tracks after retry, got %d", len(tracks))
	}
}

func TestSearchTracks_SecondRateLimitFails(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(nil, srv.URL, nil)
	_, err := client.SearchTracks(context.Background(), "token", "q", 20)
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error after second 429, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected exactly 2 requests, got %d", calls)
	}
}

func TestSearchTracks_NoTokenNoAppCredential(t *testing.T) {
	client := NewClient(nil, "http://unreachable.invalid", nil)
	_, err := client.SearchTracks(context.Background(), "", "q", 20)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSearchTracks_AppTokenFallback(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tracks": {"items": []}}`))
	}))
	defer srv.Close()

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "app-token"})
	client := NewClient(nil, srv.URL, source)
	if _, err := client.SearchTracks(context.Background(), "", "q", 20); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotAuth != "Bearer app-token" {
		t.Errorf("authorization: %q", gotAuth)
	}
}

func TestRecommendations_ForwardsParameters(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tracks": [{"id": "t1", "uri": "spotify:track:t1", "name": "x", "popularity": 5}]}`))
	}))
	defer srv.Close()

	client := NewClient(nil, srv.URL, nil)
	tracks, err := client.Recommendations(context.Background(), "token", map[string]string{
		"seed_artists": "a1,a2",
		"limit":        "30",
		"min_tempo":    "70",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got["seed_artists"] != "a1,a2" || got["limit"] != "30" || got["min_tempo"] != "70" {
		t.Errorf("parameters not forwarded: %v", got)
	}
	if len(tracks) != 1 || tracks[0].ID != "t1" {
		t.Errorf("tracks: %+v", tracks)
	}
}

func TestCreatePlaylistAndAddTracks(t *testing.T) {
	type request struct {
		method string
		path   string
		body   map[string]any
	}
	var requests []request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		requests = append(requests, request{method: r.Method, path: r.URL.Path, body: body})

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/me":
			w.Write([]byte(`{"id": "user-1"}`))
		case strings.HasSuffix(r.URL.Path, "/playlists"):
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": "pl-1", "external_urls": {"spotify": "https://open.spotify.com/playlist/pl-1"}}`))
		default:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"snapshot_id": "snap"}`))
		}
	}))
	defer srv.Close()

	client := NewClient(nil, srv.URL, nil)
	ctx := context.Background()

	userID, err := client.CurrentUserID(ctx, "token")
	if err != nil {
		t.Fatalf("CurrentUserID: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("user id: %q", userID)
	}

	ref, err := client.CreatePlaylist(ctx, "token", userID, "Chill Sunday", "generated")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	if ref.ID != "pl-1" || !strings.Contains(ref.URL, "pl-1") {
		t.Errorf("playlist ref: %+v", ref)
	}

	if err := client.AddTracks(ctx, "token", ref.ID, []string{"spotify:track:a"}); err != nil {
		t.Fatalf("AddTracks: %v", err)
	}

	if len(requests) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(requests))
	}
	create := requests[1]
	if create.path != "/users/user-1/playlists" || create.body["name"] != "Chill Sunday" {
		t.Errorf("create request: %+v", create)
	}
	add := requests[2]
	if add.path != "/playlists/pl-1/tracks" {
		t.Errorf("add path: %q", add.path)
	}
	uris, _ := add.body["uris"].([]any)
	if len(uris) != 1 || uris[0] != "spotify:track:a" {
		t.Errorf("add body: %+v", add.body)
	}
}
