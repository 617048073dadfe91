package spotify

// Wire types mirroring the catalog API's JSON payloads. Nothing outside this
// package touches them; mapper.go converts to domain values.

type artistObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type trackObject struct {
	ID         string         `json:"id"`
	URI        string         `json:"uri"`
	Name       string         `json:"name"`
	Artists    []artistObject `json:"artists"`
	PreviewURL string         `json:"preview_url"`
	Popularity int            `json:"popularity"`
}

type pagedTracks struct {
	Items []trackObject `json:"items"`
}

type pagedArtists struct {
	Items []artistObject `json:"items"`
}

type searchResponse struct {
	Tracks  pagedTracks  `json:"tracks"`
	Artists pagedArtists `json:"artists"`
}

type recommendationsResponse struct {
	Tracks []trackObject `json:"tracks"`
}

type userObject struct {
	ID string `json:"id"`
}

type playlistObject struct {
	ID           string `json:"id"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type addTracksRequest struct {
	URIs []string `json:"uris"`
}
