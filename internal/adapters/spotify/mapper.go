package spotify

import "github.com/ewilliams-labs/vibecraft/internal/core/domain"

func mapTrackToDomain(t trackObject) domain.Track {
	artists := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}
	return domain.Track{
		ID:         t.ID,
		URI:        t.URI,
		Name:       t.Name,
		Artists:    artists,
		PreviewURL: t.PreviewURL,
		Popularity: t.Popularity,
	}
}

func mapTracksToDomain(items []trackObject) []domain.Track {
	tracks := make([]domain.Track, len(items))
	for i, t := range items {
		tracks[i] = mapTrackToDomain(t)
	}
	return tracks
}

func mapArtistsToDomain(items []artistObject) []domain.Artist {
	artists := make([]domain.Artist, len(items))
	for i, a := range items {
		artists[i] = domain.Artist{ID: a.ID, Name: a.Name}
	}
	return artists
}
