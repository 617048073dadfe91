package domain

import "time"

// DiscoveryRecord captures one completed discovery for an external history
// store. Persistence itself lives behind ports.HistoryRepository.
type DiscoveryRecord struct {
	ID            string
	UserID        string
	Vibe          string
	NormalizedKey string
	TrackURIs     []string
	CreatedAt     time.Time
}
