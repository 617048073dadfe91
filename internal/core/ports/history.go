package ports

import (
	"context"

	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
)

// HistoryRepository is the contract for the external persistence collaborator
// that records completed discoveries. This core owns no durable state; the
// discovery service writes through this port on a best-effort basis when one
// is configured.
type HistoryRepository interface {
	SaveDiscovery(ctx context.Context, rec domain.DiscoveryRecord) error
	ListByUser(ctx context.Context, userID string) ([]domain.DiscoveryRecord, error)
}
