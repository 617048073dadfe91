package ports

import (
	"context"

	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
)

// SpecTranslator turns a free-text vibe into a validated playlist spec via a
// single round trip to a text-completion service. Retrying is the caller's
// concern.
type SpecTranslator interface {
	TranslateSpec(ctx context.Context, vibe string, hints map[string]any) (domain.PlaylistSpec, error)
}

// StrategyPlanner derives a prioritized search strategy from a vibe and its
// spec. Callers must treat any error as recoverable and fall back to
// domain.FallbackStrategy.
type StrategyPlanner interface {
	PlanStrategy(ctx context.Context, vibe string, spec domain.PlaylistSpec) (domain.SearchStrategy, error)
}
