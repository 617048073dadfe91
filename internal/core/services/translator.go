package services

import (
	"context"
	"log"

	"github.com/ewilliams-labs/vibecraft/internal/cache"
	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
	"github.com/ewilliams-labs/vibecraft/internal/core/ports"
)

// translateAttempts is the total attempt budget for one translation request.
const translateAttempts = 2

// Translator turns free-text vibes into validated playlist specs, fronted by
// the normalized-key cache so repeated vibes skip the completion service.
type Translator struct {
	llm   ports.SpecTranslator
	cache *cache.SpecCache
}

// NewTranslator constructs a Translator. The cache may be nil, in which case
// every call goes to the completion service.
func NewTranslator(llm ports.SpecTranslator, specCache *cache.SpecCache) *Translator {
	return &Translator{llm: llm, cache: specCache}
}

// Translate resolves a vibe to a spec, consulting the cache first. Each
// attempt covers the full round trip: completion call, JSON parse, and schema
// validation. When the budget is exhausted the request fails with a
// TranslationError; no partial spec is ever returned.
func (t *Translator) Translate(ctx context.Context, vibe string, hints map[string]any) (domain.PlaylistSpec, error) {
	key := cache.Normalize(vibe)

	if t.cache != nil {
		if cached, ok := t.cache.Get(key); ok {
			// Stored data does not re-validate itself; run it through the
			// schema gate again before trusting it.
			spec, err := domain.ValidateSpec(cached)
			if err == nil {
				return spec, nil
			}
			log.Printf("WARN translator: discarding cached spec for %q: %v", key, err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < translateAttempts; attempt++ {
		spec, err := t.llm.TranslateSpec(ctx, vibe, hints)
		if err != nil {
			lastErr = err
			log.Printf("WARN translator: attempt %d/%d failed: %v", attempt+1, translateAttempts, err)
			continue
		}
		if t.cache != nil {
			t.cache.Set(key, spec)
		}
		return spec, nil
	}

	return domain.PlaylistSpec{}, &domain.TranslationError{Attempts: translateAttempts, Err: lastErr}
}
