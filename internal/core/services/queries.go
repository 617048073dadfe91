package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeGenre converts a genre name into the catalog's genre-filter form:
// lowercased, whitespace runs to hyphens, "&" to "-n-", "/" to a hyphen.
func NormalizeGenre(genre string) string {
	g := strings.ToLower(genre)
	g = whitespaceRun.ReplaceAllString(g, "-")
	g = strings.ReplaceAll(g, "&", "-n-")
	g = strings.ReplaceAll(g, "/", "-")
	return g
}

// BuildQueries expands a search strategy and spec into an ordered list of
// catalog search queries. It is pure and deterministic; the ordering encodes
// priority tiers but carries no execution-order guarantee.
func BuildQueries(strategy domain.SearchStrategy, spec domain.PlaylistSpec) []string {
	var queries []string

	// Primary tier: prioritized genres, top keywords, optional year filter.
	for _, genre := range firstN(strategy.GenrePriority, 3) {
		parts := []string{"genre:" + NormalizeGenre(genre)}
		if len(strategy.SearchKeywords) > 0 {
			parts = append(parts, strings.Join(firstN(strategy.SearchKeywords, 2), " "))
		}
		if strategy.YearRange != "" {
			parts = append(parts, "year:"+strategy.YearRange)
		}
		queries = append(queries, strings.Join(parts, " "))
	}

	// Secondary tier: seed artists crossed with spec genres, capped at 2x2
	// to bound query volume.
	for _, artist := range firstN(spec.SeedArtists, 2) {
		for _, genre := range firstN(spec.Genres, 2) {
			queries = append(queries, fmt.Sprintf("artist:%q genre:%s", artist, NormalizeGenre(genre)))
		}
	}

	// Tertiary tier: keyword-only query once we have enough keywords.
	if len(strategy.SearchKeywords) >= 3 {
		queries = append(queries, strings.Join(firstN(strategy.SearchKeywords, 3), " "))
	}

	// Fallback: no usable signal above, one genre query per spec genre.
	if len(queries) == 0 {
		for _, genre := range spec.Genres {
			queries = append(queries, "genre:"+NormalizeGenre(genre))
		}
	}

	return queries
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
