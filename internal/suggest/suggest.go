// Package suggest serves query autocompletion.
package suggest

import (
	"context"

	"go.uber.org/zap"

	"github.com/neuraseek/neuraseek/internal/search/cache"
	"github.com/neuraseek/neuraseek/internal/search/client"
)

// MaxSuggestions caps the suggestion list on the inbound API.
const MaxSuggestions = 5

// Service returns up to MaxSuggestions completions for a query prefix,
// memoized through the shared cache. Any failure degrades to an empty list.
type Service struct {
	client client.SuggestClient
	cache  *cache.Cache
	logger *zap.Logger
}

// New creates the suggestions service.
func New(c client.SuggestClient, cc *cache.Cache, logger *zap.Logger) *Service {
	return &Service{client: c, cache: cc, logger: logger.Named("suggest")}
}

// Suggestions never fails: provider faults are logged and produce an empty
// slice.
func (s *Service) Suggestions(ctx context.Context, query string) []string {
	key := cache.Key("suggest", query)
	suggestions, err := cache.Lookup(s.cache, key, func() ([]string, error) {
		return s.client.Complete(ctx, query)
	})
	if err != nil {
		s.logger.Warn("suggestion lookup failed", zap.String("query", query), zap.Error(err))
		return []string{}
	}

	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	return suggestions
}
