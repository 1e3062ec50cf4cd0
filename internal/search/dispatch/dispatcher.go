// Package dispatch routes queries to provider adapters and normalizes their
// pagination disciplines into one response shape.
package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/neuraseek/neuraseek/internal/search/adapter"
	"github.com/neuraseek/neuraseek/internal/search/types"
)

// Dispatcher owns the category-to-adapter routing table. It is the outermost
// point where provider failures degrade to the canonical empty response.
type Dispatcher struct {
	web         adapter.Adapter
	images      adapter.Adapter
	videos      adapter.Adapter
	discussions adapter.Adapter
	papers      adapter.Adapter
	logger      *zap.Logger
}

// New wires the dispatcher with one adapter per category. The web and image
// adapters are two modes of the same provider.
func New(web, images, videos, discussions, papers adapter.Adapter, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		web:         web,
		images:      images,
		videos:      videos,
		discussions: discussions,
		papers:      papers,
		logger:      logger.Named("dispatcher"),
	}
}

// Search runs the query against the adapter for category and assembles the
// aggregated response. Unknown categories and provider failures both yield
// the empty response; the failure is logged, never propagated.
func (d *Dispatcher) Search(ctx context.Context, query string, category types.Category, page, pageSize int, pageToken string) *types.SearchResponse {
	var (
		target adapter.Adapter
		cursor bool
	)

	switch category {
	case types.CategoryAll, types.CategoryImages:
		target = d.web
		if category == types.CategoryImages {
			target = d.images
		}
	case types.CategoryVideos:
		target = d.videos
		cursor = true
	case types.CategoryDiscussions:
		target = d.discussions
	case types.CategoryPapers:
		target = d.papers
	default:
		d.logger.Warn("unknown search category", zap.String("category", string(category)))
		return types.EmptyResponse()
	}

	result, err := target.Search(ctx, query, page, pageSize, pageToken)
	if err != nil {
		d.logger.Error("provider search failed",
			zap.String("category", string(category)),
			zap.String("query", query),
			zap.Error(err))
		return types.EmptyResponse()
	}

	results := result.Results
	if category == types.CategoryAll {
		// The aggregate view carries web results only, even when the
		// provider response mixes in image items.
		results = filterWeb(results)
	}

	resp := &types.SearchResponse{
		// Adapter pages are cached and shared across requests; enrichment
		// adds AdditionalInfo keys in place, so every response gets its own
		// copies.
		Results:      cloneResults(results),
		TotalResults: result.Total,
	}

	if cursor {
		resp.NextPageToken = result.NextPageToken
		resp.HasMore = result.NextPageToken != ""
	} else {
		// Approximation: a provider returning exactly pageSize items on its
		// last page produces a false positive here.
		resp.HasMore = len(results) == pageSize
	}

	return resp
}

func cloneResults(results []*types.SearchResult) []*types.SearchResult {
	cloned := make([]*types.SearchResult, len(results))
	for i, r := range results {
		cloned[i] = r.Clone()
	}
	return cloned
}

func filterWeb(results []*types.SearchResult) []*types.SearchResult {
	filtered := make([]*types.SearchResult, 0, len(results))
	for _, r := range results {
		if r.Type == types.ResultTypeWeb {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
