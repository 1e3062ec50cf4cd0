package adapter

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/neuraseek/neuraseek/internal/search/cache"
	"github.com/neuraseek/neuraseek/internal/search/client"
	"github.com/neuraseek/neuraseek/internal/search/types"
)

// PaperAdapter normalizes academic publications from a sequential provider
// stream. Like the discussion adapter it implements offset pagination by
// advancing past skip items before collecting; the scan is bounded at
// skip+limit so deep pages cannot run the stream without end.
type PaperAdapter struct {
	client client.PaperClient
	cache  *cache.Cache
	logger *zap.Logger
}

// NewPaperAdapter creates the paper adapter.
func NewPaperAdapter(c client.PaperClient, cc *cache.Cache, logger *zap.Logger) *PaperAdapter {
	return &PaperAdapter{client: c, cache: cc, logger: logger.Named("paper-adapter")}
}

func (a *PaperAdapter) Search(ctx context.Context, query string, page, pageSize int, _ string) (*types.Page, error) {
	key := cache.Key("paper.search", query, page, pageSize)
	return cache.Lookup(a.cache, key, func() (*types.Page, error) {
		return a.fetch(ctx, query, page, pageSize)
	})
}

func (a *PaperAdapter) fetch(ctx context.Context, query string, page, pageSize int) (*types.Page, error) {
	it := a.client.Publications(query)
	skip := (page - 1) * pageSize

	for i := 0; i < skip; i++ {
		if _, err := it.Next(ctx); err != nil {
			if errors.Is(err, client.ErrNoMorePublications) {
				return &types.Page{Results: []*types.SearchResult{}, Total: 0}, nil
			}
			return nil, err
		}
	}

	results := make([]*types.SearchResult, 0, pageSize)
	for len(results) < pageSize {
		pub, err := it.Next(ctx)
		if err != nil {
			if errors.Is(err, client.ErrNoMorePublications) {
				break
			}
			return nil, err
		}
		results = append(results, a.normalize(pub, len(results)))
	}

	// The stream carries no overall count; report what this page returned.
	return &types.Page{Results: results, Total: len(results)}, nil
}

func (a *PaperAdapter) normalize(pub *client.Publication, position int) *types.SearchResult {
	id := pub.Link
	if id == "" {
		id = strconv.Itoa(position)
	}

	r := &types.SearchResult{
		ID:          id,
		Title:       pub.Title,
		Description: pub.Abstract,
		URL:         pub.Link,
		Type:        types.ResultTypePaper,
		SourceName:  "Google Scholar",
	}
	r.SetInfo("year", pub.Year)
	r.SetInfo("citations", pub.Citations)
	r.SetInfo("authors", pub.Authors)
	r.SetInfo("venue", pub.Venue)
	return r
}
