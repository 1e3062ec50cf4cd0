package adapter

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/neuraseek/neuraseek/internal/search/cache"
	"github.com/neuraseek/neuraseek/internal/search/client"
	"github.com/neuraseek/neuraseek/internal/search/types"
)

// providerPageCap is the most items the web provider returns per call, so a
// requested page is assembled from repeated calls advancing an offset.
const providerPageCap = 10

// WebAdapter serves the web and image categories from the same provider.
// The image variant only flips the request flag and the result type.
type WebAdapter struct {
	client client.WebClient
	cache  *cache.Cache
	logger *zap.Logger
	images bool
}

// NewWebAdapter creates the adapter in web mode.
func NewWebAdapter(c client.WebClient, cc *cache.Cache, logger *zap.Logger) *WebAdapter {
	return &WebAdapter{client: c, cache: cc, logger: logger.Named("web-adapter")}
}

// NewImageAdapter creates the adapter in image mode.
func NewImageAdapter(c client.WebClient, cc *cache.Cache, logger *zap.Logger) *WebAdapter {
	return &WebAdapter{client: c, cache: cc, logger: logger.Named("image-adapter"), images: true}
}

func (a *WebAdapter) op() string {
	if a.images {
		return "image.search"
	}
	return "web.search"
}

// Search assembles one page by advancing the provider offset until pageSize
// items are collected or the provider signals exhaustion by returning fewer
// items than requested.
func (a *WebAdapter) Search(ctx context.Context, query string, page, pageSize int, _ string) (*types.Page, error) {
	key := cache.Key(a.op(), query, page, pageSize)
	return cache.Lookup(a.cache, key, func() (*types.Page, error) {
		return a.fetch(ctx, query, page, pageSize)
	})
}

func (a *WebAdapter) fetch(ctx context.Context, query string, page, pageSize int) (*types.Page, error) {
	results := make([]*types.SearchResult, 0, pageSize)
	remaining := pageSize
	start := (page-1)*pageSize + 1
	total := 0

	for remaining > 0 {
		num := remaining
		if num > providerPageCap {
			num = providerPageCap
		}

		webPage, err := a.client.FetchPage(ctx, query, start, num, a.images)
		if err != nil {
			return nil, err
		}
		if len(webPage.Items) == 0 {
			break
		}
		total = webPage.TotalResults

		for i := range webPage.Items {
			if r := a.normalize(&webPage.Items[i]); r != nil {
				results = append(results, r)
			}
		}

		remaining -= len(webPage.Items)
		start += len(webPage.Items)

		if len(webPage.Items) < num {
			break
		}
	}

	return &types.Page{Results: results, Total: total}, nil
}

// normalize maps one provider item to the common schema, or nil when a
// required field is missing so siblings still go through.
func (a *WebAdapter) normalize(item *client.WebItem) *types.SearchResult {
	if item.Link == "" || item.Title == "" {
		a.logger.Debug("skipping malformed item", zap.String("link", item.Link))
		return nil
	}

	resultType := types.ResultTypeWeb
	if a.images {
		resultType = types.ResultTypeImage
	}

	return &types.SearchResult{
		ID:          item.Link,
		Title:       item.Title,
		Description: item.Snippet,
		URL:         item.Link,
		Thumbnail:   item.Thumbnail(),
		Type:        resultType,
		SourceIcon:  fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=32", item.Link),
		SourceName:  strings.TrimPrefix(item.DisplayLink, "www."),
	}
}
