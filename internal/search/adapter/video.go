package adapter

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/neuraseek/neuraseek/internal/search/cache"
	"github.com/neuraseek/neuraseek/internal/search/client"
	"github.com/neuraseek/neuraseek/internal/search/types"
)

const (
	// maxCandidates caps the over-fetch pool handed to the scorer.
	maxCandidates = 50
	// overFetchFactor widens the candidate pool beyond the page size.
	overFetchFactor = 2
	// channelLookupConcurrency bounds parallel channel-metadata calls.
	channelLookupConcurrency = 8
)

// VideoAdapter re-ranks an over-fetched candidate pool with the multi-factor
// relevance score before cutting the final page. It is the only
// cursor-paginated adapter.
type VideoAdapter struct {
	client client.VideoClient
	cache  *cache.Cache
	logger *zap.Logger
	now    func() time.Time
}

// NewVideoAdapter creates the video adapter.
func NewVideoAdapter(c client.VideoClient, cc *cache.Cache, logger *zap.Logger) *VideoAdapter {
	return &VideoAdapter{
		client: c,
		cache:  cc,
		logger: logger.Named("video-adapter"),
		now:    time.Now,
	}
}

func (a *VideoAdapter) Search(ctx context.Context, query string, _, pageSize int, pageToken string) (*types.Page, error) {
	key := cache.Key("video.search", query, pageToken, pageSize)
	return cache.Lookup(a.cache, key, func() (*types.Page, error) {
		return a.fetch(ctx, query, pageSize, pageToken)
	})
}

func (a *VideoAdapter) fetch(ctx context.Context, query string, pageSize int, pageToken string) (*types.Page, error) {
	candidates := pageSize * overFetchFactor
	if candidates > maxCandidates {
		candidates = maxCandidates
	}

	searchPage, err := a.client.SearchVideos(ctx, query, pageToken, candidates)
	if err != nil {
		return nil, err
	}

	channels := a.lookupChannels(ctx, searchPage.Items)

	terms := queryTerms(query)
	now := a.now()

	type scored struct {
		item  client.VideoItem
		score float64
	}
	pool := make([]scored, len(searchPage.Items))
	for i, item := range searchPage.Items {
		pool[i] = scored{item: item, score: scoreVideo(&item, channels[item.ChannelID], terms, now)}
	}

	// Stable sort keeps provider order for equal scores.
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].score > pool[j].score })

	if len(pool) > pageSize {
		pool = pool[:pageSize]
	}

	results := make([]*types.SearchResult, 0, len(pool))
	for _, s := range pool {
		results = append(results, a.normalize(&s.item, s.score))
	}

	return &types.Page{
		Results:       results,
		Total:         len(results),
		NextPageToken: searchPage.NextPageToken,
	}, nil
}

// lookupChannels fetches channel metadata for every distinct channel in the
// pool, each lookup cached on its own key. A failed lookup leaves a nil
// entry so the affected score components contribute 0.
func (a *VideoAdapter) lookupChannels(ctx context.Context, items []client.VideoItem) map[string]*client.ChannelInfo {
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ChannelID != "" && !seen[item.ChannelID] {
			seen[item.ChannelID] = true
			ids = append(ids, item.ChannelID)
		}
	}

	var mu sync.Mutex
	channels := make(map[string]*client.ChannelInfo, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(channelLookupConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			info, err := cache.Lookup(a.cache, cache.Key("video.channel", id), func() (*client.ChannelInfo, error) {
				return a.client.ChannelByID(gctx, id)
			})
			if err != nil {
				a.logger.Debug("channel lookup failed", zap.String("channel_id", id), zap.Error(err))
				return nil
			}
			mu.Lock()
			channels[id] = info
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return channels
}

func (a *VideoAdapter) normalize(item *client.VideoItem, score float64) *types.SearchResult {
	r := &types.SearchResult{
		ID:             item.ID,
		Title:          item.Title,
		Description:    item.Description,
		URL:            "https://youtube.com/watch?v=" + item.ID,
		Thumbnail:      item.Thumbnail,
		Type:           types.ResultTypeVideo,
		SourceName:     "YouTube",
		SourceIcon:     "https://www.youtube.com/favicon.ico",
		RelevanceScore: score,
	}
	r.SetInfo("channel", item.ChannelTitle)
	r.SetInfo("published_at", item.PublishedAt.Format(time.RFC3339))
	r.SetInfo("view_count", item.ViewCount)
	r.SetInfo("like_count", item.LikeCount)
	return r
}

// queryTerms splits a query into distinct lowercase terms.
func queryTerms(query string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, t := range strings.Fields(strings.ToLower(query)) {
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	return terms
}
