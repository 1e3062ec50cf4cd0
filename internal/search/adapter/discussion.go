package adapter

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/neuraseek/neuraseek/internal/search/cache"
	"github.com/neuraseek/neuraseek/internal/search/client"
	"github.com/neuraseek/neuraseek/internal/search/types"
)

// descriptionLimit truncates discussion self-text for display.
const descriptionLimit = 300

// DiscussionAdapter normalizes forum submissions. Ranking stays in provider
// relevance order; the derived engagement score is attached as metadata only.
// Offset pagination is naive: the provider has no offset support, so the
// adapter over-fetches skip+limit items and discards the first skip.
type DiscussionAdapter struct {
	client client.DiscussionClient
	cache  *cache.Cache
	logger *zap.Logger
}

// NewDiscussionAdapter creates the discussion adapter.
func NewDiscussionAdapter(c client.DiscussionClient, cc *cache.Cache, logger *zap.Logger) *DiscussionAdapter {
	return &DiscussionAdapter{client: c, cache: cc, logger: logger.Named("discussion-adapter")}
}

func (a *DiscussionAdapter) Search(ctx context.Context, query string, page, pageSize int, _ string) (*types.Page, error) {
	key := cache.Key("discussion.search", query, page, pageSize)
	return cache.Lookup(a.cache, key, func() (*types.Page, error) {
		return a.fetch(ctx, query, page, pageSize)
	})
}

func (a *DiscussionAdapter) fetch(ctx context.Context, query string, page, pageSize int) (*types.Page, error) {
	skip := (page - 1) * pageSize

	posts, err := a.client.SearchPosts(ctx, query, pageSize+skip)
	if err != nil {
		return nil, err
	}

	results := make([]*types.SearchResult, 0, pageSize)
	for i := range posts {
		if len(results) >= pageSize {
			break
		}
		if skip > 0 {
			skip--
			continue
		}
		if r := a.normalize(&posts[i]); r != nil {
			results = append(results, r)
		}
	}

	return &types.Page{Results: results, Total: len(results)}, nil
}

func (a *DiscussionAdapter) normalize(post *client.RedditPost) *types.SearchResult {
	if post.ID == "" || post.Title == "" {
		a.logger.Debug("skipping malformed submission", zap.String("id", post.ID))
		return nil
	}

	thumbnail := ""
	if strings.HasPrefix(post.Thumbnail, "http") {
		thumbnail = post.Thumbnail
	}

	r := &types.SearchResult{
		ID:          post.ID,
		Title:       post.Title,
		Description: truncate(post.SelfText, descriptionLimit),
		URL:         "https://reddit.com" + post.Permalink,
		Thumbnail:   thumbnail,
		Type:        types.ResultTypeDiscussion,
		SourceName:  "Reddit",
		SourceIcon:  "https://www.redditstatic.com/desktop2x/img/favicon/favicon-32x32.png",
	}
	r.SetInfo("subreddit", post.Subreddit)
	r.SetInfo("score", post.Score)
	r.SetInfo("num_comments", post.NumComments)
	r.SetInfo("engagement_score", post.Score+2*post.NumComments)
	r.SetInfo("created_utc", post.CreatedUTC)
	return r
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
