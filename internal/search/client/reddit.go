package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
)

// RedditPost is one raw submission from the search listing.
type RedditPost struct {
	ID          string
	Title       string
	SelfText    string
	Permalink   string
	Thumbnail   string
	Subreddit   string
	Score       int
	NumComments int
	CreatedUTC  float64
}

// DiscussionClient is the outbound collaborator for the discussion forum,
// returning submissions in provider relevance order.
type DiscussionClient interface {
	SearchPosts(ctx context.Context, query string, limit int) ([]RedditPost, error)
}

// MaxDiscussionFetch is the provider's listing size ceiling; skip-take
// over-fetch is bounded by it.
const MaxDiscussionFetch = 100

type redditClient struct {
	*BaseClient
}

// NewRedditClient creates a client for the public search listing endpoint.
func NewRedditClient(config *Config) DiscussionClient {
	return &redditClient{BaseClient: NewBaseClient(config)}
}

func (c *redditClient) SearchPosts(ctx context.Context, query string, limit int) ([]RedditPost, error) {
	if limit > MaxDiscussionFetch {
		limit = MaxDiscussionFetch
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("sort", "relevance")
	params.Set("t", "all")

	body, err := c.GetBody(ctx, "reddit", fmt.Sprintf("%s/search.json?%s", c.APIHost(), params.Encode()))
	if err != nil {
		return nil, err
	}

	var posts []RedditPost
	for _, child := range gjson.GetBytes(body, "data.children").Array() {
		data := child.Get("data")
		posts = append(posts, RedditPost{
			ID:          data.Get("id").String(),
			Title:       data.Get("title").String(),
			SelfText:    data.Get("selftext").String(),
			Permalink:   data.Get("permalink").String(),
			Thumbnail:   data.Get("thumbnail").String(),
			Subreddit:   data.Get("subreddit").String(),
			Score:       int(data.Get("score").Int()),
			NumComments: int(data.Get("num_comments").Int()),
			CreatedUTC:  data.Get("created_utc").Float(),
		})
	}
	return posts, nil
}
