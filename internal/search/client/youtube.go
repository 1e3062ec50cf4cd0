package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// VideoItem is one candidate video with its statistics already folded in
// from the details call.
type VideoItem struct {
	ID           string
	Title        string
	Description  string
	ChannelID    string
	ChannelTitle string
	Thumbnail    string
	PublishedAt  time.Time
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
}

// VideoSearchPage is one provider-native page of video candidates.
type VideoSearchPage struct {
	Items         []VideoItem
	NextPageToken string
}

// ChannelInfo carries the channel statistics, branding and ownership
// metadata consumed by the video scorer.
type ChannelInfo struct {
	ID              string
	Title           string
	SubscriberCount int64
	Linked          bool
	BrandKeywords   []string
	HasContentOwner bool
}

// VideoClient is the outbound collaborator for the video platform. It covers
// the search, video-details and channel-lookup calls.
type VideoClient interface {
	SearchVideos(ctx context.Context, query, pageToken string, maxResults int) (*VideoSearchPage, error)
	ChannelByID(ctx context.Context, id string) (*ChannelInfo, error)
}

type youtubeClient struct {
	*BaseClient
}

// NewYouTubeClient creates a client for the YouTube Data API v3.
func NewYouTubeClient(config *Config) VideoClient {
	return &youtubeClient{BaseClient: NewBaseClient(config)}
}

func (c *youtubeClient) SearchVideos(ctx context.Context, query, pageToken string, maxResults int) (*VideoSearchPage, error) {
	params := url.Values{}
	params.Set("key", c.APIKey())
	params.Set("q", query)
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("videoEmbeddable", "true")
	params.Set("videoSyndicated", "true")
	params.Set("order", "relevance")
	params.Set("maxResults", strconv.Itoa(maxResults))
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	body, err := c.GetBody(ctx, "youtube", fmt.Sprintf("%s/youtube/v3/search?%s", c.APIHost(), params.Encode()))
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(body)
	page := &VideoSearchPage{NextPageToken: root.Get("nextPageToken").String()}

	var ids []string
	for _, item := range root.Get("items").Array() {
		videoID := item.Get("id.videoId").String()
		if videoID == "" {
			continue
		}

		publishedAt, _ := time.Parse(time.RFC3339, item.Get("snippet.publishedAt").String())
		page.Items = append(page.Items, VideoItem{
			ID:           videoID,
			Title:        item.Get("snippet.title").String(),
			Description:  item.Get("snippet.description").String(),
			ChannelID:    item.Get("snippet.channelId").String(),
			ChannelTitle: item.Get("snippet.channelTitle").String(),
			Thumbnail:    item.Get("snippet.thumbnails.medium.url").String(),
			PublishedAt:  publishedAt,
		})
		ids = append(ids, videoID)
	}

	if len(ids) > 0 {
		// Best effort: candidates without statistics still rank, each
		// missing component just scores 0.
		if stats, err := c.videoStatistics(ctx, ids); err == nil {
			for i := range page.Items {
				if s, ok := stats[page.Items[i].ID]; ok {
					page.Items[i].ViewCount = s[0]
					page.Items[i].LikeCount = s[1]
					page.Items[i].CommentCount = s[2]
				}
			}
		}
	}

	return page, nil
}

func (c *youtubeClient) videoStatistics(ctx context.Context, ids []string) (map[string][3]int64, error) {
	params := url.Values{}
	params.Set("key", c.APIKey())
	params.Set("part", "statistics")
	params.Set("id", strings.Join(ids, ","))

	body, err := c.GetBody(ctx, "youtube", fmt.Sprintf("%s/youtube/v3/videos?%s", c.APIHost(), params.Encode()))
	if err != nil {
		return nil, err
	}

	stats := make(map[string][3]int64)
	for _, item := range gjson.GetBytes(body, "items").Array() {
		stats[item.Get("id").String()] = [3]int64{
			item.Get("statistics.viewCount").Int(),
			item.Get("statistics.likeCount").Int(),
			item.Get("statistics.commentCount").Int(),
		}
	}
	return stats, nil
}

func (c *youtubeClient) ChannelByID(ctx context.Context, id string) (*ChannelInfo, error) {
	params := url.Values{}
	params.Set("key", c.APIKey())
	params.Set("part", "statistics,brandingSettings,status,contentOwnerDetails")
	params.Set("id", id)

	body, err := c.GetBody(ctx, "youtube", fmt.Sprintf("%s/youtube/v3/channels?%s", c.APIHost(), params.Encode()))
	if err != nil {
		return nil, err
	}

	items := gjson.GetBytes(body, "items").Array()
	if len(items) == 0 {
		return nil, fmt.Errorf("channel %s not found", id)
	}

	item := items[0]
	info := &ChannelInfo{
		ID:              id,
		Title:           item.Get("brandingSettings.channel.title").String(),
		SubscriberCount: item.Get("statistics.subscriberCount").Int(),
		Linked:          item.Get("status.isLinked").Bool(),
		HasContentOwner: item.Get("contentOwnerDetails.contentOwner").String() != "",
	}
	if keywords := item.Get("brandingSettings.channel.keywords").String(); keywords != "" {
		info.BrandKeywords = strings.Fields(strings.ToLower(keywords))
	}
	return info, nil
}
