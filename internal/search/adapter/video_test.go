package adapter

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/neuraseek/neuraseek/internal/search/cache"
	"github.com/neuraseek/neuraseek/internal/search/client"
	"github.com/neuraseek/neuraseek/internal/search/types"
)

type fakeVideoClient struct {
	page           *client.VideoSearchPage
	channels       map[string]*client.ChannelInfo
	err            error
	searchCalls    int
	requestedMax   int
	channelLookups int
}

func (f *fakeVideoClient) SearchVideos(_ context.Context, _, _ string, maxResults int) (*client.VideoSearchPage, error) {
	f.searchCalls++
	f.requestedMax = maxResults
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeVideoClient) ChannelByID(_ context.Context, id string) (*client.ChannelInfo, error) {
	f.channelLookups++
	if ch, ok := f.channels[id]; ok {
		return ch, nil
	}
	return nil, errors.New("channel not found")
}

func newVideoAdapter(t *testing.T, c client.VideoClient) *VideoAdapter {
	t.Helper()
	a := NewVideoAdapter(c, cache.New(time.Minute), zap.NewNop())
	a.now = func() time.Time { return scoreNow }
	return a
}

func videoItem(id string, ageDays int, views int64) client.VideoItem {
	return client.VideoItem{
		ID:           id,
		Title:        "Python Tutorial " + id,
		ChannelID:    "ch-" + id,
		ChannelTitle: "Channel " + id,
		PublishedAt:  scoreNow.Add(-time.Duration(ageDays) * 24 * time.Hour),
		ViewCount:    views,
	}
}

func TestVideoAdapter_OverFetchBounds(t *testing.T) {
	fake := &fakeVideoClient{page: &client.VideoSearchPage{}}
	a := newVideoAdapter(t, fake)

	_, err := a.Search(context.Background(), "python tutorial", 1, 5, "")
	require.NoError(t, err)
	assert.Equal(t, 10, fake.requestedMax, "over-fetch factor 2")

	fake2 := &fakeVideoClient{page: &client.VideoSearchPage{}}
	a2 := newVideoAdapter(t, fake2)
	_, err = a2.Search(context.Background(), "python tutorial", 1, 40, "")
	require.NoError(t, err)
	assert.Equal(t, 50, fake2.requestedMax, "candidate pool capped at 50")
}

func TestVideoAdapter_RanksAndTruncates(t *testing.T) {
	items := []client.VideoItem{
		videoItem("low", 2, 100),
		videoItem("high", 400, 20_000_000),
		videoItem("mid", 100, 2_000_000),
	}
	fake := &fakeVideoClient{
		page: &client.VideoSearchPage{Items: items, NextPageToken: "tok-2"},
		channels: map[string]*client.ChannelInfo{
			"ch-high": {ID: "ch-high", SubscriberCount: 20_000_000, Linked: true},
		},
	}
	a := newVideoAdapter(t, fake)

	page, err := a.Search(context.Background(), "python tutorial", 1, 2, "")
	require.NoError(t, err)

	require.Len(t, page.Results, 2)
	assert.Equal(t, "high", page.Results[0].ID)
	assert.Equal(t, "mid", page.Results[1].ID)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "tok-2", page.NextPageToken)
	assert.Greater(t, page.Results[0].RelevanceScore, page.Results[1].RelevanceScore)

	for _, r := range page.Results {
		assert.Equal(t, types.ResultTypeVideo, r.Type)
		assert.NotEmpty(t, r.AdditionalInfo["channel"])
		assert.NotEmpty(t, r.AdditionalInfo["published_at"])
	}
}

func TestVideoAdapter_StableSortOnTies(t *testing.T) {
	var items []client.VideoItem
	for i := 0; i < 4; i++ {
		item := videoItem(fmt.Sprintf("v%d", i), 0, 0)
		item.Title = "unrelated"
		items = append(items, item)
	}
	fake := &fakeVideoClient{page: &client.VideoSearchPage{Items: items}}
	a := newVideoAdapter(t, fake)

	page, err := a.Search(context.Background(), "python", 1, 4, "")
	require.NoError(t, err)

	require.Len(t, page.Results, 4)
	for i, r := range page.Results {
		assert.Equal(t, fmt.Sprintf("v%d", i), r.ID, "equal scores keep provider order")
	}
}

func TestVideoAdapter_ChannelLookupsCachedPerChannel(t *testing.T) {
	items := []client.VideoItem{videoItem("a", 10, 0), videoItem("b", 10, 0)}
	items[1].ChannelID = items[0].ChannelID

	fake := &fakeVideoClient{
		page:     &client.VideoSearchPage{Items: items},
		channels: map[string]*client.ChannelInfo{items[0].ChannelID: {ID: items[0].ChannelID}},
	}
	a := newVideoAdapter(t, fake)

	_, err := a.Search(context.Background(), "python", 1, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.channelLookups, "one lookup per distinct channel")
}

func TestVideoAdapter_ProviderFailurePropagates(t *testing.T) {
	fake := &fakeVideoClient{err: errors.New("quota exceeded")}
	a := newVideoAdapter(t, fake)

	_, err := a.Search(context.Background(), "python", 1, 5, "")
	assert.Error(t, err)
}

func TestVideoAdapter_CacheHitSkipsUpstream(t *testing.T) {
	fake := &fakeVideoClient{page: &client.VideoSearchPage{Items: []client.VideoItem{videoItem("a", 10, 0)}}}
	a := newVideoAdapter(t, fake)

	first, err := a.Search(context.Background(), "python", 1, 5, "")
	require.NoError(t, err)
	second, err := a.Search(context.Background(), "python", 1, 5, "")
	require.NoError(t, err)

	assert.Equal(t, 1, fake.searchCalls)
	assert.Same(t, first, second)
}
