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

type fakePaperClient struct {
	pubs []*client.Publication
	err  error
}

func (f *fakePaperClient) Publications(string) client.PublicationIterator {
	return &fakePublicationIterator{pubs: f.pubs, err: f.err}
}

type fakePublicationIterator struct {
	pubs []*client.Publication
	err  error
	pos  int
}

func (it *fakePublicationIterator) Next(_ context.Context) (*client.Publication, error) {
	if it.err != nil {
		return nil, it.err
	}
	if it.pos >= len(it.pubs) {
		return nil, client.ErrNoMorePublications
	}
	pub := it.pubs[it.pos]
	it.pos++
	return pub, nil
}

func publications(n int) []*client.Publication {
	pubs := make([]*client.Publication, n)
	for i := range pubs {
		pubs[i] = &client.Publication{
			Title:     fmt.Sprintf("Paper %d", i),
			Abstract:  "abstract",
			Link:      fmt.Sprintf("https://scholar.example.com/%d", i),
			Venue:     "Nature",
			Authors:   []string{"A Author"},
			Year:      2020 + i%5,
			Citations: i * 10,
		}
	}
	return pubs
}

func TestPaperAdapter_FirstPage(t *testing.T) {
	fake := &fakePaperClient{pubs: publications(30)}
	a := NewPaperAdapter(fake, cache.New(time.Minute), zap.NewNop())

	page, err := a.Search(context.Background(), "crispr", 1, 10, "")
	require.NoError(t, err)

	require.Len(t, page.Results, 10)
	assert.Equal(t, 10, page.Total, "stream has no overall count, total mirrors the page")
	assert.Equal(t, "Paper 0", page.Results[0].Title)
	assert.Equal(t, types.ResultTypePaper, page.Results[0].Type)
	assert.Equal(t, "Google Scholar", page.Results[0].SourceName)
}

func TestPaperAdapter_SecondPageSkipsStream(t *testing.T) {
	fake := &fakePaperClient{pubs: publications(30)}
	a := NewPaperAdapter(fake, cache.New(time.Minute), zap.NewNop())

	page, err := a.Search(context.Background(), "crispr", 2, 10, "")
	require.NoError(t, err)

	require.Len(t, page.Results, 10)
	assert.Equal(t, "Paper 10", page.Results[0].Title)
	assert.Equal(t, "Paper 19", page.Results[9].Title)
}

func TestPaperAdapter_ExhaustionDuringSkip(t *testing.T) {
	fake := &fakePaperClient{pubs: publications(5)}
	a := NewPaperAdapter(fake, cache.New(time.Minute), zap.NewNop())

	page, err := a.Search(context.Background(), "crispr", 3, 10, "")
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	assert.Equal(t, 0, page.Total)
}

func TestPaperAdapter_ShortLastPage(t *testing.T) {
	fake := &fakePaperClient{pubs: publications(13)}
	a := NewPaperAdapter(fake, cache.New(time.Minute), zap.NewNop())

	page, err := a.Search(context.Background(), "crispr", 2, 10, "")
	require.NoError(t, err)
	assert.Len(t, page.Results, 3)
}

func TestPaperAdapter_NormalizesMetadata(t *testing.T) {
	pub := &client.Publication{
		Title:     "Attention Is All You Need",
		Abstract:  "We propose the Transformer.",
		Link:      "https://scholar.example.com/attention",
		Venue:     "NeurIPS",
		Authors:   []string{"A Vaswani", "N Shazeer"},
		Year:      2017,
		Citations: 100000,
	}
	fake := &fakePaperClient{pubs: []*client.Publication{pub}}
	a := NewPaperAdapter(fake, cache.New(time.Minute), zap.NewNop())

	page, err := a.Search(context.Background(), "transformer", 1, 10, "")
	require.NoError(t, err)
	require.Len(t, page.Results, 1)

	r := page.Results[0]
	assert.Equal(t, pub.Link, r.ID)
	assert.Equal(t, 2017, r.AdditionalInfo["year"])
	assert.Equal(t, 100000, r.AdditionalInfo["citations"])
	assert.Equal(t, []string{"A Vaswani", "N Shazeer"}, r.AdditionalInfo["authors"])
	assert.Equal(t, "NeurIPS", r.AdditionalInfo["venue"])
}

func TestPaperAdapter_PositionFallbackID(t *testing.T) {
	pubs := publications(2)
	pubs[1].Link = ""
	fake := &fakePaperClient{pubs: pubs}
	a := NewPaperAdapter(fake, cache.New(time.Minute), zap.NewNop())

	page, err := a.Search(context.Background(), "crispr", 1, 10, "")
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "1", page.Results[1].ID)
}

func TestPaperAdapter_ProviderFailurePropagates(t *testing.T) {
	fake := &fakePaperClient{err: errors.New("serp unavailable")}
	a := NewPaperAdapter(fake, cache.New(time.Minute), zap.NewNop())

	_, err := a.Search(context.Background(), "crispr", 1, 10, "")
	assert.Error(t, err)
}
