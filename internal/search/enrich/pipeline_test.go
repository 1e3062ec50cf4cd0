package enrich

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/neuraseek/neuraseek/internal/inference"
	"github.com/neuraseek/neuraseek/internal/pkg/workerpool"
	"github.com/neuraseek/neuraseek/internal/search/types"
)

type fakeSummarizer struct {
	mu      sync.Mutex
	summary string
	err     error
	inputs  []string
	maxLen  int
	minLen  int
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string, maxLen, minLen int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, text)
	f.maxLen = maxLen
	f.minLen = minLen
	return f.summary, f.err
}

type fakeClassifier struct {
	mu     sync.Mutex
	byText map[string][]inference.LabelScore
	scores []inference.LabelScore
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(_ context.Context, text, _ string) ([]inference.LabelScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.byText != nil {
		if scores, ok := f.byText[text]; ok {
			return scores, nil
		}
	}
	return f.scores, nil
}

func newTestPipeline(t *testing.T, s inference.Summarizer, c inference.Classifier) *Pipeline {
	t.Helper()
	pool, err := workerpool.New(&workerpool.Config{Workers: 4}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pool.Shutdown)

	cfg := &inference.Config{SentimentModel: "emotion-model", PolarityModel: "polarity-model"}
	return New(s, c, pool, cfg, zap.NewNop())
}

func webResult(id, url, source, description string) *types.SearchResult {
	return &types.SearchResult{
		ID:          id,
		Title:       id,
		Description: description,
		URL:         url,
		Type:        types.ResultTypeWeb,
		SourceName:  source,
	}
}

func TestEnrich_SummaryPrefersTrustedSources(t *testing.T) {
	summarizer := &fakeSummarizer{summary: "A concise overview."}
	p := newTestPipeline(t, summarizer, &fakeClassifier{})

	results := []*types.SearchResult{
		webResult("r1", "https://blog.example.com/a", "example.com", "untrusted text"),
		webResult("r2", "https://en.wikipedia.org/wiki/Go", "Wikipedia", "trusted text one"),
		webResult("r3", "https://www.nature.com/articles/go", "Nature", "trusted text two"),
		webResult("r4", "https://random.io/b", "random.io", "more untrusted"),
	}

	p.Enrich(context.Background(), types.CategoryAll, results)

	require.Len(t, summarizer.inputs, 1)
	input := summarizer.inputs[0]
	assert.Contains(t, input, "From Wikipedia: trusted text one")
	assert.Contains(t, input, "From Nature: trusted text two")
	assert.NotContains(t, input, "untrusted")

	assert.Equal(t, 200, summarizer.maxLen)
	assert.Equal(t, 50, summarizer.minLen)

	assert.Equal(t, "A concise overview.", results[0].AdditionalInfo["ai_summary"])
	assert.Equal(t, []string{"Wikipedia", "Nature"}, results[0].AdditionalInfo["summary_sources"])
	for _, r := range results[1:] {
		assert.NotContains(t, r.AdditionalInfo, "ai_summary", "summary lands on the first result only")
	}
}

func TestEnrich_SummaryBackfillsUntrustedSources(t *testing.T) {
	summarizer := &fakeSummarizer{summary: "ok"}
	p := newTestPipeline(t, summarizer, &fakeClassifier{})

	results := []*types.SearchResult{
		webResult("r1", "https://blog.example.com/a", "example.com", "filler one"),
		webResult("r2", "https://en.wikipedia.org/wiki/Go", "Wikipedia", "trusted"),
		webResult("r3", "https://random.io/b", "random.io", "filler two"),
	}

	p.Enrich(context.Background(), types.CategoryAll, results)

	require.Len(t, summarizer.inputs, 1)
	assert.Contains(t, summarizer.inputs[0], "From Wikipedia: trusted")
	assert.Contains(t, summarizer.inputs[0], "From example.com: filler one",
		"one trusted source backfills from the head of the list")
	assert.NotContains(t, summarizer.inputs[0], "filler two")
}

func TestEnrich_SummaryInputTruncated(t *testing.T) {
	summarizer := &fakeSummarizer{summary: "ok"}
	p := newTestPipeline(t, summarizer, &fakeClassifier{})

	results := []*types.SearchResult{
		webResult("r1", "https://en.wikipedia.org/a", "Wikipedia", strings.Repeat("a", 5000)),
	}

	p.Enrich(context.Background(), types.CategoryAll, results)

	require.Len(t, summarizer.inputs, 1)
	assert.Len(t, summarizer.inputs[0], summaryInputLimit+3)
	assert.True(t, strings.HasSuffix(summarizer.inputs[0], "..."))
}

func TestEnrich_SummaryFailureLeavesResultsUntouched(t *testing.T) {
	summarizer := &fakeSummarizer{err: errors.New("model loading")}
	p := newTestPipeline(t, summarizer, &fakeClassifier{})

	results := []*types.SearchResult{
		webResult("r1", "https://en.wikipedia.org/a", "Wikipedia", "text"),
	}
	results[0].SetInfo("existing", "kept")

	p.Enrich(context.Background(), types.CategoryAll, results)

	assert.NotContains(t, results[0].AdditionalInfo, "ai_summary")
	assert.Equal(t, "kept", results[0].AdditionalInfo["existing"])
}

func TestEnrich_NoDescriptionsMeansNoSummaryCall(t *testing.T) {
	summarizer := &fakeSummarizer{summary: "unused"}
	p := newTestPipeline(t, summarizer, &fakeClassifier{})

	results := []*types.SearchResult{
		webResult("r1", "https://en.wikipedia.org/a", "Wikipedia", ""),
	}

	p.Enrich(context.Background(), types.CategoryAll, results)

	assert.Empty(t, summarizer.inputs)
	assert.NotContains(t, results[0].AdditionalInfo, "ai_summary")
}

func TestEnrich_CategoryGating(t *testing.T) {
	summarizer := &fakeSummarizer{summary: "s"}
	classifier := &fakeClassifier{scores: []inference.LabelScore{{Label: "joy", Score: 0.9}}}
	p := newTestPipeline(t, summarizer, classifier)

	results := []*types.SearchResult{
		webResult("r1", "https://en.wikipedia.org/a", "Wikipedia", "text"),
	}

	p.Enrich(context.Background(), types.CategoryVideos, results)
	assert.Empty(t, summarizer.inputs, "videos get no summary")
	assert.Zero(t, classifier.calls, "videos get no sentiment")

	p.Enrich(context.Background(), types.CategoryImages, results)
	assert.Empty(t, summarizer.inputs)
	assert.Zero(t, classifier.calls)

	p.Enrich(context.Background(), types.CategoryAll, results)
	assert.Len(t, summarizer.inputs, 1, "the aggregate view gets a summary")
	assert.Zero(t, classifier.calls, "the aggregate view gets no sentiment")

	p.Enrich(context.Background(), types.CategoryDiscussions, results)
	assert.Positive(t, classifier.calls, "discussions get sentiment")
}

func TestEnrich_SentimentSkipsEmptyDescriptions(t *testing.T) {
	classifier := &fakeClassifier{scores: []inference.LabelScore{{Label: "joy", Score: 0.9}}}
	p := newTestPipeline(t, &fakeSummarizer{}, classifier)

	results := []*types.SearchResult{
		webResult("r1", "https://a.example.com", "a", "has text"),
		webResult("r2", "https://b.example.com", "b", ""),
	}

	p.Enrich(context.Background(), types.CategoryDiscussions, results)

	assert.Contains(t, results[0].AdditionalInfo, "sentiment")
	assert.NotContains(t, results[1].AdditionalInfo, "sentiment")
}

func TestEnrich_EmptyResultListIsNoop(t *testing.T) {
	summarizer := &fakeSummarizer{}
	classifier := &fakeClassifier{}
	p := newTestPipeline(t, summarizer, classifier)

	p.Enrich(context.Background(), types.CategoryAll, nil)
	p.Enrich(context.Background(), types.CategoryDiscussions, []*types.SearchResult{})

	assert.Empty(t, summarizer.inputs)
	assert.Zero(t, classifier.calls)
}
