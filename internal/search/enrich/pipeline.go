// Package enrich post-processes the aggregated result list: a cross-result
// AI summary for trusted sources and per-result sentiment signals. Every
// enrichment is best effort; a backend failure only means the corresponding
// additional-info keys are absent.
package enrich

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/neuraseek/neuraseek/internal/inference"
	"github.com/neuraseek/neuraseek/internal/pkg/workerpool"
	"github.com/neuraseek/neuraseek/internal/search/types"
)

// Pipeline runs after aggregation and only adds AdditionalInfo keys; it
// never removes or overwrites keys set by the adapter stage.
type Pipeline struct {
	summarizer inference.Summarizer
	classifier inference.Classifier
	pool       *workerpool.Pool
	logger     *zap.Logger

	sentimentModel string
	polarityModel  string
}

// New wires the pipeline with its inference backends and the worker pool
// bounding concurrent enrichment calls.
func New(summarizer inference.Summarizer, classifier inference.Classifier, pool *workerpool.Pool, cfg *inference.Config, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		summarizer:     summarizer,
		classifier:     classifier,
		pool:           pool,
		logger:         logger.Named("enrich"),
		sentimentModel: cfg.SentimentModel,
		polarityModel:  cfg.PolarityModel,
	}
}

func wantsSummary(category types.Category) bool {
	return category == types.CategoryAll || category == types.CategoryPapers || category == types.CategoryDiscussions
}

func wantsSentiment(category types.Category) bool {
	return category == types.CategoryDiscussions || category == types.CategoryPapers
}

// Enrich augments results in place for the categories where it adds value.
// The summary runs concurrently with the sentiment workers but is attached
// to the first result only after they drain, so no two goroutines ever touch
// the same AdditionalInfo map.
func (p *Pipeline) Enrich(ctx context.Context, category types.Category, results []*types.SearchResult) {
	if len(results) == 0 {
		return
	}

	var summaryCh <-chan workerpool.TaskResult
	if wantsSummary(category) {
		summaryCh = p.pool.SubmitWithResult(func() (interface{}, error) {
			return p.generateSummary(ctx, results)
		})
	}

	if wantsSentiment(category) {
		var wg sync.WaitGroup
		for _, r := range results {
			if r.Description == "" {
				continue
			}
			wg.Add(1)
			if err := p.pool.Submit(func() {
				defer wg.Done()
				p.attachSentiment(ctx, r)
			}); err != nil {
				wg.Done()
				p.logger.Warn("sentiment task rejected", zap.Error(err))
			}
		}
		wg.Wait()
	}

	if summaryCh != nil {
		p.attachSummary(<-summaryCh, results[0])
	}
}

func (p *Pipeline) attachSummary(task workerpool.TaskResult, first *types.SearchResult) {
	if task.Error != nil {
		p.logger.Warn("summary generation failed", zap.Error(task.Error))
		return
	}

	data, ok := task.Data.(*summaryData)
	if !ok || data == nil {
		return
	}

	first.SetInfo("ai_summary", data.Summary)
	first.SetInfo("summary_sources", data.Sources)
}
