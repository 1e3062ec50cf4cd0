package enrich

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/neuraseek/neuraseek/internal/search/types"
)

// topEmotions is how many labels of the fine-grained distribution survive.
const topEmotions = 3

// polarityLabels names the coarse classifier's outputs in emission order.
var polarityLabels = []string{"Negative", "Neutral", "Positive"}

// attachSentiment runs both classifiers for one result. Each is
// independently optional: whichever succeeds is attached, whichever fails is
// logged and omitted.
func (p *Pipeline) attachSentiment(ctx context.Context, r *types.SearchResult) {
	if emotions := p.analyzeEmotions(ctx, r.Description); emotions != nil {
		r.SetInfo("sentiment", emotions)
	}
	if overall := p.analyzeOverallSentiment(ctx, r.Description); overall != nil {
		r.SetInfo("overall_sentiment", overall)
	}
}

// analyzeEmotions reduces the multi-label emotion distribution to the top-3
// emotions plus a dominant label.
func (p *Pipeline) analyzeEmotions(ctx context.Context, text string) map[string]any {
	scores, err := p.classifier.Classify(ctx, text, p.sentimentModel)
	if err != nil || len(scores) == 0 {
		p.logger.Debug("emotion classification failed", zap.Error(err))
		return nil
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	if len(scores) > topEmotions {
		scores = scores[:topEmotions]
	}

	emotions := make([]map[string]any, 0, len(scores))
	for _, s := range scores {
		emotions = append(emotions, map[string]any{"emotion": s.Label, "score": s.Score})
	}

	return map[string]any{
		"emotions":         emotions,
		"dominant_emotion": scores[0].Label,
	}
}

// analyzeOverallSentiment maps the 3-way polarity distribution onto named
// labels and reduces it to a dominant label with its confidence.
func (p *Pipeline) analyzeOverallSentiment(ctx context.Context, text string) map[string]any {
	scores, err := p.classifier.Classify(ctx, text, p.polarityModel)
	if err != nil || len(scores) == 0 {
		p.logger.Debug("polarity classification failed", zap.Error(err))
		return nil
	}

	named := make(map[string]float64, len(polarityLabels))
	dominant := ""
	confidence := -1.0
	for i, s := range scores {
		if i >= len(polarityLabels) {
			break
		}
		label := polarityLabels[i]
		named[label] = s.Score
		if s.Score > confidence {
			dominant = label
			confidence = s.Score
		}
	}

	return map[string]any{
		"scores":     named,
		"dominant":   dominant,
		"confidence": confidence,
	}
}
