package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/neuraseek/neuraseek/internal/search/types"
)

const (
	// summarySourceCount is how many results feed the cross-result summary.
	summarySourceCount = 2
	// summaryInputLimit hard-truncates the combined text sent to the backend.
	summaryInputLimit = 4096

	summaryMaxLen = 200
	summaryMinLen = 50
)

// trustedDomains is the allowlist of domain substrings treated as
// higher-reliability sources for summarization.
var trustedDomains = []string{
	"wikipedia.org",
	"imdb.com",
	"britannica.com",
	"nationalgeographic.com",
	"sciencedirect.com",
	"nature.com",
	"gov",
	"edu",
	"who.int",
	"un.org",
}

func isTrustedSource(url string) bool {
	url = strings.ToLower(url)
	for _, domain := range trustedDomains {
		if strings.Contains(url, domain) {
			return true
		}
	}
	return false
}

type summaryData struct {
	Summary string   `json:"summary"`
	Sources []string `json:"sources"`
}

// selectSummarySources picks up to two trusted results, backfilling from the
// remaining results in original order when fewer than two are trusted.
func selectSummarySources(results []*types.SearchResult) []*types.SearchResult {
	var trusted, other []*types.SearchResult
	for _, r := range results {
		if isTrustedSource(r.URL) {
			trusted = append(trusted, r)
		} else {
			other = append(other, r)
		}
	}

	selected := trusted
	if len(selected) > summarySourceCount {
		selected = selected[:summarySourceCount]
	}
	if missing := summarySourceCount - len(selected); missing > 0 {
		if missing > len(other) {
			missing = len(other)
		}
		selected = append(selected, other[:missing]...)
	}
	return selected
}

// generateSummary builds the combined source text and submits it to the
// summarization backend. A nil, nil return means there was nothing worth
// summarizing.
func (p *Pipeline) generateSummary(ctx context.Context, results []*types.SearchResult) (*summaryData, error) {
	selected := selectSummarySources(results)
	if len(selected) == 0 {
		return nil, nil
	}

	var texts []string
	for _, r := range selected {
		if r.Description != "" {
			texts = append(texts, fmt.Sprintf("From %s: %s", r.SourceName, r.Description))
		}
	}
	if len(texts) == 0 {
		return nil, nil
	}

	combined := strings.Join(texts, " ")
	if len(combined) > summaryInputLimit {
		combined = combined[:summaryInputLimit] + "..."
	}

	summary, err := p.summarizer.Summarize(ctx, combined, summaryMaxLen, summaryMinLen)
	if err != nil {
		return nil, err
	}

	sources := make([]string, 0, len(selected))
	for _, r := range selected {
		sources = append(sources, r.SourceName)
	}
	return &summaryData{Summary: summary, Sources: sources}, nil
}
