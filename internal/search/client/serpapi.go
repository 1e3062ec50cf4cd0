package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNoMorePublications signals that the publication stream is exhausted.
var ErrNoMorePublications = errors.New("no more publications")

// Publication is one raw academic result.
type Publication struct {
	Title     string
	Abstract  string
	Link      string
	Venue     string
	Authors   []string
	Year      int
	Citations int
}

// PublicationIterator walks the provider's result stream sequentially, the
// way the upstream API exposes it.
type PublicationIterator interface {
	Next(ctx context.Context) (*Publication, error)
}

// PaperClient is the outbound collaborator for academic-paper search.
type PaperClient interface {
	Publications(query string) PublicationIterator
}

// SuggestClient is the outbound collaborator for query autocompletion.
type SuggestClient interface {
	Complete(ctx context.Context, query string) ([]string, error)
}

const scholarPageSize = 20

type serpClient struct {
	*BaseClient
}

// NewScholarClient creates a paper client backed by the scholar engine.
func NewScholarClient(config *Config) PaperClient {
	return &serpClient{BaseClient: NewBaseClient(config)}
}

// NewSuggestClient creates a suggestion client backed by the autocomplete
// engine.
func NewSuggestClient(config *Config) SuggestClient {
	return &serpClient{BaseClient: NewBaseClient(config)}
}

func (c *serpClient) Publications(query string) PublicationIterator {
	return &publicationIterator{client: c, query: query}
}

type publicationIterator struct {
	client    *serpClient
	query     string
	start     int
	buffer    []*Publication
	exhausted bool
}

func (it *publicationIterator) Next(ctx context.Context) (*Publication, error) {
	if len(it.buffer) == 0 {
		if it.exhausted {
			return nil, ErrNoMorePublications
		}
		if err := it.fetchPage(ctx); err != nil {
			return nil, err
		}
		if len(it.buffer) == 0 {
			it.exhausted = true
			return nil, ErrNoMorePublications
		}
	}

	pub := it.buffer[0]
	it.buffer = it.buffer[1:]
	return pub, nil
}

func (it *publicationIterator) fetchPage(ctx context.Context) error {
	params := url.Values{}
	params.Set("engine", "google_scholar")
	params.Set("api_key", it.client.APIKey())
	params.Set("q", it.query)
	params.Set("start", strconv.Itoa(it.start))
	params.Set("num", strconv.Itoa(scholarPageSize))

	body, err := it.client.GetBody(ctx, "scholar", fmt.Sprintf("%s/search?%s", it.client.APIHost(), params.Encode()))
	if err != nil {
		return err
	}

	results := gjson.GetBytes(body, "organic_results").Array()
	if len(results) < scholarPageSize {
		it.exhausted = true
	}
	it.start += scholarPageSize

	for _, r := range results {
		pub := &Publication{
			Title:     r.Get("title").String(),
			Abstract:  r.Get("snippet").String(),
			Link:      r.Get("link").String(),
			Citations: int(r.Get("inline_links.cited_by.total").Int()),
		}
		for _, a := range r.Get("publication_info.authors").Array() {
			pub.Authors = append(pub.Authors, a.Get("name").String())
		}
		pub.Venue, pub.Year = parsePublicationSummary(r.Get("publication_info.summary").String())
		it.buffer = append(it.buffer, pub)
	}
	return nil
}

// parsePublicationSummary extracts venue and year from the provider's
// "authors - venue, year - publisher" summary line.
func parsePublicationSummary(summary string) (string, int) {
	parts := strings.Split(summary, " - ")
	if len(parts) < 2 {
		return "", 0
	}

	venuePart := strings.Split(parts[1], ",")
	venue := strings.TrimSpace(venuePart[0])

	year := 0
	if len(venuePart) > 1 {
		if y, err := strconv.Atoi(strings.TrimSpace(venuePart[len(venuePart)-1])); err == nil {
			year = y
		}
	}
	return venue, year
}

func (c *serpClient) Complete(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("engine", "google_autocomplete")
	params.Set("api_key", c.APIKey())
	params.Set("q", query)
	params.Set("hl", "en")

	body, err := c.GetBody(ctx, "serpapi", fmt.Sprintf("%s/search?%s", c.APIHost(), params.Encode()))
	if err != nil {
		return nil, err
	}

	var suggestions []string
	for _, s := range gjson.GetBytes(body, "suggestions").Array() {
		if v := s.Get("value").String(); v != "" {
			suggestions = append(suggestions, v)
		}
	}
	return suggestions, nil
}
