package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/neuraseek/neuraseek/internal/search/types"
)

// WebItem is one raw item from the custom-search API.
type WebItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
	Pagemap     struct {
		CseThumbnail []struct {
			Src string `json:"src"`
		} `json:"cse_thumbnail"`
	} `json:"pagemap"`
}

// Thumbnail returns the first pagemap thumbnail, if any.
func (i *WebItem) Thumbnail() string {
	if len(i.Pagemap.CseThumbnail) > 0 {
		return i.Pagemap.CseThumbnail[0].Src
	}
	return ""
}

// WebPage is one provider-native page of web or image results.
type WebPage struct {
	Items        []WebItem
	TotalResults int
}

// WebClient is the outbound collaborator for web and image search.
type WebClient interface {
	// FetchPage retrieves up to num items starting at the 1-based offset
	// start. When images is set the provider runs an image search.
	FetchPage(ctx context.Context, query string, start, num int, images bool) (*WebPage, error)
}

type googleWebClient struct {
	*BaseClient
	cx string
}

// NewGoogleWebClient creates a client for the Google Custom Search JSON API.
func NewGoogleWebClient(config *Config, cx string) WebClient {
	return &googleWebClient{BaseClient: NewBaseClient(config), cx: cx}
}

type googleSearchResponse struct {
	Items             []WebItem `json:"items"`
	SearchInformation struct {
		TotalResults string `json:"totalResults"`
	} `json:"searchInformation"`
}

func (c *googleWebClient) FetchPage(ctx context.Context, query string, start, num int, images bool) (*WebPage, error) {
	params := url.Values{}
	params.Set("key", c.APIKey())
	params.Set("cx", c.cx)
	params.Set("q", query)
	params.Set("start", strconv.Itoa(start))
	params.Set("num", strconv.Itoa(num))
	if images {
		params.Set("searchType", "image")
	}

	body, err := c.GetBody(ctx, "google", fmt.Sprintf("%s/customsearch/v1?%s", c.APIHost(), params.Encode()))
	if err != nil {
		return nil, err
	}

	var resp googleSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedPayload, err)
	}

	total, _ := strconv.Atoi(resp.SearchInformation.TotalResults)
	return &WebPage{Items: resp.Items, TotalResults: total}, nil
}
