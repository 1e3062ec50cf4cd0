package types

// ResultType identifies which kind of source produced a result. It is fixed
// when the result is created and never mutated afterwards.
type ResultType string

const (
	ResultTypeWeb        ResultType = "web"
	ResultTypeImage      ResultType = "image"
	ResultTypeVideo      ResultType = "video"
	ResultTypeDiscussion ResultType = "discussion"
	ResultTypePaper      ResultType = "paper"
)

// Category is the requested search category on the inbound API.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryImages      Category = "images"
	CategoryVideos      Category = "videos"
	CategoryDiscussions Category = "discussions"
	CategoryPapers      Category = "papers"
)

// ParseCategory maps a raw query parameter to a Category. The boolean reports
// whether the value named a known category; callers treat unknown categories
// as an empty response, not an error.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryAll, CategoryImages, CategoryVideos, CategoryDiscussions, CategoryPapers:
		return Category(s), true
	}
	return "", false
}

// SearchResult is the normalized unit shared by all providers.
//
// AdditionalInfo accumulates provider-specific and pipeline-added fields
// (engagement metrics, citations, AI summary, sentiment). Stages only add
// keys; they never remove or overwrite keys set by an earlier stage.
type SearchResult struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	URL            string         `json:"url"`
	Thumbnail      string         `json:"thumbnail,omitempty"`
	Type           ResultType     `json:"type"`
	AdditionalInfo map[string]any `json:"additional_info,omitempty"`
	SourceIcon     string         `json:"source_icon,omitempty"`
	SourceName     string         `json:"source_name,omitempty"`
	RelevanceScore float64        `json:"relevance_score"`
}

// SetInfo adds a key to AdditionalInfo, allocating the map on first use.
func (r *SearchResult) SetInfo(key string, value any) {
	if r.AdditionalInfo == nil {
		r.AdditionalInfo = make(map[string]any)
	}
	r.AdditionalInfo[key] = value
}

// Clone returns a copy with its own AdditionalInfo map, so later stages can
// add keys without touching the original.
func (r *SearchResult) Clone() *SearchResult {
	c := *r
	if r.AdditionalInfo != nil {
		c.AdditionalInfo = make(map[string]any, len(r.AdditionalInfo))
		for k, v := range r.AdditionalInfo {
			c.AdditionalInfo[k] = v
		}
	}
	return &c
}

// SearchResponse is the aggregated response document. Result order is
// significant: it is the final rank.
type SearchResponse struct {
	Results       []*SearchResult `json:"results"`
	TotalResults  int             `json:"total_results"`
	NextPageToken string          `json:"next_page_token,omitempty"`
	HasMore       bool            `json:"has_more"`
}

// EmptyResponse is the canonical degraded response returned whenever a fault
// reaches the request boundary.
func EmptyResponse() *SearchResponse {
	return &SearchResponse{Results: []*SearchResult{}, TotalResults: 0, HasMore: false}
}

// Page is what an adapter hands back to the dispatcher: one normalized page
// of results plus the provider's pagination signals. NextPageToken is set
// only by cursor-paginated providers.
type Page struct {
	Results       []*SearchResult
	Total         int
	NextPageToken string
}

// EmptyPage is the degraded page used when a provider call fails.
func EmptyPage() *Page {
	return &Page{Results: []*SearchResult{}, Total: 0}
}
