// Package adapter normalizes each provider's schema and pagination into the
// common search contract consumed by the dispatcher.
package adapter

import (
	"context"

	"github.com/neuraseek/neuraseek/internal/search/types"
)

// Adapter is the uniform paginated-search contract every provider adapter
// exposes. Offset-paginated providers use page/pageSize and ignore
// pageToken; the cursor-paginated video provider uses pageToken and ignores
// page. Failures are returned as errors: the dispatcher decides where to
// degrade to an empty page.
type Adapter interface {
	Search(ctx context.Context, query string, page, pageSize int, pageToken string) (*types.Page, error)
}
