// Package fetch retrieves raw page content with bounded retries, protocol
// downgrade, and chained fallbacks.
package fetch

import (
	"context"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
)

// Fetcher retrieves a single URL and returns its content.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*model.CrawledPage, error)
	Name() string
	Supports(url string) bool
}
