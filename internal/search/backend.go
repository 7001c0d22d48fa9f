package search

import (
	"context"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
)

// Backend is one fallback tier: it turns a company into a blob of text for
// the extraction engine. An error or empty text advances the chain to the
// next tier.
type Backend interface {
	Tier() model.SearchTier
	Lookup(ctx context.Context, company model.Company) (string, error)
}
