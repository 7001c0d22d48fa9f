package fetch

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
)

// Chain tries fetchers in priority order, returning the first success.
type Chain struct {
	fetchers []Fetcher
}

// NewChain creates a Chain. Fetchers are tried in order; the first
// successful result wins.
func NewChain(fetchers ...Fetcher) *Chain {
	return &Chain{fetchers: fetchers}
}

// Fetch tries each fetcher in order for a single URL.
func (c *Chain) Fetch(ctx context.Context, targetURL string) (*model.CrawledPage, error) {
	var lastErr error
	for _, f := range c.fetchers {
		if !f.Supports(targetURL) {
			continue
		}
		page, err := f.Fetch(ctx, targetURL)
		if err == nil && page != nil {
			return page, nil
		}
		if err != nil {
			zap.L().Debug("fetch: fetcher failed, trying next",
				zap.String("fetcher", f.Name()),
				zap.String("url", targetURL),
				zap.Error(err),
			)
			lastErr = err
		}
	}
	if lastErr != nil {
		return nil, eris.Wrap(lastErr, "fetch: all fetchers failed")
	}
	return nil, eris.Errorf("fetch: no suitable fetcher for url: %s", targetURL)
}

// FetchAll retrieves multiple URLs concurrently with the given limit. Pages
// are appended in completion order; a failed URL is skipped rather than
// aborting the batch.
func (c *Chain) FetchAll(ctx context.Context, urls []string, maxConcurrent int) []model.CrawledPage {
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}

	var (
		mu    sync.Mutex
		pages []model.CrawledPage
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, u := range urls {
		u := u
		g.Go(func() error {
			page, err := c.Fetch(gCtx, u)
			if err != nil {
				zap.L().Debug("fetch: chain failed for url",
					zap.String("url", u),
					zap.Error(err),
				)
				return nil
			}
			mu.Lock()
			pages = append(pages, *page)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return pages
}
