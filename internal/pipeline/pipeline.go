// Package pipeline runs the full revenue lookup flow: discover candidate
// pages on the company website, fetch and extract them, run the revenue
// engine, and escalate to the search tiers when the website yields nothing.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/discovery"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/extract"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/fetch"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/revenue"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/search"
)

// Pipeline orchestrates one company revenue lookup end to end.
type Pipeline struct {
	discoverer    *discovery.Discoverer
	chain         *fetch.Chain
	searcher      *search.Orchestrator
	maxPages      int
	maxConcurrent int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMaxPages caps the number of candidate pages scraped per company.
func WithMaxPages(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxPages = n
		}
	}
}

// WithMaxConcurrent bounds concurrent page fetches within one lookup.
func WithMaxConcurrent(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxConcurrent = n
		}
	}
}

// WithSearchFallback attaches the search tier chain used when the website
// itself yields no revenue figure. Without it the pipeline stops at the
// website stage.
func WithSearchFallback(o *search.Orchestrator) Option {
	return func(p *Pipeline) {
		p.searcher = o
	}
}

// New creates a Pipeline over the given discoverer and fetch chain.
func New(discoverer *discovery.Discoverer, chain *fetch.Chain, opts ...Option) *Pipeline {
	p := &Pipeline{
		discoverer:    discoverer,
		chain:         chain,
		maxPages:      discovery.DefaultMaxPages,
		maxConcurrent: 5,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run performs one lookup. It never returns an error: every failure mode
// collapses to a result carrying the NotFound sentinel so batch callers
// stay isolated from individual companies.
func (p *Pipeline) Run(ctx context.Context, company model.Company) model.ScrapeResult {
	start := time.Now()
	normalized := discovery.Normalize(company.URL)
	log := zap.L().With(
		zap.String("url", normalized),
		zap.String("company", company.Name),
	)

	result := model.ScrapeResult{
		URL:     normalized,
		Revenue: model.NotFound,
		Name:    company.Name,
		Country: company.Country,
	}

	if match, ok := p.scrapeWebsite(ctx, normalized, log); ok {
		result.Revenue = match.Format()
		log.Info("pipeline: revenue found on website",
			zap.String("revenue", result.Revenue),
			zap.Int("year", match.Year),
			zap.Duration("elapsed", time.Since(start)),
		)
		return result
	}

	if p.searcher != nil && company.Name != "" {
		if match, tier, ok := p.searcher.Find(ctx, company); ok {
			result.Revenue = match.Format()
			log.Info("pipeline: revenue found via search fallback",
				zap.String("revenue", result.Revenue),
				zap.String("tier", tier.String()),
				zap.Duration("elapsed", time.Since(start)),
			)
			return result
		}
	}

	log.Info("pipeline: no revenue found",
		zap.Duration("elapsed", time.Since(start)),
	)
	return result
}

// scrapeWebsite runs discovery, fetching, extraction, and the revenue engine
// against the company's own site.
func (p *Pipeline) scrapeWebsite(ctx context.Context, normalized string, log *zap.Logger) (model.RevenueMatch, bool) {
	candidates := p.discoverer.Discover(ctx, normalized, p.maxPages)
	if len(candidates) == 0 {
		// Discovery failing entirely still leaves the input URL itself.
		candidates = []model.CandidateURL{{
			URL:    normalized,
			Reason: model.ReasonExplicitFallback,
		}}
	}
	log.Debug("pipeline: candidates discovered", zap.Int("count", len(candidates)))

	urls := make([]string, 0, len(candidates))
	for _, c := range candidates {
		urls = append(urls, c.URL)
	}

	pages := p.chain.FetchAll(ctx, urls, p.maxConcurrent)
	if len(pages) == 0 {
		log.Debug("pipeline: no pages fetched")
		return model.RevenueMatch{}, false
	}

	var wt model.WeightedText
	for _, page := range pages {
		pageText := extract.Extract(page.Body)
		wt.Segments = append(wt.Segments, pageText.Segments...)
	}
	if wt.Empty() {
		log.Debug("pipeline: no text extracted")
		return model.RevenueMatch{}, false
	}

	return revenue.ExtractRevenue(wt)
}

// Batch runs lookups for multiple companies sequentially. One company's
// failure never affects another; every input produces exactly one result in
// input order.
func (p *Pipeline) Batch(ctx context.Context, companies []model.Company) model.BatchResult {
	results := make([]model.ScrapeResult, 0, len(companies))
	for _, c := range companies {
		if ctx.Err() != nil {
			results = append(results, model.ScrapeResult{
				URL:     discovery.Normalize(c.URL),
				Revenue: model.NotFound,
				Name:    c.Name,
				Country: c.Country,
			})
			continue
		}
		results = append(results, p.Run(ctx, c))
	}
	return model.BatchResult{Results: results}
}
