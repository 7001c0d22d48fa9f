package search

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/discovery"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/extract"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/fetch"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/lang"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
)

// PrimaryBackend scrapes a general web search engine's HTML results:
// snippets plus a bounded number of result links, all fed back into the
// extraction engine.
type PrimaryBackend struct {
	cfg     TierConfig
	fetcher fetch.Fetcher
	adapter *lang.Adapter
	limiter *rate.Limiter
	baseURL string
}

// PrimaryOption configures a PrimaryBackend.
type PrimaryOption func(*PrimaryBackend)

// WithPrimaryBaseURL overrides the engine endpoint (for testing).
func WithPrimaryBaseURL(u string) PrimaryOption {
	return func(p *PrimaryBackend) {
		p.baseURL = u
	}
}

// NewPrimaryBackend creates the primary search tier. Requests are spaced by
// a one-per-second limiter so the engine is scraped politely.
func NewPrimaryBackend(fetcher fetch.Fetcher, adapter *lang.Adapter, cfg TierConfig, opts ...PrimaryOption) *PrimaryBackend {
	p := &PrimaryBackend{
		cfg:     cfg,
		fetcher: fetcher,
		adapter: adapter,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		baseURL: "https://www.bing.com",
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *PrimaryBackend) Tier() model.SearchTier { return model.TierPrimarySearchEngine }

func (p *PrimaryBackend) Lookup(ctx context.Context, company model.Company) (string, error) {
	domain := ""
	if company.URL != "" {
		domain = discovery.Domain(company.URL)
	}
	queries := capQueries(
		buildPrimaryQueries(ctx, company, domain, p.cfg, p.adapter),
		p.cfg.MaxPrimaryQueries,
	)

	var text strings.Builder
	var links []string
	seen := make(map[string]bool)

	for _, q := range queries {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", eris.Wrap(err, "search: primary rate limit")
		}
		page, err := p.fetcher.Fetch(ctx, p.baseURL+"/search?q="+url.QueryEscape(q))
		if err != nil {
			zap.L().Debug("search: primary query failed",
				zap.String("query", q),
				zap.Error(err),
			)
			continue
		}
		snippets, resultLinks := parseBingResults(page.Body)
		text.WriteString(snippets)
		for _, l := range resultLinks {
			if !seen[l] {
				seen[l] = true
				links = append(links, l)
			}
		}
	}

	if p.cfg.MaxResultLinks > 0 && len(links) > p.cfg.MaxResultLinks {
		links = links[:p.cfg.MaxResultLinks]
	}
	for _, l := range links {
		if err := p.limiter.Wait(ctx); err != nil {
			break
		}
		page, err := p.fetcher.Fetch(ctx, l)
		if err != nil {
			zap.L().Debug("search: primary result link failed",
				zap.String("url", l),
				zap.Error(err),
			)
			continue
		}
		text.WriteByte(' ')
		text.WriteString(extract.Extract(page.Body).Flatten())
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", eris.New("search: primary engine returned nothing")
	}
	return text.String(), nil
}

// parseBingResults pulls snippet text and result links out of a Bing SERP.
func parseBingResults(body string) (string, []string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", nil
	}

	var text strings.Builder
	var links []string

	doc.Find("li.b_algo").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find("h2").Text())
		snippet := strings.TrimSpace(sel.Find("p").Text())
		if title != "" {
			text.WriteString(title)
			text.WriteByte(' ')
		}
		if snippet != "" {
			text.WriteString(snippet)
			text.WriteByte(' ')
		}
		if href, ok := sel.Find("h2 a").Attr("href"); ok && strings.HasPrefix(href, "http") {
			links = append(links, href)
		}
	})

	return text.String(), links
}
