package search

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/extract"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/fetch"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
)

// SecondaryBackend scrapes DuckDuckGo's HTML results as the last tier:
// snippets plus linked pages, keeping only paragraph text that mentions a
// financial keyword.
type SecondaryBackend struct {
	cfg     TierConfig
	fetcher fetch.Fetcher
	limiter *rate.Limiter
	baseURL string
}

// SecondaryOption configures a SecondaryBackend.
type SecondaryOption func(*SecondaryBackend)

// WithSecondaryBaseURL overrides the engine endpoint (for testing).
func WithSecondaryBaseURL(u string) SecondaryOption {
	return func(s *SecondaryBackend) {
		s.baseURL = u
	}
}

// NewSecondaryBackend creates the secondary search tier.
func NewSecondaryBackend(fetcher fetch.Fetcher, cfg TierConfig, opts ...SecondaryOption) *SecondaryBackend {
	s := &SecondaryBackend{
		cfg:     cfg,
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		baseURL: "https://html.duckduckgo.com",
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *SecondaryBackend) Tier() model.SearchTier { return model.TierSecondarySearchEngine }

func (s *SecondaryBackend) Lookup(ctx context.Context, company model.Company) (string, error) {
	queries := capQueries(buildSecondaryQueries(company, s.cfg), s.cfg.MaxSecondaryQueries)

	var text strings.Builder
	var links []string
	seen := make(map[string]bool)

	for _, q := range queries {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", eris.Wrap(err, "search: secondary rate limit")
		}
		page, err := s.fetcher.Fetch(ctx, s.baseURL+"/html/?q="+url.QueryEscape(q))
		if err != nil {
			zap.L().Debug("search: secondary query failed",
				zap.String("query", q),
				zap.Error(err),
			)
			continue
		}
		snippets, resultLinks := parseDuckResults(page.Body)
		text.WriteString(snippets)
		for _, l := range resultLinks {
			if !seen[l] {
				seen[l] = true
				links = append(links, l)
			}
		}
	}

	if s.cfg.MaxResultLinks > 0 && len(links) > s.cfg.MaxResultLinks {
		links = links[:s.cfg.MaxResultLinks]
	}
	for _, l := range links {
		if err := s.limiter.Wait(ctx); err != nil {
			break
		}
		page, err := s.fetcher.Fetch(ctx, l)
		if err != nil {
			zap.L().Debug("search: secondary result link failed",
				zap.String("url", l),
				zap.Error(err),
			)
			continue
		}
		// Linked pages contribute only their financial segments.
		for _, seg := range extract.Extract(page.Body).Segments {
			if seg.Kind == model.SegmentFinancial {
				text.WriteByte(' ')
				text.WriteString(seg.Text)
			}
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", eris.New("search: secondary engine returned nothing")
	}
	return text.String(), nil
}

// parseDuckResults pulls snippet text and decoded result links out of a
// DuckDuckGo HTML SERP. Result hrefs are redirect links carrying the real
// URL in the uddg query parameter.
func parseDuckResults(body string) (string, []string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", nil
	}

	var text strings.Builder
	var links []string

	doc.Find(".result").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find("a.result__a").Text())
		snippet := strings.TrimSpace(sel.Find(".result__snippet").Text())
		if title != "" {
			text.WriteString(title)
			text.WriteByte(' ')
		}
		if snippet != "" {
			text.WriteString(snippet)
			text.WriteByte(' ')
		}
		if href, ok := sel.Find("a.result__a").Attr("href"); ok {
			if resolved := decodeDuckLink(href); resolved != "" {
				links = append(links, resolved)
			}
		}
	})

	return text.String(), links
}

func decodeDuckLink(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		u, err := url.Parse(href)
		if err != nil {
			return ""
		}
		if uddg := u.Query().Get("uddg"); uddg != "" {
			return uddg
		}
		return href
	}
	if strings.HasPrefix(href, "//") {
		return decodeDuckLink("https:" + href)
	}
	return ""
}
