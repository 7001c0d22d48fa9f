package discovery

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
)

// DefaultMaxPages caps the candidate list when callers pass no limit.
const DefaultMaxPages = 10

// Discoverer finds candidate financial pages for a company homepage.
type Discoverer struct {
	client *http.Client
}

// NewDiscoverer creates a Discoverer with a 15s HTTP timeout.
func NewDiscoverer() *Discoverer {
	return &Discoverer{
		client: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// NewDiscovererWithClient creates a Discoverer using the given HTTP client.
func NewDiscovererWithClient(client *http.Client) *Discoverer {
	return &Discoverer{client: client}
}

// Discover fetches the homepage, harvests same-domain financial links, and
// appends synthesized guesses, deduplicated in discovery order (crawled
// links first, synthetic candidates after) and truncated to maxPages.
//
// A homepage fetch or parse failure yields an empty list, never an error;
// the caller falls back to scraping the input URL directly.
func (d *Discoverer) Discover(ctx context.Context, baseURL string, maxPages int) []model.CandidateURL {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	domain := Domain(baseURL)
	if domain == "" {
		return nil
	}
	homepage := "https://" + domain

	doc := d.fetchHomepage(ctx, domain)
	if doc == nil {
		return nil
	}

	base, err := url.Parse(homepage)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var candidates []model.CandidateURL
	add := func(u string, reason model.DiscoveryReason) {
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		candidates = append(candidates, model.CandidateURL{URL: u, Reason: reason})
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		link := resolveLink(base, href)
		if link == nil {
			return
		}
		if !relatedHosts(link.Host, domain) {
			return
		}
		if pathLooksFinancial(link.Path) || anchorLooksFinancial(sel.Text()) {
			add(link.String(), model.ReasonCrawledLink)
		}
	})

	// Synthesized guesses go in unconditionally; dedup absorbs overlap with
	// crawled links.
	for _, p := range financialPaths {
		add(homepage+"/"+p, model.ReasonSyntheticPath)
	}
	for _, sub := range irSubdomains {
		add("https://"+sub+domain, model.ReasonSubdomainGuess)
		add("http://"+sub+domain, model.ReasonSubdomainGuess)
	}
	for _, p := range commonPages {
		add(homepage+"/"+p, model.ReasonSyntheticPath)
	}

	if len(candidates) > maxPages {
		candidates = candidates[:maxPages]
	}

	zap.L().Debug("discovery: candidates collected",
		zap.String("domain", domain),
		zap.Int("count", len(candidates)),
	)
	return candidates
}

// fetchHomepage tries https then http, one attempt each.
func (d *Discoverer) fetchHomepage(ctx context.Context, domain string) *goquery.Document {
	for _, scheme := range []string{"https://", "http://"} {
		doc, err := d.fetchDoc(ctx, scheme+domain)
		if err == nil {
			return doc
		}
		zap.L().Debug("discovery: homepage fetch failed",
			zap.String("url", scheme+domain),
			zap.Error(err),
		)
	}
	return nil
}

func (d *Discoverer) fetchDoc(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errStatus(resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 512*1024))
}

type statusError int

func (e statusError) Error() string { return "status " + http.StatusText(int(e)) }

func errStatus(code int) error { return statusError(code) }

// resolveLink resolves href against base, dropping anchors, javascript and
// mailto pseudo-links, and canonicalizes the result: fragment stripped, host
// lowercased, path rendered from its decoded form. Differently-encoded or
// differently-cased hrefs for one page therefore dedup to one candidate.
func resolveLink(base *url.URL, href string) *url.URL {
	href = strings.TrimSpace(href)
	if href == "" ||
		strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") {
		return nil
	}
	rel, err := url.Parse(href)
	if err != nil {
		return nil
	}
	abs := base.ResolveReference(rel)
	abs.Fragment = ""
	abs.Host = strings.ToLower(abs.Host)
	// Clearing RawPath makes String() re-encode from the decoded Path, so
	// "/%69nvestors" and "/investors" render identically.
	abs.RawPath = ""
	return abs
}
