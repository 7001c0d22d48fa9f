package discovery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
)

const homepageHTML = `<html><body>
<a href="/investors">Investor Relations</a>
<a href="/blog">Blog</a>
<a href="/about-team">Our Annual Report</a>
<a href="https://elsewhere.example/financials">External financials</a>
<a href="#main">Skip</a>
<a href="mailto:ir@acme.com">Contact IR</a>
</body></html>`

// testServer serves the fixture homepage over plain http. Discovery probes
// https first and falls back to http, and canonicalizes candidates under an
// https homepage regardless of which scheme answered.
func testServer(t *testing.T) (*httptest.Server, string, string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, homepageHTML)
	}))
	t.Cleanup(srv.Close)
	host := strings.TrimPrefix(srv.URL, "http://")
	return srv, srv.URL, "https://" + host
}

func TestDiscover_CrawledLinksFirst(t *testing.T) {
	srv, baseURL, homepage := testServer(t)
	d := NewDiscovererWithClient(srv.Client())

	candidates := d.Discover(context.Background(), baseURL, 50)
	require.NotEmpty(t, candidates)

	// The financial-path link and the financial-anchor-text link are
	// harvested, in document order, ahead of every synthesized guess.
	assert.Equal(t, homepage+"/investors", candidates[0].URL)
	assert.Equal(t, model.ReasonCrawledLink, candidates[0].Reason)
	assert.Equal(t, homepage+"/about-team", candidates[1].URL)
	assert.Equal(t, model.ReasonCrawledLink, candidates[1].Reason)

	for _, c := range candidates {
		assert.NotContains(t, c.URL, "elsewhere.example")
		assert.NotContains(t, c.URL, "/blog")
		assert.NotContains(t, c.URL, "mailto:")
	}
}

func TestDiscover_SyntheticCandidatesAppended(t *testing.T) {
	srv, baseURL, _ := testServer(t)
	d := NewDiscovererWithClient(srv.Client())

	candidates := d.Discover(context.Background(), baseURL, 100)

	reasons := make(map[model.DiscoveryReason]int)
	for _, c := range candidates {
		reasons[c.Reason]++
	}
	assert.Equal(t, 2, reasons[model.ReasonCrawledLink])
	assert.NotZero(t, reasons[model.ReasonSyntheticPath])
	assert.NotZero(t, reasons[model.ReasonSubdomainGuess])
}

func TestDiscover_DedupedByExactURL(t *testing.T) {
	srv, baseURL, _ := testServer(t)
	d := NewDiscovererWithClient(srv.Client())

	candidates := d.Discover(context.Background(), baseURL, 200)

	seen := make(map[string]bool)
	for _, c := range candidates {
		assert.False(t, seen[c.URL], "duplicate candidate %s", c.URL)
		seen[c.URL] = true
	}
}

func TestDiscover_EncodedLinkVariantsDedup(t *testing.T) {
	// Both hrefs resolve to the same absolute page; it must survive as a
	// single candidate.
	page := `<html><body>
<a href="/investors">Investor Relations</a>
<a href="/%69nvestors">Investor Relations (encoded)</a>
</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	t.Cleanup(srv.Close)
	host := strings.TrimPrefix(srv.URL, "http://")

	d := NewDiscovererWithClient(srv.Client())
	candidates := d.Discover(context.Background(), srv.URL, 200)

	var investors int
	for _, c := range candidates {
		if c.URL == "https://"+host+"/investors" {
			investors++
		}
		assert.NotContains(t, c.URL, "%69")
	}
	assert.Equal(t, 1, investors)
}

func TestResolveLink_Canonicalizes(t *testing.T) {
	base, err := url.Parse("https://acme.com")
	require.NoError(t, err)

	tests := []struct {
		name string
		href string
		want string
	}{
		{"plain path", "/investors", "https://acme.com/investors"},
		{"percent-encoded path", "/%69nvestors", "https://acme.com/investors"},
		{"upper-cased host", "https://ACME.com/Investors", "https://acme.com/Investors"},
		{"fragment stripped", "/investors#reports", "https://acme.com/investors"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := resolveLink(base, tt.href)
			require.NotNil(t, link)
			assert.Equal(t, tt.want, link.String())
		})
	}

	assert.Nil(t, resolveLink(base, "#top"))
	assert.Nil(t, resolveLink(base, "mailto:ir@acme.com"))
	assert.Nil(t, resolveLink(base, "javascript:void(0)"))
}

func TestDiscover_TruncatedToMaxPages(t *testing.T) {
	srv, baseURL, _ := testServer(t)
	d := NewDiscovererWithClient(srv.Client())

	candidates := d.Discover(context.Background(), baseURL, 5)
	assert.Len(t, candidates, 5)

	// Truncation keeps the front of the list, so crawled links survive.
	assert.Equal(t, model.ReasonCrawledLink, candidates[0].Reason)
}

func TestDiscover_HomepageUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	d := NewDiscovererWithClient(srv.Client())
	candidates := d.Discover(context.Background(), srv.URL, 10)

	assert.Empty(t, candidates)
}

func TestPathLooksFinancial(t *testing.T) {
	assert.True(t, pathLooksFinancial("/investor-relations"))
	assert.True(t, pathLooksFinancial("/Company/Results"))
	assert.False(t, pathLooksFinancial("/blog/post-1"))
}

func TestAnchorLooksFinancial(t *testing.T) {
	assert.True(t, anchorLooksFinancial("2024 Annual Report"))
	assert.True(t, anchorLooksFinancial("Investor Relations"))
	assert.False(t, anchorLooksFinancial("Careers"))
}
