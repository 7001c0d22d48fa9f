package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/resilience"
)

const maxBodyBytes = 512 * 1024

// browserHeaders are sent on every attempt so fetches look like a regular
// browser session.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
}

// HTTPFetcher fetches pages over plain net/http with retries and a one-shot
// protocol downgrade on TLS certificate failures.
type HTTPFetcher struct {
	client *http.Client
	retry  resilience.RetryConfig
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		f.client.Timeout = d
	}
}

// WithRetry overrides the retry configuration.
func WithRetry(cfg resilience.RetryConfig) HTTPOption {
	return func(f *HTTPFetcher) {
		f.retry = cfg
	}
}

// NewHTTPFetcher creates an HTTPFetcher with a 15s timeout and the default
// three-attempt exponential backoff.
func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		retry: resilience.DefaultRetryConfig(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *HTTPFetcher) Name() string           { return "http" }
func (f *HTTPFetcher) Supports(_ string) bool { return true }

// Fetch retrieves a URL with retries. A TLS certificate failure on an https
// URL triggers one same-attempt try over plain http; success on that
// downgrade short-circuits the retry loop. Exhausting all attempts returns
// the last error; callers degrade the page to empty content.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (*model.CrawledPage, error) {
	cfg := f.retry
	cfg.ShouldRetry = func(err error) bool {
		// Certificate failures stay in the loop after the downgrade try.
		return resilience.IsTransient(err) || resilience.IsCertificateError(err)
	}
	cfg.OnRetry = resilience.RetryLogger("fetch", targetURL)

	return resilience.DoVal(ctx, cfg, func(ctx context.Context) (*model.CrawledPage, error) {
		page, err := f.fetchOnce(ctx, targetURL)
		if err == nil {
			return page, nil
		}

		if resilience.IsCertificateError(err) && strings.HasPrefix(targetURL, "https://") {
			downgraded := "http://" + strings.TrimPrefix(targetURL, "https://")
			zap.L().Debug("fetch: tls failure, trying plain http",
				zap.String("url", targetURL),
			)
			if page, dErr := f.fetchOnce(ctx, downgraded); dErr == nil {
				return page, nil
			}
		}

		return nil, err
	})
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, targetURL string) (*model.CrawledPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: create request")
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "fetch: read body")
	}

	if blocked, blockType := DetectBlock(resp, body); blocked {
		return nil, eris.Errorf("fetch: blocked (%s)", blockType)
	}

	if resp.StatusCode >= 400 {
		err := eris.Errorf("fetch: status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	return &model.CrawledPage{
		URL:        targetURL,
		Body:       string(body),
		StatusCode: resp.StatusCode,
	}, nil
}
