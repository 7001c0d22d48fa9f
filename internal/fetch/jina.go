package fetch

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
	"github.com/PopVibeCoding/rev-finder-web-scraper/pkg/jina"
)

// circuitBreaker tracks consecutive failures to skip a flaky upstream.
type circuitBreaker struct {
	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	openUntil   time.Time
	threshold   int
	window      time.Duration
	cooldown    time.Duration
}

func newCircuitBreaker(threshold int, window, cooldown time.Duration) *circuitBreaker {
	return &circuitBreaker{
		threshold: threshold,
		window:    window,
		cooldown:  cooldown,
	}
}

func (cb *circuitBreaker) isOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return time.Now().Before(cb.openUntil)
}

func (cb *circuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	now := time.Now()
	if now.Sub(cb.lastFailure) > cb.window {
		cb.failures = 0
	}
	cb.failures++
	cb.lastFailure = now
	if cb.failures >= cb.threshold {
		cb.openUntil = now.Add(cb.cooldown)
		zap.L().Warn("fetch: jina circuit breaker opened",
			zap.Int("failures", cb.failures),
			zap.Duration("cooldown", cb.cooldown),
		)
	}
}

func (cb *circuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
}

// JinaFetcher wraps a Jina Reader client as a Fetcher with a circuit
// breaker. It picks up URLs the plain HTTP fetcher could not serve, e.g.
// behind anti-bot walls.
type JinaFetcher struct {
	client  jina.Client
	breaker *circuitBreaker
}

// NewJinaFetcher creates a JinaFetcher. Three consecutive failures within
// 30s open the circuit for 60s, so the chain skips straight past it.
func NewJinaFetcher(client jina.Client) *JinaFetcher {
	return &JinaFetcher{
		client:  client,
		breaker: newCircuitBreaker(3, 30*time.Second, 60*time.Second),
	}
}

func (j *JinaFetcher) Name() string { return "jina" }

// Supports returns true unless the circuit breaker is open.
func (j *JinaFetcher) Supports(_ string) bool {
	return !j.breaker.isOpen()
}

// Fetch retrieves a URL via Jina Reader and validates the response.
func (j *JinaFetcher) Fetch(ctx context.Context, targetURL string) (*model.CrawledPage, error) {
	if j.breaker.isOpen() {
		return nil, eris.New("fetch: jina circuit breaker open")
	}

	resp, err := j.client.Read(ctx, targetURL)
	if err != nil {
		j.breaker.recordFailure()
		return nil, err
	}

	if unusable(resp) {
		j.breaker.recordFailure()
		return nil, eris.New("fetch: jina response unusable")
	}

	j.breaker.recordSuccess()
	return &model.CrawledPage{
		URL:        resp.Data.URL,
		Title:      resp.Data.Title,
		Body:       resp.Data.Content,
		StatusCode: resp.Code,
	}, nil
}

// unusable checks whether a Jina response carries content worth extracting.
func unusable(resp *jina.ReadResponse) bool {
	if resp == nil {
		return true
	}
	if resp.Code != 0 && resp.Code != 200 {
		return true
	}

	content := strings.TrimSpace(resp.Data.Content)
	if len(content) < 100 {
		return true
	}

	lower := strings.ToLower(content)
	for _, sig := range []string{
		"checking your browser",
		"enable javascript",
		"access denied",
		"just a moment",
	} {
		if strings.Contains(lower, sig) && len(content) < 1000 {
			return true
		}
	}

	return false
}
