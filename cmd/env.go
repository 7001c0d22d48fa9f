package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/discovery"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/fetch"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/lang"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/pipeline"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/resilience"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/search"
	"github.com/PopVibeCoding/rev-finder-web-scraper/pkg/jina"
	"github.com/PopVibeCoding/rev-finder-web-scraper/pkg/perplexity"
	"github.com/PopVibeCoding/rev-finder-web-scraper/pkg/translate"
)

// initPipeline wires the full lookup stack from config: fetch chain,
// discovery, and the search fallback tiers. Optional backends (Jina reader,
// premium search, translation) are attached only when configured.
func initPipeline() *pipeline.Pipeline {
	retry := resilience.DefaultRetryConfig()
	if cfg.Fetch.MaxRetries > 0 {
		retry.MaxAttempts = cfg.Fetch.MaxRetries
	}

	httpFetcher := fetch.NewHTTPFetcher(
		fetch.WithTimeout(time.Duration(cfg.Fetch.TimeoutSecs)*time.Second),
		fetch.WithRetry(retry),
	)

	fetchers := []fetch.Fetcher{httpFetcher}
	if cfg.Jina.Key != "" {
		jinaClient := jina.NewClient(cfg.Jina.Key, jina.WithBaseURL(cfg.Jina.BaseURL))
		fetchers = append(fetchers, fetch.NewJinaFetcher(jinaClient))
	}
	chain := fetch.NewChain(fetchers...)

	tierCfg := loadTierConfig()

	var translator translate.Client
	if cfg.Translate.URL != "" {
		translator = translate.NewClient(cfg.Translate.URL, cfg.Translate.Key)
	}
	adapter := lang.NewAdapter(translator)

	var premium *search.PremiumBackend
	if cfg.Perplexity.Key != "" {
		pplx := perplexity.NewClient(cfg.Perplexity.Key,
			perplexity.WithBaseURL(cfg.Perplexity.BaseURL),
			perplexity.WithModel(cfg.Perplexity.Model),
		)
		premium = search.NewPremiumBackend(pplx, tierCfg)
	}

	orchestrator := search.NewOrchestrator(
		backendOrNil(premium),
		search.NewPrimaryBackend(httpFetcher, adapter, tierCfg),
		search.NewSecondaryBackend(httpFetcher, tierCfg),
	)

	return pipeline.New(
		discovery.NewDiscoverer(),
		chain,
		pipeline.WithMaxPages(cfg.Crawl.MaxPages),
		pipeline.WithMaxConcurrent(cfg.Fetch.MaxConcurrent),
		pipeline.WithSearchFallback(orchestrator),
	)
}

// backendOrNil keeps a typed nil *PremiumBackend from sneaking into the
// orchestrator as a non-nil Backend interface.
func backendOrNil(b *search.PremiumBackend) search.Backend {
	if b == nil {
		return nil
	}
	return b
}

func loadTierConfig() search.TierConfig {
	tierCfg := search.DefaultTierConfig()
	if cfg.Search.TierConfigPath != "" {
		loaded, err := search.LoadTierConfig(cfg.Search.TierConfigPath)
		if err != nil {
			zap.L().Warn("tier config load failed, using defaults", zap.Error(err))
		} else {
			tierCfg = loaded
		}
	}
	if cfg.Search.MaxPrimaryQueries > 0 {
		tierCfg.MaxPrimaryQueries = cfg.Search.MaxPrimaryQueries
	}
	if cfg.Search.MaxSecondaryQueries > 0 {
		tierCfg.MaxSecondaryQueries = cfg.Search.MaxSecondaryQueries
	}
	if cfg.Search.MaxResultLinks > 0 {
		tierCfg.MaxResultLinks = cfg.Search.MaxResultLinks
	}
	return tierCfg
}
