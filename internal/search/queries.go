package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/lang"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
)

// translatable are the English phrases translated for non-English targets.
var translatable = []string{"annual revenue", "financial results"}

// trustedFilter renders a trusted-source site filter clause, e.g.
// (site:macrotrends.net OR site:zoominfo.com).
func trustedFilter(sources []string) string {
	if len(sources) == 0 {
		return ""
	}
	parts := make([]string, len(sources))
	for i, s := range sources {
		parts[i] = "site:" + s
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// buildPrimaryQueries produces the primary-engine query list: per-year
// English queries (domain-filtered, then trusted-source filtered), plus
// translated per-year queries when the company's country maps to a
// non-English language. Callers truncate to their query budget.
func buildPrimaryQueries(ctx context.Context, company model.Company, domain string, cfg TierConfig, adapter *lang.Adapter) []string {
	var queries []string

	for _, year := range cfg.YearPriority {
		if domain != "" {
			queries = append(queries, fmt.Sprintf(`"%s" annual revenue %d site:%s`, company.Name, year, domain))
		}
		queries = append(queries, fmt.Sprintf(`"%s" annual revenue %d`, company.Name, year))
		if f := trustedFilter(cfg.TrustedSources); f != "" {
			queries = append(queries, fmt.Sprintf(`"%s" revenue %d %s`, company.Name, year, f))
		}
	}

	code := lang.LanguageFor(company.Country)
	if code != "en" {
		translated := adapter.TranslateKeywords(ctx, translatable, code)
		for _, year := range cfg.YearPriority {
			for _, phrase := range translated {
				queries = append(queries, fmt.Sprintf(`"%s" %s %d`, company.Name, phrase, year))
			}
		}
	}

	return queries
}

// buildSecondaryQueries produces the secondary-engine query list: per-year
// queries with trusted-source filters.
func buildSecondaryQueries(company model.Company, cfg TierConfig) []string {
	filter := trustedFilter(cfg.TrustedSources)
	var queries []string
	for _, year := range cfg.YearPriority {
		q := fmt.Sprintf(`"%s" annual revenue %d`, company.Name, year)
		if filter != "" {
			q += " " + filter
		}
		queries = append(queries, q)
	}
	return queries
}

func capQueries(queries []string, limit int) []string {
	if limit > 0 && len(queries) > limit {
		return queries[:limit]
	}
	return queries
}
