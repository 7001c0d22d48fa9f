package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/revenue"
)

// Orchestrator runs the search fallback tiers in order after the website
// pipeline comes up empty. Each backend produces raw text which is handed to
// the revenue engine; the first tier that yields a figure ends the chain.
type Orchestrator struct {
	backends []Backend
}

// NewOrchestrator builds the tier chain. Backends are tried in the order
// given; nil entries are skipped so callers can pass optional tiers directly.
func NewOrchestrator(backends ...Backend) *Orchestrator {
	o := &Orchestrator{}
	for _, b := range backends {
		if b != nil {
			o.backends = append(o.backends, b)
		}
	}
	return o
}

// Find walks the tiers for a company. It returns the first revenue figure
// found and the tier that produced it. A tier that errors, returns no text,
// or whose text yields no figure simply advances the chain.
func (o *Orchestrator) Find(ctx context.Context, company model.Company) (model.RevenueMatch, model.SearchTier, bool) {
	for _, b := range o.backends {
		if ctx.Err() != nil {
			break
		}
		log := zap.L().With(
			zap.String("tier", b.Tier().String()),
			zap.String("company", company.Name),
		)

		text, err := b.Lookup(ctx, company)
		if err != nil {
			log.Debug("search: tier failed, advancing", zap.Error(err))
			continue
		}
		if text == "" {
			log.Debug("search: tier returned no text, advancing")
			continue
		}

		match, ok := revenue.ExtractFromText(text)
		if !ok {
			log.Debug("search: no revenue figure in tier text, advancing")
			continue
		}
		log.Info("search: revenue found",
			zap.String("revenue", match.Format()),
			zap.Int("year", match.Year),
		)
		return match, b.Tier(), true
	}
	return model.RevenueMatch{}, model.TierSecondarySearchEngine, false
}
