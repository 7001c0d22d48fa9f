package search

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
	"github.com/PopVibeCoding/rev-finder-web-scraper/pkg/perplexity"
)

// PremiumBackend queries the Perplexity API with trusted-financial-source
// domain filters. It asks about the top-priority year only; the cheaper
// engines below it cover the rest of the ladder.
type PremiumBackend struct {
	client perplexity.Client
	cfg    TierConfig
}

// NewPremiumBackend creates the premium tier. A nil client models "no API
// key configured"; Lookup then fails immediately and the orchestrator
// advances.
func NewPremiumBackend(client perplexity.Client, cfg TierConfig) *PremiumBackend {
	return &PremiumBackend{client: client, cfg: cfg}
}

func (p *PremiumBackend) Tier() model.SearchTier { return model.TierPremiumSearchAPI }

func (p *PremiumBackend) Lookup(ctx context.Context, company model.Company) (string, error) {
	if p.client == nil {
		return "", eris.New("search: premium api key not configured")
	}
	if len(p.cfg.YearPriority) == 0 {
		return "", eris.New("search: no priority years configured")
	}

	year := p.cfg.YearPriority[0]
	prompt := fmt.Sprintf(
		"What was the annual revenue of %s in fiscal year %d? Answer with the figure and its source.",
		company.Name, year,
	)

	resp, err := p.client.ChatCompletion(ctx, perplexity.ChatCompletionRequest{
		Messages: []perplexity.Message{
			{Role: "user", Content: prompt},
		},
		SearchDomainFilter: p.cfg.TrustedSources,
	})
	if err != nil {
		return "", eris.Wrap(err, "search: premium lookup")
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("search: premium response empty")
	}

	return resp.Choices[0].Message.Content, nil
}
