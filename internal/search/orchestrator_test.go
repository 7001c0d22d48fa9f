package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
)

// stubBackend implements Backend with a fixed outcome.
type stubBackend struct {
	tier  model.SearchTier
	text  string
	err   error
	calls int
}

func (s *stubBackend) Tier() model.SearchTier { return s.tier }
func (s *stubBackend) Lookup(_ context.Context, _ model.Company) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestOrchestrator_FirstTierWins(t *testing.T) {
	premium := &stubBackend{
		tier: model.TierPremiumSearchAPI,
		text: "Acme's annual revenue in fiscal year 2025 was $4 billion.",
	}
	primary := &stubBackend{tier: model.TierPrimarySearchEngine}

	o := NewOrchestrator(premium, primary)
	match, tier, ok := o.Find(context.Background(), model.Company{Name: "Acme"})

	require.True(t, ok)
	assert.Equal(t, model.TierPremiumSearchAPI, tier)
	assert.Equal(t, "$4 billion", match.Format())
	assert.Zero(t, primary.calls)
}

func TestOrchestrator_AdvancesOnError(t *testing.T) {
	premium := &stubBackend{tier: model.TierPremiumSearchAPI, err: errors.New("no api key")}
	primary := &stubBackend{
		tier: model.TierPrimarySearchEngine,
		text: "2024 revenue: $2 billion.",
	}

	o := NewOrchestrator(premium, primary)
	match, tier, ok := o.Find(context.Background(), model.Company{Name: "Acme"})

	require.True(t, ok)
	assert.Equal(t, model.TierPrimarySearchEngine, tier)
	assert.Equal(t, 2024, match.Year)
	assert.Equal(t, 1, premium.calls)
}

func TestOrchestrator_AdvancesWhenTextYieldsNoFigure(t *testing.T) {
	premium := &stubBackend{
		tier: model.TierPremiumSearchAPI,
		text: "I could not find any published figure for this company.",
	}
	secondary := &stubBackend{
		tier: model.TierSecondarySearchEngine,
		text: "Annual revenue of $90 million reported.",
	}

	o := NewOrchestrator(premium, secondary)
	match, tier, ok := o.Find(context.Background(), model.Company{Name: "Acme"})

	require.True(t, ok)
	assert.Equal(t, model.TierSecondarySearchEngine, tier)
	assert.Equal(t, "$90 million", match.Format())
}

func TestOrchestrator_AllTiersExhausted(t *testing.T) {
	b1 := &stubBackend{tier: model.TierPremiumSearchAPI, err: errors.New("down")}
	b2 := &stubBackend{tier: model.TierPrimarySearchEngine, text: "nothing relevant"}
	b3 := &stubBackend{tier: model.TierSecondarySearchEngine, err: errors.New("down")}

	o := NewOrchestrator(b1, b2, b3)
	_, _, ok := o.Find(context.Background(), model.Company{Name: "Acme"})

	assert.False(t, ok)
	assert.Equal(t, 1, b1.calls)
	assert.Equal(t, 1, b2.calls)
	assert.Equal(t, 1, b3.calls)
}

func TestOrchestrator_SkipsNilBackends(t *testing.T) {
	primary := &stubBackend{
		tier: model.TierPrimarySearchEngine,
		text: "Annual revenue of $1 million.",
	}

	o := NewOrchestrator(nil, primary)
	_, tier, ok := o.Find(context.Background(), model.Company{Name: "Acme"})

	require.True(t, ok)
	assert.Equal(t, model.TierPrimarySearchEngine, tier)
}

func TestOrchestrator_CancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &stubBackend{tier: model.TierPremiumSearchAPI, text: "revenue of $1 billion"}
	o := NewOrchestrator(b)
	_, _, ok := o.Find(ctx, model.Company{Name: "Acme"})

	assert.False(t, ok)
	assert.Zero(t, b.calls)
}
