package model

import "strings"

// RevenueMatch is a scored candidate monetary figure found in text.
type RevenueMatch struct {
	// Amount holds the raw digits and separators as matched, unnormalized.
	Amount string `json:"amount"`
	// Scale is the magnitude word: million, billion or trillion. Empty when
	// the matched text carried no scale.
	Scale string `json:"scale,omitempty"`
	// Currency is the symbol found in the matched text: $, €, £ or ¥.
	Currency string `json:"currency,omitempty"`
	// Year is the fiscal year inferred from the context window, 0 if none.
	Year int `json:"year,omitempty"`
	// Score ranks competing matches; the maximum wins.
	Score int `json:"score"`
	// Context is the bounded text window surrounding the raw match.
	Context string `json:"context,omitempty"`
}

// Format renders the match as "{currency}{amount} {scale}" with empty
// currency/scale omitted.
func (m RevenueMatch) Format() string {
	var b strings.Builder
	b.WriteString(m.Currency)
	b.WriteString(m.Amount)
	if m.Scale != "" {
		b.WriteByte(' ')
		b.WriteString(m.Scale)
	}
	return b.String()
}

// SearchTier is one ordered stage of the search-escalation chain. The
// orchestrator advances tiers only on a fully empty result from the
// previous tier, never on partial success.
type SearchTier int

const (
	TierWebsiteScrape SearchTier = iota
	TierPremiumSearchAPI
	TierPrimarySearchEngine
	TierSecondarySearchEngine
)

func (t SearchTier) String() string {
	switch t {
	case TierWebsiteScrape:
		return "website_scrape"
	case TierPremiumSearchAPI:
		return "premium_search_api"
	case TierPrimarySearchEngine:
		return "primary_search_engine"
	case TierSecondarySearchEngine:
		return "secondary_search_engine"
	default:
		return "unknown"
	}
}
