package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevenueMatch_Format(t *testing.T) {
	tests := []struct {
		name  string
		match RevenueMatch
		want  string
	}{
		{"full", RevenueMatch{Amount: "1.2", Scale: "billion", Currency: "$"}, "$1.2 billion"},
		{"no currency", RevenueMatch{Amount: "3.4", Scale: "billion"}, "3.4 billion"},
		{"no scale", RevenueMatch{Amount: "500", Currency: "€"}, "€500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.match.Format())
		})
	}
}

func TestSearchTier_Ordering(t *testing.T) {
	assert.Less(t, TierWebsiteScrape, TierPremiumSearchAPI)
	assert.Less(t, TierPremiumSearchAPI, TierPrimarySearchEngine)
	assert.Less(t, TierPrimarySearchEngine, TierSecondarySearchEngine)
}

func TestSearchTier_String(t *testing.T) {
	assert.Equal(t, "premium_search_api", TierPremiumSearchAPI.String())
	assert.Equal(t, "unknown", SearchTier(99).String())
}

func TestWeightedText(t *testing.T) {
	var wt WeightedText
	assert.True(t, wt.Empty())

	wt.Append(SegmentFinancial, "revenue line")
	wt.Append(SegmentGeneral, "")
	wt.Append(SegmentGeneral, "page text")

	assert.False(t, wt.Empty())
	assert.Len(t, wt.Segments, 2)
	assert.Equal(t, "revenue line page text", wt.Flatten())
}
