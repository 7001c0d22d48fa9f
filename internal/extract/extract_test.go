package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
)

const investorPage = `<html><head><title>Acme</title>
<script>var tracking = "ignore me";</script>
<style>.hero { color: red; }</style>
</head><body>
<h1>About Acme</h1>
<p>Acme builds widgets for the industrial sector.</p>
<h2>Financial Highlights</h2>
<p>Annual revenue reached $1.2 billion in fiscal year 2024.</p>
<p>Headcount grew to 4,000 employees.</p>
<h2>Careers</h2>
<p>We are hiring in Berlin and Austin.</p>
</body></html>`

func TestExtract_FinancialSegmentsFirst(t *testing.T) {
	wt := Extract(investorPage)
	require.False(t, wt.Empty())

	var kinds []model.SegmentKind
	for _, s := range wt.Segments {
		kinds = append(kinds, s.Kind)
	}

	// Every financial segment precedes the single general segment.
	assert.Equal(t, model.SegmentGeneral, kinds[len(kinds)-1])
	for _, k := range kinds[:len(kinds)-1] {
		assert.Equal(t, model.SegmentFinancial, k)
	}
}

func TestExtract_HeadingSectionCapture(t *testing.T) {
	wt := Extract(investorPage)

	found := false
	for _, s := range wt.Segments {
		if s.Kind != model.SegmentFinancial {
			continue
		}
		// The section under "Financial Highlights" stops at the next h2, so
		// it holds the revenue line but not the careers blurb.
		if strings.Contains(s.Text, "Financial Highlights") &&
			strings.Contains(s.Text, "$1.2 billion") {
			found = true
			assert.NotContains(t, s.Text, "hiring in Berlin")
		}
	}
	assert.True(t, found, "heading section with revenue not captured")
}

func TestExtract_ScriptAndStyleSkipped(t *testing.T) {
	wt := Extract(investorPage)

	for _, s := range wt.Segments {
		assert.NotContains(t, s.Text, "ignore me")
		assert.NotContains(t, s.Text, "color: red")
	}
}

func TestExtract_GeneralSegmentHoldsWholePage(t *testing.T) {
	wt := Extract(investorPage)

	general := wt.Segments[len(wt.Segments)-1]
	assert.Equal(t, model.SegmentGeneral, general.Kind)
	assert.Contains(t, general.Text, "industrial sector")
	assert.Contains(t, general.Text, "hiring in Berlin")
}

func TestExtract_NonFinancialPage(t *testing.T) {
	page := `<html><body><h1>Careers</h1><p>Join our team.</p></body></html>`
	wt := Extract(page)

	require.Len(t, wt.Segments, 1)
	assert.Equal(t, model.SegmentGeneral, wt.Segments[0].Kind)
}

func TestExtract_MalformedHTMLDegrades(t *testing.T) {
	page := `<html><body><p>Revenue of $3 million<div>unclosed`
	wt := Extract(page)

	assert.False(t, wt.Empty())
	assert.Contains(t, wt.Flatten(), "$3 million")
}

func TestExtract_EmptyInput(t *testing.T) {
	assert.True(t, Extract("").Empty())
	assert.True(t, Extract("   ").Empty())
}

func TestExtract_WhitespaceCollapsed(t *testing.T) {
	page := "<html><body><p>Revenue   was\n\n\t $5   million</p></body></html>"
	wt := Extract(page)

	assert.Contains(t, wt.Flatten(), "Revenue was $5 million")
}

func TestContainsFinancialKeyword(t *testing.T) {
	assert.True(t, ContainsFinancialKeyword("Annual REVENUE grew"))
	assert.True(t, ContainsFinancialKeyword("FY 2024 results"))
	assert.True(t, ContainsFinancialKeyword("FY2024 highlights"))
	assert.False(t, ContainsFinancialKeyword("Our design philosophy"))
}

func TestContainsFinancialKeyword_FYNeedsWordBoundary(t *testing.T) {
	assert.False(t, ContainsFinancialKeyword("We can justify the expansion."))
	assert.False(t, ContainsFinancialKeyword("Candidates must qualify first."))
	assert.True(t, ContainsFinancialKeyword("Guidance for FY 2025."))
}
