// Package revenue scans weighted text for monetary figures and scores them
// against fiscal-year priority and semantic context.
package revenue

import (
	"fmt"
	"regexp"
)

// yearPriority lists fiscal years most-recent-first. The first year found
// in a context window wins, and earlier entries score higher.
var yearPriority = []int{2025, 2024, 2023}

// YearPriority returns the fiscal years the engine anchors to, in
// descending priority. The search tiers build their queries from the same
// list.
func YearPriority() []int {
	out := make([]int, len(yearPriority))
	copy(out, yearPriority)
	return out
}

type ruleTier int

const (
	// tierYearAnchored rules require a year token and a currency amount in
	// the same match.
	tierYearAnchored ruleTier = iota
	// tierGeneric rules match bare monetary expressions and rely on the
	// context window for semantic validation.
	tierGeneric
)

// rule is one entry of the ordered pattern table. Earlier rules win ties.
type rule struct {
	tier ruleTier
	re   *regexp.Regexp
	// contextKeywords must appear in the context window for the match to
	// qualify. Empty means the pattern itself carries the anchor.
	contextKeywords []string
}

const (
	amountGroup   = `(?P<amt>\d[\d,.]*)`
	scaleGroup    = `(?P<scale>million|billion|trillion|bn|mn|[mbt])\b`
	currencyGroup = `(?P<cur>[$€£¥])`
	yearToken     = `(?:fiscal year|fy)?\s*%d`
)

// tierATemplates pair a year token with a revenue/sales-anchored monetary
// expression inside one match. %d is substituted per priority year.
var tierATemplates = []string{
	// "fiscal year 2024 ... revenue of $1.2 billion"
	`(?i)` + yearToken + `[^.]{0,80}?(?:revenue|sales)[^.]{0,40}?` + currencyGroup + `\s*` + amountGroup + `\s*` + scaleGroup,
	// "revenue of $1.2 billion ... in 2024"
	`(?i)(?:revenue|sales)[^.]{0,40}?` + currencyGroup + `\s*` + amountGroup + `\s*` + scaleGroup + `[^.]{0,80}?` + yearToken,
	// "2024 revenue: 3.4 billion dollars"
	`(?i)` + yearToken + `[^.]{0,80}?(?:revenue|sales)[^.]{0,40}?` + amountGroup + `\s*(?P<scale>million|billion|trillion)\s*(?:dollars|usd)`,
}

// tierBPatterns are the generic monetary expressions, validated against the
// context window. Order preserved from the legacy pattern list; it decides
// ties.
var tierBPatterns = []string{
	`(?i)` + currencyGroup + `\s*` + amountGroup + `\s*` + scaleGroup,
	`(?i)` + amountGroup + `\s*(?P<scale>million|billion|trillion)\s*(?:dollars|usd)`,
	`(?i)revenue\s*(?:of|was|reached|:)\s*` + currencyGroup + `?\s*` + amountGroup + `\s*` + scaleGroup,
	`(?i)` + amountGroup + `\s*(?P<scale>million|billion|trillion)\s+in revenue`,
}

// tierBContext is required within the window around a generic match.
var tierBContext = []string{"revenue", "sales", "turnover"}

// ruleTable is the single ordered table both tiers iterate. Year-anchored
// rules come first, grouped by priority year so earlier years win ties.
var ruleTable = buildRuleTable()

func buildRuleTable() []rule {
	var rules []rule
	for _, year := range yearPriority {
		for _, tpl := range tierATemplates {
			rules = append(rules, rule{
				tier: tierYearAnchored,
				re:   regexp.MustCompile(fmt.Sprintf(tpl, year)),
			})
		}
	}
	for _, pattern := range tierBPatterns {
		rules = append(rules, rule{
			tier:            tierGeneric,
			re:              regexp.MustCompile(pattern),
			contextKeywords: tierBContext,
		})
	}
	return rules
}
