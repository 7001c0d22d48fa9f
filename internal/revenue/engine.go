package revenue

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
)

// contextRadius bounds the text window inspected around each raw match.
const contextRadius = 100

// ExtractRevenue scans weighted text with the ordered rule table and picks
// the highest-scoring qualifying match. Year-anchored rules run first;
// generic rules only when no year-anchored match qualifies anywhere in the
// text. The second return value is false when nothing qualifies.
//
// The function is pure: identical input always yields an identical match.
func ExtractRevenue(wt model.WeightedText) (model.RevenueMatch, bool) {
	text := wt.Flatten()
	if strings.TrimSpace(text) == "" {
		return model.RevenueMatch{}, false
	}

	if m, ok := scan(text, tierYearAnchored); ok {
		return m, true
	}
	return scan(text, tierGeneric)
}

// ExtractFromText is a convenience wrapper for search-derived text, which
// arrives unweighted.
func ExtractFromText(text string) (model.RevenueMatch, bool) {
	var wt model.WeightedText
	wt.Append(model.SegmentGeneral, text)
	return ExtractRevenue(wt)
}

// scan runs all rules of one tier over the text. The maximum score wins;
// ties go to the first match by rule order, then text position.
func scan(text string, tier ruleTier) (model.RevenueMatch, bool) {
	var best model.RevenueMatch
	found := false
	for _, r := range ruleTable {
		if r.tier != tier {
			continue
		}
		for _, loc := range r.re.FindAllStringSubmatchIndex(text, -1) {
			cand, ok := buildMatch(r, text, loc)
			if !ok {
				continue
			}
			if !found || cand.Score > best.Score {
				best = cand
				found = true
			}
		}
	}
	return best, found
}

func buildMatch(r rule, text string, loc []int) (model.RevenueMatch, bool) {
	raw := text[loc[0]:loc[1]]
	window := contextWindow(text, loc[0], loc[1])
	lower := strings.ToLower(window)

	// A window dominated by profit language is only acceptable when it also
	// talks about revenue. Holds identically for website and search text.
	if (strings.Contains(lower, "profit") || strings.Contains(lower, "net income")) &&
		!strings.Contains(lower, "revenue") {
		return model.RevenueMatch{}, false
	}

	if len(r.contextKeywords) > 0 && !containsAny(lower, r.contextKeywords) {
		return model.RevenueMatch{}, false
	}

	amount := group(r.re, text, loc, "amt")
	if amount == "" {
		return model.RevenueMatch{}, false
	}

	year, yearWeight := inferYear(lower)

	m := model.RevenueMatch{
		Amount:   strings.Trim(amount, ",."),
		Scale:    normalizeScale(group(r.re, text, loc, "scale")),
		Currency: currencySymbol(raw),
		Year:     year,
		Score:    yearWeight + keywordBonus(lower),
		Context:  strings.TrimSpace(window),
	}
	return m, true
}

func group(re *regexp.Regexp, text string, loc []int, name string) string {
	idx := re.SubexpIndex(name)
	if idx < 0 || 2*idx+1 >= len(loc) || loc[2*idx] < 0 {
		return ""
	}
	return text[loc[2*idx]:loc[2*idx+1]]
}

func contextWindow(text string, start, end int) string {
	lo := start - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + contextRadius
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// currencySymbol returns the first symbol present in the raw matched text,
// checked in fixed priority order.
func currencySymbol(raw string) string {
	for _, sym := range []string{"$", "€", "£", "¥"} {
		if strings.Contains(raw, sym) {
			return sym
		}
	}
	return ""
}

// normalizeScale maps abbreviations to full magnitude words.
func normalizeScale(scale string) string {
	switch strings.ToLower(scale) {
	case "m", "mn", "million":
		return "million"
	case "b", "bn", "billion":
		return "billion"
	case "t", "trillion":
		return "trillion"
	default:
		return ""
	}
}

var anyYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// inferYear picks the highest-priority year present anywhere in the window,
// not the nearest token. Years outside the priority list are recorded but
// carry no weight.
func inferYear(lowerWindow string) (year, weight int) {
	for i, y := range yearPriority {
		if strings.Contains(lowerWindow, strconv.Itoa(y)) {
			return y, (len(yearPriority) - i) * 100
		}
	}
	if tok := anyYearRe.FindString(lowerWindow); tok != "" {
		y, _ := strconv.Atoi(tok)
		return y, 0
	}
	return 0, 0
}

// keywordBonus rewards stronger revenue context, strongest phrase only.
func keywordBonus(lowerWindow string) int {
	switch {
	case strings.Contains(lowerWindow, "annual revenue"):
		return 30
	case strings.Contains(lowerWindow, "revenue"):
		return 20
	case strings.Contains(lowerWindow, "sales"):
		return 10
	default:
		return 0
	}
}
