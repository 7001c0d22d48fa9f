// Package extract converts raw page content into weighted plain text,
// prioritizing sections that look financial.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
)

// FinancialKeywords flag a text span as likely relevant to revenue
// extraction. Shared with the search tiers, which use the same filter on
// result snippets.
var FinancialKeywords = []string{
	"revenue", "annual revenue",
	"sales", "turnover", "income", "earnings",
	"financial results", "financial highlights",
	"million", "billion", "trillion",
	"fiscal year",
}

// fyToken matches the fiscal-year abbreviation as a standalone token ("FY
// 2024", "FY2024"). Plain substring search would flag words like "justify".
var fyToken = regexp.MustCompile(`\bfy(?:\d{2,4})?\b`)

// ContainsFinancialKeyword reports whether text mentions any financial
// keyword, case-insensitively.
func ContainsFinancialKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range FinancialKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return fyToken.MatchString(lower)
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func collapse(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// Extract parses raw HTML into weighted text: financial segments first (in
// document order), then the full page rendering as a low-priority general
// segment. Duplication between segments is intentional; a span captured
// twice matches with more weight downstream. Malformed markup degrades to
// whatever could be parsed, never an error.
func Extract(rawHTML string) model.WeightedText {
	var out model.WeightedText
	if strings.TrimSpace(rawHTML) == "" {
		return out
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		// html.Parse is lenient; an error here means unreadable input.
		return out
	}

	// Heading-anchored capture: a financial heading plus everything under it
	// until the next heading of equal or higher level.
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		if !ContainsFinancialKeyword(sel.Text()) {
			return
		}
		for _, node := range sel.Nodes {
			if section := headingSection(node); section != "" {
				out.Append(model.SegmentFinancial, section)
			}
		}
	})

	// Independent block scan. Overlap with the heading capture is allowed.
	doc.Find("p, div, section, table, tr, td").Each(func(_ int, sel *goquery.Selection) {
		text := collapse(sel.Text())
		if text != "" && ContainsFinancialKeyword(text) {
			out.Append(model.SegmentFinancial, text)
		}
	})

	body := doc.Find("body")
	general := collapse(body.Text())
	if general == "" {
		general = collapse(doc.Text())
	}
	out.Append(model.SegmentGeneral, general)

	return out
}

// headingLevel returns 1..6 for h1..h6 element nodes, 0 otherwise.
func headingLevel(n *html.Node) int {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}
	tag := strings.ToLower(n.Data)
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// headingSection renders a heading and its following siblings as one text
// span, terminating at the next heading of equal or higher level.
func headingSection(heading *html.Node) string {
	level := headingLevel(heading)
	if level == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(nodeText(heading))
	for sib := heading.NextSibling; sib != nil; sib = sib.NextSibling {
		if l := headingLevel(sib); l != 0 && l <= level {
			break
		}
		if text := nodeText(sib); text != "" {
			b.WriteByte(' ')
			b.WriteString(text)
		}
	}
	return collapse(b.String())
}

// nodeText renders the plain text of a node subtree, skipping script and
// style content.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case html.TextNode:
		return n.Data
	case html.CommentNode, html.DoctypeNode:
		return ""
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if tag == "script" || tag == "style" {
			return ""
		}
	}

	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if text := nodeText(child); text != "" {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(text)
		}
	}
	return b.String()
}
