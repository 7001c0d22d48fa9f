package discovery

import "strings"

// financialPaths are URL path segments that tend to lead to financial
// disclosure pages. Used both to classify crawled links and to synthesize
// guessed candidates.
var financialPaths = []string{
	"investor", "investors", "investor-relations", "ir",
	"company", "corporate",
	"finance", "financial", "financials",
	"annual-report", "quarterly-report",
	"results", "earnings", "press",
}

// anchorKeywords classify a link by its visible text.
var anchorKeywords = []string{
	"revenue", "earnings", "fiscal year",
	"annual report", "financial results", "investor relations",
}

// commonPages are well-known page names appended as synthetic candidates.
var commonPages = []string{
	"about", "about-us", "annual-report", "financial-results",
}

// irSubdomains are the investor-relations subdomain guesses.
var irSubdomains = []string{"investors.", "investor.", "ir."}

func pathLooksFinancial(path string) bool {
	path = strings.ToLower(path)
	for _, kw := range financialPaths {
		if strings.Contains(path, kw) {
			return true
		}
	}
	return false
}

func anchorLooksFinancial(text string) bool {
	text = strings.ToLower(text)
	for _, kw := range anchorKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
