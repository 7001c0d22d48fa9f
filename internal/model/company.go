package model

// NotFound is the sentinel returned when no revenue figure could be
// extracted. A transient fetch failure and a genuinely absent figure both
// collapse to this value.
const NotFound = "Not Found"

// Company identifies the target of one revenue lookup.
type Company struct {
	URL     string `json:"url"`
	Name    string `json:"customerName,omitempty"`
	Country string `json:"country,omitempty"`
}

// ScrapeResult is the outcome of a revenue lookup for one company.
type ScrapeResult struct {
	URL     string `json:"url"`
	Revenue string `json:"revenue"`
	Name    string `json:"customerName,omitempty"`
	Country string `json:"country,omitempty"`
}

// BatchResult wraps the per-URL results of a batch lookup.
type BatchResult struct {
	Results []ScrapeResult `json:"results"`
}
