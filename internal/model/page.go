package model

// DiscoveryReason records how a candidate URL was produced.
type DiscoveryReason string

const (
	ReasonCrawledLink      DiscoveryReason = "crawled-link"
	ReasonSyntheticPath    DiscoveryReason = "synthetic-path"
	ReasonSubdomainGuess   DiscoveryReason = "subdomain-guess"
	ReasonExplicitFallback DiscoveryReason = "explicit-fallback"
)

// CandidateURL is a page hypothesized to contain financial disclosure
// content. Candidates are generated fresh per request and deduplicated by
// exact URL string within one discovery run.
type CandidateURL struct {
	URL    string          `json:"url"`
	Reason DiscoveryReason `json:"reason"`
}

// CrawledPage holds the raw content fetched for one URL. Body is empty when
// the fetch failed irrecoverably.
type CrawledPage struct {
	URL        string `json:"url"`
	Title      string `json:"title,omitempty"`
	Body       string `json:"body,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

// SegmentKind classifies a text segment by extraction priority.
type SegmentKind string

const (
	SegmentFinancial SegmentKind = "financial"
	SegmentGeneral   SegmentKind = "general"
)

// Segment is one span of extracted page text.
type Segment struct {
	Text string
	Kind SegmentKind
}

// WeightedText is the ordered output of text extraction: financial segments
// first (in document order), then the general full-page text. Duplication
// across segments is allowed; it raises a matching span's effective weight.
type WeightedText struct {
	Segments []Segment
}

// Append adds a segment, dropping empty text.
func (w *WeightedText) Append(kind SegmentKind, text string) {
	if text == "" {
		return
	}
	w.Segments = append(w.Segments, Segment{Text: text, Kind: kind})
}

// Flatten joins all segments into a single string, financial text leading.
func (w WeightedText) Flatten() string {
	var b []byte
	for i, s := range w.Segments {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, s.Text...)
	}
	return string(b)
}

// Empty reports whether no segment holds any text.
func (w WeightedText) Empty() bool {
	for _, s := range w.Segments {
		if s.Text != "" {
			return false
		}
	}
	return true
}
