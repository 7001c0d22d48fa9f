// Package discovery canonicalizes company URLs and produces candidate pages
// likely to hold financial data.
package discovery

import (
	"net/url"
	"strings"
)

// Normalize canonicalizes a raw input string into a scheme-qualified URL:
// an https scheme is prepended when none is given, and a single trailing
// slash is stripped. Unparsable input is returned unchanged; Normalize
// never fails.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return strings.TrimSuffix(raw, "/")
}

// Domain returns the lowercase host component of the normalized URL, or the
// input unchanged when it cannot be parsed.
func Domain(raw string) string {
	u, err := url.Parse(Normalize(raw))
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.ToLower(u.Host)
}

// relatedHosts reports whether two hosts belong to the same site, accepting
// subdomain variants by suffix matching. The looser mutual-substring check
// the heuristic started from accepted unrelated domains like ir.com vs
// air.com, so matching is anchored at label boundaries.
func relatedHosts(a, b string) bool {
	a = strings.TrimPrefix(strings.ToLower(a), "www.")
	b = strings.TrimPrefix(strings.ToLower(b), "www.")
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.HasSuffix(a, "."+b) || strings.HasSuffix(b, "."+a)
}
