// Package identity derives comparison keys from candidate titles and URLs.
//
// Two candidates with the same identity key are the same logical event even
// when their raw strings differ in casing, whitespace, punctuation, or URL
// decoration. Canonicalization is deterministic: the same candidate always
// yields the same key.
package identity

import (
	"net/url"
	"regexp"
	"strings"
)

// Query parameters stripped during URL canonicalization. Tracking decoration
// never distinguishes one event from another.
var trackingParams = map[string]bool{
	"fbclid": true, "gclid": true, "ref": true,
	"mc_cid": true, "mc_eid": true,
}

var (
	punctPattern      = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	numericIDPath     = regexp.MustCompile(`^/?\d+/?$`)
)

// Hosts that mark a URL as a placeholder rather than a real event page.
var placeholderHosts = []string{"example.com", "test.com", "localhost", "placeholder.com"}

// CanonicalURL resolves raw against baseURL and normalizes the result: the
// fragment, trailing slash, and tracking query parameters are stripped.
// Returns "" for URLs that carry no identity: empty input, the venue's
// landing page, placeholder/test hosts, or a bare numeric-ID path with no
// descriptive segment. A "" result means "no URL", not a rejected candidate.
func CanonicalURL(raw, baseURL string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	if !u.IsAbs() && baseURL != "" {
		base, err := url.Parse(baseURL)
		if err != nil {
			return ""
		}
		u = base.ResolveReference(u)
	}
	if u.Host == "" {
		return ""
	}

	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")

	q := u.Query()
	for param := range q {
		if trackingParams[param] || strings.HasPrefix(param, "utm_") {
			q.Del(param)
		}
	}
	u.RawQuery = q.Encode()

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, ph := range placeholderHosts {
		if host == ph || strings.HasSuffix(host, "."+ph) {
			return ""
		}
	}

	// A landing page or an opaque numeric ID identifies nothing.
	if u.Path == "" && u.RawQuery == "" {
		return ""
	}
	if numericIDPath.MatchString(u.Path) {
		return ""
	}

	return u.String()
}

// TitleKey lowercases the title, strips punctuation, and collapses internal
// whitespace.
func TitleKey(title string) string {
	key := strings.ToLower(strings.TrimSpace(title))
	key = punctPattern.ReplaceAllString(key, "")
	key = whitespacePattern.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}

// Key builds the deduplication key from the normalized title and the raw date
// text. Dateless candidates share the "ongoing" sentinel so repeated scrapes
// of a standing exhibit collapse to one record.
func Key(title, rawDateText string) string {
	date := strings.TrimSpace(rawDateText)
	if date == "" {
		date = "ongoing"
	}
	return TitleKey(title) + "|" + date
}
