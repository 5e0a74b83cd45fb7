package services

import (
	"fmt"
	"net/url"
	"strings"
)

// trackingParams are stripped during normalization so the same posting
// reached through different campaigns dedupes to one queue entry.
var trackingParams = map[string]bool{
	"gclid":  true,
	"fbclid": true,
	"ref":    true,
	"source": true,
	"mc_cid": true,
	"mc_eid": true,
}

// NormalizeURL canonicalizes a job URL: lowercases scheme and host, strips
// the fragment, the trailing slash and tracking parameters, and sorts the
// remaining query parameters. Idempotent.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")

	query := u.Query()
	for key := range query {
		if trackingParams[key] || strings.HasPrefix(strings.ToLower(key), "utm_") {
			query.Del(key)
		}
	}
	u.RawQuery = query.Encode() // Encode sorts by key

	return u.String()
}

// ValidateJobURL rejects URLs the engine cannot work with before any browser
// session is spent on them.
func ValidateJobURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}
