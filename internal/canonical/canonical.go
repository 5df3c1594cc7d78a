// Package canonical produces the stable identity used for deduplication:
// normalized URLs, bare domains, and deterministic short ids.
package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// Tracking parameters are matched by prefix so utm_source, utm_campaign,
// and friends all fall under one entry.
var trackingPrefixes = []string{"utm_", "fbclid", "gclid", "mc_cid", "mc_eid"}

// URL strips tracking query parameters and the fragment, lowercases the
// scheme and host, and keeps the remaining query in its original order.
// Empty input returns empty; unparsable input is passed through unchanged.
func URL(raw string) string {
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	var kept []string
	for _, pair := range strings.Split(parsed.RawQuery, "&") {
		if pair == "" {
			continue
		}
		// Blank-valued parameters carry no identity and are dropped.
		idx := strings.Index(pair, "=")
		if idx < 0 || pair[idx+1:] == "" {
			continue
		}
		if isTrackingParam(pair[:idx]) {
			continue
		}
		kept = append(kept, pair)
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.RawQuery = strings.Join(kept, "&")
	parsed.Fragment = ""
	parsed.RawFragment = ""
	return parsed.String()
}

func isTrackingParam(key string) bool {
	lowered := strings.ToLower(key)
	for _, prefix := range trackingPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			return true
		}
	}
	return false
}

// Domain returns the lowercased host without a leading "www.", or empty
// when the URL has no host.
func Domain(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Host)
	return strings.TrimPrefix(host, "www.")
}

// StableID hashes the pipe-joined non-empty parts into a 16-hex-char id.
// The same parts always produce the same id across runs; collision risk at
// feed volume is negligible.
func StableID(parts ...string) string {
	var nonEmpty []string
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	h := sha256.New()
	h.Write([]byte(strings.Join(nonEmpty, "|")))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
