package validate

import (
	"net/url"
	"strings"
)

// urlPlaceholders are literal values sources use to mean "no link".
// Matched case-insensitively against the whole trimmed field.
var urlPlaceholders = map[string]bool{
	"na":  true,
	"n/a": true,
	"-":   true,
	"#":   true,
}

// EventURL normalizes a raw link field into an absolute URL.
// It trims whitespace, rejects placeholder values, prepends https:// when no
// scheme is present, and requires the hostname to contain a dot so junk like
// "n/a" or "not a domain" never becomes a live link.
// Returns the normalized URL and true, or ("", false) when the value should
// be treated as absent.
func EventURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || urlPlaceholders[strings.ToLower(raw)] {
		return "", false
	}

	cleaned := raw
	lower := strings.ToLower(cleaned)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		cleaned = "https://" + cleaned
	}

	u, err := url.Parse(cleaned)
	if err != nil {
		return "", false
	}
	if !strings.Contains(u.Hostname(), ".") {
		return "", false
	}

	return cleaned, true
}
