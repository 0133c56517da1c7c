package app

import (
	"net/url"
	"strings"
)

// originAllowed reports whether the request origin matches one of the
// configured patterns. Patterns compare against the host[:port] part of
// the origin and support "*.domain" and "host:*" wildcards, so preview
// deployments of the site can be allowed without listing each one.
func originAllowed(patterns []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	for _, pattern := range patterns {
		if originMatches(pattern, host) {
			return true
		}
	}
	return false
}

func originMatches(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
