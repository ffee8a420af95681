package common

import (
	"net/url"
	"strings"
)

// IsValidServerURL accepts absolute http(s) URLs with a host.
func IsValidServerURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && len(u.Host) > 0
}
