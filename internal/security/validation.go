// Package security validates untrusted remote image locations.
package security

import (
	"fmt"
	"net/netip"
	"net/url"
	"strings"
)

// ValidateRemoteURL checks that raw is an absolute HTTP(S) URL. Unless
// allowPrivate is set, loopback, private and link-local hosts are rejected.
func ValidateRemoteURL(raw string, allowPrivate bool) error {
	if raw == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("only http:// and https:// URLs are allowed (got %q)", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	host := strings.ToLower(parsed.Hostname())
	if !allowPrivate && IsLocalOrPrivateHost(host) {
		return fmt.Errorf("URL cannot point to local or private hosts: %s", host)
	}
	return nil
}

// IsLocalOrPrivateHost reports whether host names the local machine or an
// address in a private, loopback or link-local range. Other hostnames are
// not resolved.
func IsLocalOrPrivateHost(host string) bool {
	host = strings.TrimSuffix(host, ".")
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}

	addr, err := netip.ParseAddr(strings.Trim(host, "[]"))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	return addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() || addr.IsUnspecified()
}
