// Package weburl provides address validation and host handling for vocabulary
// retrieval. It covers scheme checks, IDNA host canonicalization and
// private-network detection used by the optional dial guard.
package weburl

import (
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// reservedPrefixes are address ranges that are not covered by the net.IP
// helpers but still point inside a private network.
var reservedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"), // carrier-grade NAT
	netip.MustParsePrefix("fc00::/7"),      // IPv6 unique local
	netip.MustParsePrefix("fe80::/10"),     // IPv6 link-local
}

// ValidateAddress checks that rawURL is an absolute http or https address
// with a host. It is applied to the starting address and to every redirect
// target.
func ValidateAddress(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	case "":
		return fmt.Errorf("URL %q is not absolute", rawURL)
	default:
		return fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}

	if parsed.Hostname() == "" {
		return fmt.Errorf("URL %q has no host", rawURL)
	}
	return nil
}

// IsNetworkScheme reports whether scheme names a network retrieval scheme.
func IsNetworkScheme(scheme string) bool {
	s := strings.ToLower(scheme)
	return s == "http" || s == "https"
}

// CanonicalHost lowercases host, strips a trailing root dot and converts
// internationalized labels to their ASCII form.
func CanonicalHost(host string) (string, error) {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if host == "" {
		return "", nil
	}
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("canonicalize host %q: %w", host, err)
	}
	return ascii, nil
}

// IsPrivateIP checks if an IP is in private/reserved ranges.
// It handles IPv4, IPv6, and IPv6-mapped IPv4 addresses.
func IsPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}

	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return false
	}
	addr = addr.Unmap()
	if addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() {
		return true
	}

	for _, prefix := range reservedPrefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ResolveReference resolves a redirect location against the address that
// produced it. Absolute locations are returned unchanged.
func ResolveReference(base, location string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	ref, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return "", fmt.Errorf("parse redirect location: %w", err)
	}
	return baseURL.ResolveReference(ref).String(), nil
}
