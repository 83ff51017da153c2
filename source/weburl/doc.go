// Package weburl provides address validation and host handling for vocabulary
// retrieval.
//
// # Address Validation
//
// ValidateAddress accepts absolute http and https URLs with a host. The
// ingestion pipeline applies it to the starting address and to every
// redirect target before a request is issued.
//
// # Host Canonicalization
//
// CanonicalHost lowercases a host name and converts internationalized labels
// to ASCII so that vocabulary membership checks compare like with like:
//
//	weburl.CanonicalHost("Schema.ORG.") // "schema.org"
//
// # Private Networks
//
// IsPrivateIP detects private and reserved addresses including:
//
//   - IPv4 private ranges (10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/16)
//   - IPv4 loopback (127.0.0.0/8) and link-local (169.254.0.0/16)
//   - CGNAT range (100.64.0.0/10)
//   - IPv6 loopback, unique local (fc00::/7) and link-local (fe80::/10)
//   - IPv6-mapped IPv4 addresses (::ffff:x.x.x.x)
//
// The HTTP transport uses it to refuse connections when private network
// blocking is enabled.
package weburl
