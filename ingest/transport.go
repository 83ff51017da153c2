package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/c360studio/schemagraph/source/weburl"
)

// AcceptNTriples is the Accept header sent with every vocabulary request.
const AcceptNTriples = "application/n-triples, text/plain;q=0.5"

// Response is one transport response. Body must be closed by the caller.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       io.ReadCloser
}

// Transport issues a single request and returns the response without
// following redirects.
type Transport interface {
	Do(ctx context.Context, address string) (*Response, error)
}

// HTTPTransport is the net/http Transport.
type HTTPTransport struct {
	client    *http.Client
	userAgent string
}

// NewHTTPTransport creates an HTTP transport. When blockPrivate is set, the
// dialer resolves hosts itself and refuses private and loopback addresses.
func NewHTTPTransport(timeout time.Duration, userAgent string, blockPrivate bool) *HTTPTransport {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}
	if blockPrivate {
		transport.DialContext = safeDialContext(dialer)
	}

	return &HTTPTransport{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent: userAgent,
	}
}

// safeDialContext validates resolved IPs to prevent DNS rebinding.
func safeDialContext(dialer *net.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid address: %w", err)
		}

		ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
		if err != nil {
			return nil, fmt.Errorf("DNS lookup failed: %w", err)
		}

		for _, ipAddr := range ips {
			if weburl.IsPrivateIP(ipAddr.IP) {
				return nil, fmt.Errorf("connection to private IP %s is not allowed", ipAddr.IP)
			}
		}

		var lastErr error
		for _, ipAddr := range ips {
			conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ipAddr.IP.String(), port))
			if err == nil {
				return conn, nil
			}
			lastErr = err
		}
		if lastErr == nil {
			lastErr = errors.New("no addresses")
		}
		return nil, fmt.Errorf("failed to connect to any resolved IP: %w", lastErr)
	}
}

// Do issues a GET for address. The overall timeout is left to ctx so long
// vocabulary bodies are not cut off mid-stream.
func (t *HTTPTransport) Do(ctx context.Context, address string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	req.Header.Set("Accept", AcceptNTriples)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     statusMessage(resp),
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}

// statusMessage strips the numeric code from an HTTP status line.
func statusMessage(resp *http.Response) string {
	msg := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return msg
}
