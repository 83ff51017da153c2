package ingest

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/schemagraph/metrics"
	"github.com/c360studio/schemagraph/source/weburl"
	"github.com/c360studio/schemagraph/triples"
)

// DefaultMaxRedirects caps a redirect chain.
const DefaultMaxRedirects = 10

// Loader retrieves a vocabulary and streams its validated triples.
type Loader struct {
	transport    Transport
	filter       *triples.Filter
	logger       *slog.Logger
	metrics      *metrics.Metrics
	maxRedirects int
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMetrics records requests and statement counts on m.
func WithMetrics(m *metrics.Metrics) LoaderOption {
	return func(l *Loader) {
		l.metrics = m
	}
}

// WithMaxRedirects sets how many redirects one load may follow.
func WithMaxRedirects(n int) LoaderOption {
	return func(l *Loader) {
		if n >= 0 {
			l.maxRedirects = n
		}
	}
}

// NewLoader creates a loader that fetches through t and filters with f.
func NewLoader(t Transport, f *triples.Filter, opts ...LoaderOption) *Loader {
	l := &Loader{
		transport:    t,
		filter:       f,
		logger:       slog.Default(),
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the triples at address as a lazy sequence. Nothing is
// requested until iteration starts, and each iteration issues a fresh
// request. The first error ends the sequence. Breaking out of the loop
// closes the response body.
func (l *Loader) Load(ctx context.Context, address string) iter.Seq2[triples.Triple, error] {
	return func(yield func(triples.Triple, error) bool) {
		start := time.Now()
		logger := l.logger.With("load_id", uuid.NewString(), "url", address)
		defer l.metrics.ObserveLoad(start)

		resp, final, err := l.open(ctx, address, logger)
		if err != nil {
			logger.Warn("Vocabulary load failed", "error", err)
			yield(triples.Triple{}, err)
			return
		}
		defer resp.Body.Close()

		dec := triples.NewDecoder(l.filter)
		defer func() {
			l.metrics.AddStatements(dec.Accepted(), dec.Dropped())
			logger.Debug("Vocabulary stream closed",
				"source", final,
				"accepted", dec.Accepted(),
				"dropped", dec.Dropped(),
				"duration", time.Since(start))
		}()

		body := &countingReader{r: resp.Body, metrics: l.metrics}
		for t, err := range dec.All(ctx, body) {
			if err != nil {
				logger.Warn("Vocabulary stream failed", "source", final, "error", err)
				yield(triples.Triple{}, err)
				return
			}
			if !yield(t, nil) {
				return
			}
		}
	}
}

// open follows redirects until a success response and returns it together
// with the address that produced it.
func (l *Loader) open(ctx context.Context, address string, logger *slog.Logger) (*Response, string, error) {
	current := address
	for hops := 0; ; hops++ {
		if err := weburl.ValidateAddress(current); err != nil {
			return nil, "", err
		}

		resp, err := l.transport.Do(ctx, current)
		if err != nil {
			return nil, "", fmt.Errorf("fetch %s: %w", current, err)
		}
		l.metrics.IncRequest(resp.StatusCode)

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			logger.Debug("Vocabulary response", "source", current, "status", resp.StatusCode, "redirects", hops)
			return resp, current, nil

		case isRedirect(resp.StatusCode):
			location := resp.Header.Get("Location")
			resp.Body.Close()
			if location == "" {
				return nil, "", &StatusError{
					Address: current,
					Code:    resp.StatusCode,
					Message: resp.Status + " without Location header",
				}
			}
			if hops >= l.maxRedirects {
				return nil, "", fmt.Errorf("fetch %s: %w (max %d)", address, ErrTooManyRedirects, l.maxRedirects)
			}
			next, err := weburl.ResolveReference(current, location)
			if err != nil {
				return nil, "", fmt.Errorf("follow redirect from %s: %w", current, err)
			}
			logger.Debug("Following redirect", "from", current, "to", next, "status", resp.StatusCode)
			l.metrics.IncRedirect()
			current = next

		default:
			resp.Body.Close()
			return nil, "", &StatusError{Address: current, Code: resp.StatusCode, Message: resp.Status}
		}
	}
}

func isRedirect(code int) bool {
	switch code {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

type countingReader struct {
	r       io.Reader
	metrics *metrics.Metrics
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.metrics.AddBytes(n)
	return n, err
}
