package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/c360studio/schemagraph/config"
	"github.com/c360studio/schemagraph/export"
	"github.com/c360studio/schemagraph/graph"
	"github.com/c360studio/schemagraph/ingest"
	"github.com/c360studio/schemagraph/metrics"
	"github.com/c360studio/schemagraph/triples"
	"github.com/c360studio/schemagraph/vocabulary/schemaorg"
)

// Source is one vocabulary document to load: a URL or a local file.
type Source struct {
	Address string
	Local   bool
}

func (s Source) String() string { return s.Address }

// Result is the resolved graph of one source.
type Result struct {
	Source   Source
	Graph    *graph.Graph
	Warnings []graph.Warning
}

// App wires loading, resolution and export for one CLI run.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	vocab    *schemaorg.Vocabulary
	filter   *triples.Filter
	loader   *ingest.Loader
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	vocab, err := schemaorg.New(cfg.Vocabulary.Host)
	if err != nil {
		return nil, fmt.Errorf("create vocabulary: %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	filter := triples.NewFilter(vocab)
	transport := ingest.NewHTTPTransport(cfg.Fetch.Timeout, cfg.Fetch.UserAgent, cfg.Fetch.BlockPrivateNetworks)

	return &App{
		cfg:      cfg,
		logger:   logger,
		vocab:    vocab,
		filter:   filter,
		registry: registry,
		metrics:  m,
		loader: ingest.NewLoader(transport, filter,
			ingest.WithLogger(logger),
			ingest.WithMetrics(m),
			ingest.WithMaxRedirects(cfg.Fetch.MaxRedirects)),
	}, nil
}

// Resolve loads every source concurrently, each into its own resolver, and
// returns the graphs in source order. The first failure cancels the rest.
func (a *App) Resolve(ctx context.Context, sources []Source) ([]Result, error) {
	results := make([]Result, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			res, err := a.resolveOne(ctx, src)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", src, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *App) resolveOne(ctx context.Context, src Source) (Result, error) {
	start := time.Now()
	resolver := graph.NewResolver(a.vocab,
		graph.WithLogger(a.logger.With("source", src.Address)),
		graph.WithMetrics(a.metrics))

	if src.Local {
		if err := a.consumeFile(ctx, resolver, src.Address); err != nil {
			return Result{}, err
		}
	} else if err := resolver.Consume(a.loader.Load(ctx, src.Address)); err != nil {
		return Result{}, err
	}

	g, err := resolver.Resolve()
	if err != nil {
		return Result{}, err
	}

	a.logger.Info("Vocabulary resolved",
		"source", src.Address,
		"classes", len(g.Classes()),
		"properties", len(g.Properties()),
		"enum_values", len(g.EnumValues()),
		"warnings", len(resolver.Warnings()),
		"duration", time.Since(start))

	return Result{Source: src, Graph: g, Warnings: resolver.Warnings()}, nil
}

func (a *App) consumeFile(ctx context.Context, resolver *graph.Resolver, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open vocabulary file: %w", err)
	}
	defer f.Close()

	start := time.Now()
	dec := triples.NewDecoder(a.filter)
	defer func() {
		a.metrics.AddStatements(dec.Accepted(), dec.Dropped())
		a.metrics.ObserveLoad(start)
	}()
	return resolver.Consume(dec.All(ctx, f))
}

// Write exports every result to w in the given format.
func (a *App) Write(w io.Writer, results []Result, format export.Format) error {
	exporter, err := export.NewExporter(export.ProfileFull, a.vocab)
	if err != nil {
		return err
	}
	for _, res := range results {
		if err := exporter.Export(w, res.Graph, format); err != nil {
			return fmt.Errorf("export %s: %w", res.Source, err)
		}
	}
	return nil
}

// WriteMetrics dumps the run's metrics in the Prometheus text format. It is
// a no-op when path is empty.
func (a *App) WriteMetrics(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// Run resolves the sources and writes the configured output and metrics.
func (a *App) Run(ctx context.Context, sources []Source, stdout io.Writer) error {
	format, err := export.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return err
	}

	results, err := a.Resolve(ctx, sources)
	if err != nil {
		_ = a.WriteMetrics(a.cfg.Metrics.Textfile)
		return err
	}

	out := stdout
	if a.cfg.Output.Path != "" {
		f, err := os.Create(a.cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := a.Write(out, results, format); err != nil {
		return err
	}
	return a.WriteMetrics(a.cfg.Metrics.Textfile)
}
