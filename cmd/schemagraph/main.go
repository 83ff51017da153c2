// Package main provides the schemagraph binary entry point.
// schemagraph loads schema.org style vocabularies published as N-Triples,
// resolves them into a class graph and exports the result.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/schemagraph/config"
	"github.com/c360studio/schemagraph/export"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "schemagraph"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveOptions holds the flags of the resolve command. Non-empty values
// override the loaded configuration.
type resolveOptions struct {
	configPath   string
	urls         []string
	files        []string
	host         string
	format       string
	output       string
	logLevel     string
	metricsFile  string
	maxRedirects int
	blockPrivate bool
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Resolve N-Triples vocabularies into class graphs",
		Long: `schemagraph streams a vocabulary published as N-Triples (schema.org by
default), keeps the statements about the vocabulary's own terms and resolves
them into classes, properties and enumeration members with inherited fields
flattened.

The graph is written as Turtle, N-Triples, JSON or YAML.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(resolveCmd())
	cmd.AddCommand(configCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func resolveCmd() *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Load, resolve and export vocabularies",
		Example: `  schemagraph resolve
  schemagraph resolve --url https://schema.org/version/latest/schemaorg-current-https.nt --format json
  schemagraph resolve --file schemaorg.nt --format yaml --output schema.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), opts, cmd.Flags().Changed, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringArrayVar(&opts.urls, "url", nil, "Vocabulary URL to load (repeatable)")
	cmd.Flags().StringArrayVar(&opts.files, "file", nil, "Local N-Triples file to load (repeatable)")
	cmd.Flags().StringVar(&opts.host, "host", "", "Vocabulary host (default from config: schema.org)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(export.Formats(), ", ")))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	cmd.Flags().IntVar(&opts.maxRedirects, "max-redirects", 0, "Maximum redirects per load")
	cmd.Flags().BoolVar(&opts.blockPrivate, "block-private", false, "Refuse connections to private network addresses")

	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage schemagraph configuration",
	}

	var logLevel string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default user config if none exists",
		Long: fmt.Sprintf(`Writes the default configuration to ~/%s/%s unless the file
already exists. Existing files are left untouched.`, config.UserConfigDir, config.UserConfigFile),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(logLevel, cmd.ErrOrStderr())
			path, created, err := config.NewLoader(logger).EnsureUserConfig()
			if err != nil {
				return fmt.Errorf("init user config: %w", err)
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
			}
			return nil
		},
	}
	initCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(initCmd)
	return cmd
}

func runResolve(ctx context.Context, opts *resolveOptions, changed func(string) bool, stdout io.Writer) error {
	logger := newLogger(opts.logLevel, os.Stderr)
	slog.SetDefault(logger)

	cfg, err := config.NewLoader(logger).Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cfg, opts, changed)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx, sources(cfg, opts), stdout)
}

// applyFlags merges explicitly set flags over cfg.
func applyFlags(cfg *config.Config, opts *resolveOptions, changed func(string) bool) {
	cfg.Merge(&config.Config{
		Vocabulary: config.VocabularyConfig{URLs: opts.urls, Host: opts.host},
		Output:     config.OutputConfig{Format: opts.format, Path: opts.output},
		Metrics:    config.MetricsConfig{Textfile: opts.metricsFile},
	})
	if changed("max-redirects") {
		cfg.Fetch.MaxRedirects = opts.maxRedirects
	}
	if changed("block-private") {
		cfg.Fetch.BlockPrivateNetworks = opts.blockPrivate
	}
}

// sources lists what to load. Local files given without any --url replace
// the configured URLs.
func sources(cfg *config.Config, opts *resolveOptions) []Source {
	var out []Source
	if len(opts.files) == 0 || len(opts.urls) > 0 {
		for _, u := range cfg.Vocabulary.URLs {
			out = append(out, Source{Address: u})
		}
	}
	for _, f := range opts.files {
		out = append(out, Source{Address: f, Local: true})
	}
	return out
}

func newLogger(level string, w io.Writer) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
