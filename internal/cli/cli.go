// Package cli implements the censusplot command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/censusplot/pkg/buildinfo"
	"github.com/matzehuels/censusplot/pkg/cache"
	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/errors"
	"github.com/matzehuels/censusplot/pkg/httputil"
	"github.com/matzehuels/censusplot/pkg/observability"
	"github.com/matzehuels/censusplot/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "censusplot"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "censusplot draws US census indicators as an interactive scatter plot",
		Long: `censusplot loads per-state census indicators (poverty, age, income, healthcare,
obesity, smoking) and draws them as a scatter plot whose axes can be rebound to any
field. Charts are written as interactive SVG, PNG, PDF or JSON, or explored live
in the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configFile)
			if err != nil {
				return err
			}
			c.Config = cfg
			observability.SetPipelineHooks(logHooks{logger: c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/censusplot/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	noCache = noCache || c.Config.Cache.Disabled

	artifacts, keyer := c.newArtifactCache(ctx, noCache)
	runner := pipeline.NewRunner(artifacts, keyer, c.Logger)

	client, err := c.newHTTPClient(noCache)
	if err != nil {
		return nil, err
	}
	runner.Loader = census.NewLoader(client)
	return runner, nil
}

// newArtifactCache picks Redis when configured and reachable, then the file
// cache, then no cache.
func (c *CLI) newArtifactCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := c.Config.Cache.Redis; addr != "" {
		rc, err := cache.NewRedisCache(ctx, addr)
		if err == nil {
			c.Logger.Debug("using redis artifact cache", "addr", addr)
			return rc, cache.NewScopedKeyer(nil, cache.RedisKeyPrefix)
		}
		c.Logger.Warn("redis unavailable, falling back to file cache", "addr", addr, "err", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(filepath.Join(dir, "artifacts"))
	if err != nil {
		c.Logger.Warn("artifact cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

func (c *CLI) newHTTPClient(noCache bool) (*httputil.Client, error) {
	headers := map[string]string{"User-Agent": buildinfo.UserAgent()}
	if noCache {
		return httputil.NewClient(nil, headers), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return httputil.NewClient(nil, headers), nil
	}
	hc, err := httputil.NewCache(filepath.Join(dir, "http"), c.Config.httpTTL())
	if err != nil {
		return nil, err
	}
	return httputil.NewClient(hc, headers), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/censusplot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// chartFlags are the flags shared by render and explore.
type chartFlags struct {
	x, y     string
	width    float64
	height   float64
	radius   float64
	duration string
	noCache  bool
	refresh  bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.x, "x", "", "x-axis field: poverty (default), age, income")
	cmd.Flags().StringVar(&f.y, "y", "", "y-axis field: healthcare (default), obesity, smokes")
	cmd.Flags().Float64Var(&f.width, "width", 0, "chart width in pixels (default 960)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "chart height in pixels (default 500)")
	cmd.Flags().Float64Var(&f.radius, "radius", 0, "mark radius in pixels (default 15)")
	cmd.Flags().StringVar(&f.duration, "duration", "", "axis transition duration (default 1s)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-fetch remote datasets and re-render artifacts")
	registerFieldCompletions(cmd)
}

// options builds pipeline options from config defaults overridden by flags.
func (c *CLI) options(source string, f *chartFlags) (pipeline.Options, error) {
	cfg := c.Config
	opts := pipeline.Options{
		Source:  source,
		X:       pick(f.x, cfg.Fields.X),
		Y:       pick(f.y, cfg.Fields.Y),
		Width:   pickFloat(f.width, cfg.Chart.Width),
		Height:  pickFloat(f.height, cfg.Chart.Height),
		Radius:  pickFloat(f.radius, cfg.Chart.Radius),
		Style:   cfg.Style,
		Refresh: f.refresh,
		Logger:  c.Logger,
	}
	switch {
	case f.duration != "":
		d, err := parseDuration(f.duration)
		if err != nil {
			return opts, err
		}
		opts.SetDuration(d)
	case cfg.Chart.Duration != nil:
		opts.SetDuration(*cfg.Chart.Duration)
	}
	return opts, nil
}

func pick(flag, cfg string) string {
	if flag != "" {
		return flag
	}
	return cfg
}

func pickFloat(flag, cfg float64) float64 {
	if flag != 0 {
		return flag
	}
	return cfg
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// parseDuration accepts Go durations ("750ms") and bare milliseconds ("750").
func parseDuration(s string) (time.Duration, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		s = strconv.Itoa(ms) + "ms"
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid duration %q", s)
	}
	if d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "duration must not be negative: %s", s)
	}
	return d, nil
}
