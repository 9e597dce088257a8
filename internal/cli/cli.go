package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/zscene/pkg/buildinfo"
	"github.com/matzehuels/zscene/pkg/cache"
	"github.com/matzehuels/zscene/pkg/config"
	"github.com/matzehuels/zscene/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "zscene"

	// redisPrefix namespaces keys in a shared Redis database.
	redisPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "zscene renders pseudo-3D vector scenes",
		Long:         `zscene builds flat-shaded pseudo-3D scenes from shapes, projects them into view space and renders them as SVG, PNG or PDF.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/zscene/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, c.cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if ns := c.cfg.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(nil, ns+":")
	}
	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	runner.TTL = c.cfg.Cache.TTL
	return runner, nil
}

func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cfg.RedisURL, redisPrefix)
	}
	dir := cfg.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/zscene/).
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

// fileCacheDir is the directory "cache clear" and "cache path" act on.
func (c *CLI) fileCacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// renderFlags are the render options shared by render, animate and pick.
type renderFlags struct {
	formats  string
	rotate   []float64
	centered bool
	noCache  bool
	refresh  bool
}

func (f *renderFlags) register(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, fmt.Sprintf("surface width in pixels (default %d)", pipeline.DefaultWidth))
	cmd.Flags().IntVar(&opts.Height, "height", 0, fmt.Sprintf("surface height in pixels (default %d)", pipeline.DefaultHeight))
	cmd.Flags().Float64Var(&opts.Zoom, "zoom", 0, "view-space to pixel scale (default 1)")
	cmd.Flags().StringVar(&opts.Background, "background", "", `background color, "none" for transparent (default: preset color)`)
	cmd.Flags().Float64SliceVar(&f.rotate, "rotate", nil, "view rotation in radians as x,y,z")
	cmd.Flags().BoolVar(&f.centered, "centered", true, "put the view-space origin at the surface center")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even when cached")
}

// apply copies flag values into opts. Flags the user left alone defer to
// the config file.
func (f *renderFlags) apply(cmd *cobra.Command, cfg *config.Config, opts *pipeline.Options) error {
	if f.formats != "" {
		opts.Formats = parseFormats(f.formats)
	}
	rot, err := parseRotate(f.rotate)
	if err != nil {
		return err
	}
	opts.Rotate = rot
	if cmd.Flags().Changed("centered") {
		centered := f.centered
		opts.Centered = &centered
	}
	opts.Refresh = f.refresh
	cfg.ApplyRender(opts)
	return pipeline.ValidateFormats(opts.Formats)
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
