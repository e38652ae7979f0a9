// Package cli implements the hingecut command-line interface.
//
// # Commands
//
//   - generate: compute a living-hinge pattern and write DXF, SVG, JSON, PNG or PDF
//   - preview: interactive terminal preview with live parameter tweaking
//   - preset: write a TOML preset holding the default parameters
//   - serve: run the HTTP pattern service
//   - cache: manage the local artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. User-facing
// status lines go to stdout through the lipgloss helpers in ui.go; the
// structured log goes to stderr.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hingecut/pkg/buildinfo"
	"github.com/matzehuels/hingecut/pkg/cache"
	"github.com/matzehuels/hingecut/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "hingecut"

	// defaultBaseName names output files when --output is not given.
	defaultBaseName = "living_hinge"
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
		Short: "Hingecut generates living-hinge cutting patterns",
		Long: `Hingecut generates the staggered slot patterns that turn a rigid sheet of
plywood, MDF or acrylic into a flexible living hinge, ready for a laser
cutter or CNC router.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.presetCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache opens the local file cache. A missing cache directory is not
// fatal: the CLI then runs uncached.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		c.Logger.Debug("no cache directory, running uncached", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}
