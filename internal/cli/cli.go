// Package cli implements the jsontree command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsontree/pkg/buildinfo"
	"github.com/matzehuels/jsontree/pkg/config"
	"github.com/matzehuels/jsontree/pkg/document"
	"github.com/matzehuels/jsontree/pkg/errors"
	"github.com/matzehuels/jsontree/pkg/observability"
	"github.com/matzehuels/jsontree/pkg/tree"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

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

	configFile string
	cfg        *config.Config
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
		Short: "jsontree draws JSON documents as node/edge trees",
		Long: `jsontree turns a JSON document (or YAML, or TOML) into a tree diagram with one
node per value, laid out in columns by depth, and finds nodes by path
such as $.user.address.city or $.items[0].name.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetPipelineHooks(newLogHooks(c.Logger))
			observability.SetServerHooks(newLogHooks(c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/jsontree/config.toml)")

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.findCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the configuration once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return nil, err
	}
	if cfg.Layout != config.Defaults().Layout {
		c.Logger.Debug("Using custom layout", "level_spacing", cfg.Layout.LevelSpacing, "row_spacing", cfg.Layout.RowSpacing)
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Input
// =============================================================================

// inputOpts are the flags shared by every command that reads a document.
type inputOpts struct {
	format   string // explicit input format; empty means detect from the file name
	animated bool   // mark edges as animated
}

func (o *inputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "input-format", "", "input format: json, yaml, toml (default: from file extension)")
	cmd.Flags().BoolVar(&o.animated, "animated", false, "mark edges as animated in flow output")
}

// readInput reads the document at path ("-" or "" for stdin) and resolves
// its format.
func readInput(path string, explicit string, stdin io.Reader) ([]byte, document.Format, error) {
	if err := errors.ValidateInputFile(path); err != nil {
		return nil, "", err
	}

	format := document.DetectFormat(path)
	if explicit != "" {
		f, err := document.ParseFormat(explicit)
		if err != nil {
			return nil, "", err
		}
		format = f
	}

	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(io.LimitReader(stdin, errors.MaxDocumentSize+1))
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", displayName(path), err)
	}
	if err := errors.ValidateDocumentSize(len(data)); err != nil {
		return nil, "", err
	}
	return data, format, nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}

// loadDiagram reads, parses and lays out the document at path.
func (c *CLI) loadDiagram(ctx context.Context, cmd *cobra.Command, path string, in inputOpts) (tree.Diagram, error) {
	logger := loggerFromContext(ctx)
	cfg, err := c.loadConfig()
	if err != nil {
		return tree.Diagram{}, err
	}

	data, format, err := readInput(path, in.format, cmd.InOrStdin())
	if err != nil {
		return tree.Diagram{}, err
	}
	logger.Debugf("Read %s (%s, %d bytes)", displayName(path), format, len(data))

	v, err := document.Parse(data, format)
	if err != nil {
		return tree.Diagram{}, err
	}

	opts := cfg.TreeOptions()
	opts.AnimatedEdges = opts.AnimatedEdges || in.animated
	prog := newProgress(logger)
	d := tree.BuildWith(v, opts)
	prog.done(fmt.Sprintf("Built %d nodes, %d edges", len(d.Nodes), len(d.Edges)))

	if dups := d.Collisions(); len(dups) > 0 {
		printWarning("%d node ids are shared by several paths (keys containing '.', '[' or ']'): %s",
			len(dups), strings.Join(dups, ", "))
	}
	return d, nil
}

// =============================================================================
// Output
// =============================================================================

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty or "-", it returns w wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string, w io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{w}, nil
	}
	return os.Create(path)
}
