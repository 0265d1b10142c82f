package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/jsontree/pkg/errors"
	"github.com/matzehuels/jsontree/pkg/locate"
	"github.com/matzehuels/jsontree/pkg/observability"
	"github.com/matzehuels/jsontree/pkg/render"
	"github.com/matzehuels/jsontree/pkg/render/nodelink"
	"github.com/matzehuels/jsontree/pkg/render/sink"
	"github.com/matzehuels/jsontree/pkg/tree"
)

const (
	engineNative   = "native"   // boxes and curves drawn directly at layout positions
	engineGraphviz = "graphviz" // neato with pinned positions, splines routed by Graphviz
	defaultScale   = 2.0        // PNG scale factor
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	in        inputOpts
	output    string   // output file (single format) or base path
	formats   []string // json, svg, html, dot, pdf, png
	engine    string   // native or graphviz
	highlight string   // path to highlight before rendering
	detailed  bool     // add type and depth to graphviz labels
	scale     float64  // PNG scale
	title     string   // HTML page title
}

// renderCommand creates the render command for generating pictures.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{engine: engineNative, scale: defaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document tree to SVG, HTML, DOT, PDF or PNG",
		Long: `Render a document tree to one or more output formats.

Formats:
  svg   static picture (default)
  html  standalone page with pan, zoom, fit and path search
  json  flow node/edge lists, same as 'build'
  dot   Graphviz source with pinned node positions
  pdf   via rsvg-convert
  png   via rsvg-convert

With several formats the files are written concurrently next to each other:
data.json -f svg,html writes data.svg and data.html.`,
		Example: `  jsontree render data.json
  jsontree render data.json -f svg,html,png --highlight '$.items[0].name'
  jsontree render data.json --engine graphviz -o tree.pdf -f pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if err := validateEngine(opts.engine); err != nil {
				return err
			}
			return c.runRender(cmd, argOrStdin(args), &opts)
		},
	}

	opts.in.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), html, json, dot, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&opts.engine, "engine", opts.engine, "svg engine: native (default), graphviz")
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "highlight the node at this path")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show type and depth in labels (graphviz)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.title, "title", "", "HTML page title (default: file name)")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "html": true, "json": true, "dot": true, "pdf": true, "png": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be svg, html, json, dot, pdf or png)", f)
		}
	}
	return nil
}

func validateEngine(e string) error {
	if e != engineNative && e != engineGraphviz {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid engine: %s (must be native or graphviz)", e)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input ("tree" for stdin).
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == "-" {
			return "tree"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath names the file for one format. A single format with an
// explicit -o is written exactly there.
func outputPath(opts *renderOpts, input, format string) string {
	if len(opts.formats) == 1 && opts.output != "" {
		return opts.output
	}
	return basePath(opts.output, input) + "." + format
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", displayName(input))

	d, err := c.loadDiagram(ctx, cmd, input, opts.in)
	if err != nil {
		return err
	}
	if opts.highlight != "" {
		if err := highlight(&d, opts.highlight); err != nil {
			return err
		}
	}

	if opts.title == "" {
		opts.title = filepath.Base(basePath("", input))
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.formats)
	start := time.Now()

	var spinner *Spinner
	if needsConverter(opts.formats) {
		spinner = newSpinner(ctx, cmd.ErrOrStderr(), "Converting with "+render.Converter+"...")
		spinner.Start()
	}

	paths := make([]string, len(opts.formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range opts.formats {
		g.Go(func() error {
			data, err := renderFormat(gctx, d, format, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			paths[i] = outputPath(opts, input, format)
			logger.Debugf("Generated %s: %d bytes", format, len(data))
			return os.WriteFile(paths[i], data, 0o644)
		})
	}
	err = g.Wait()
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	hooks.OnRenderComplete(ctx, opts.formats, time.Since(start), err)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", displayName(input))
	if opts.highlight != "" {
		printDetail("highlighted %s", opts.highlight)
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// highlight marks the node addressed by path. The usual search messages
// are returned when the path is empty or matches nothing.
func highlight(d *tree.Diagram, path string) error {
	r := locate.Locate(path, d.Nodes)
	if err := r.Err(); err != nil {
		return err
	}
	d.Highlight(r.ID)
	return nil
}

func needsConverter(formats []string) bool {
	for _, f := range formats {
		if f == "pdf" || f == "png" {
			return true
		}
	}
	return false
}

// renderFormat produces one output format. d is shared between goroutines
// and only read.
func renderFormat(ctx context.Context, d tree.Diagram, format string, opts *renderOpts) ([]byte, error) {
	switch format {
	case "json":
		return sink.RenderJSON(d, sink.WithIndent())
	case "html":
		return sink.RenderHTML(d, sink.HTMLOptions{Title: opts.title})
	case "dot":
		return []byte(nodelink.ToDOT(d, nodelink.Options{Detailed: opts.detailed})), nil
	case "svg":
		return renderSVG(ctx, d, opts)
	case "pdf":
		svg, err := renderSVG(ctx, d, opts)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	case "png":
		svg, err := renderSVG(ctx, d, opts)
		if err != nil {
			return nil, err
		}
		return render.ToPNG(ctx, svg, opts.scale)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func renderSVG(ctx context.Context, d tree.Diagram, opts *renderOpts) ([]byte, error) {
	if opts.engine == engineGraphviz {
		dot := nodelink.ToDOT(d, nodelink.Options{Detailed: opts.detailed, Background: "#0f172a"})
		return nodelink.RenderSVG(ctx, dot)
	}
	return sink.RenderSVG(d), nil
}
