package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/jsontree/pkg/render"
	"github.com/matzehuels/jsontree/pkg/tree"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node type and depth below the label.
	Detailed bool

	// Background is the canvas color. Empty means transparent.
	Background string

	// EdgeColor is the stroke of edge splines.
	EdgeColor string
}

// points per inch; neato reads pinned positions in inches unless inputscale is set.
const pointsPerInch = 72

// ToDOT converts a diagram to Graphviz DOT. Every node is pinned to its
// layout position so the neato engine only routes the edges.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(d tree.Diagram, opts Options) string {
	bg := "transparent"
	if opts.Background != "" {
		bg = dotColor(opts.Background)
	}
	edge := "#cbd5e1"
	if opts.EdgeColor != "" {
		edge = dotColor(opts.EdgeColor)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	fmt.Fprintf(&buf, "  inputscale=%d;\n", pointsPerInch)
	buf.WriteString("  splines=true;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", bg)
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", margin=\"0.15,0.08\"];\n")
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=2, arrowsize=0.6];\n", edge)
	buf.WriteString("\n")

	for _, n := range d.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [id=%q];\n", e.Source, e.Target, e.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n tree.Node, detailed bool) string {
	if !detailed {
		return n.Label
	}
	return fmt.Sprintf("%s\n%s, depth %d", n.Label, n.Type, n.Depth)
}

func fmtAttrs(n tree.Node, label string) []string {
	s := n.EffectiveStyle()
	b := parseBorder(s.Border)

	// y is negated: layout space grows downwards, Graphviz upwards.
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(n.Position.X), fmtFloat(-n.Position.Y)),
		fmt.Sprintf("fillcolor=%q", dotColor(s.Background)),
		fmt.Sprintf("fontcolor=%q", dotColor(s.Color)),
		fmt.Sprintf("fontsize=%d", s.FontSize),
	}
	if b.width > 0 {
		attrs = append(attrs,
			fmt.Sprintf("color=%q", dotColor(b.color)),
			"penwidth="+fmtFloat(b.width),
		)
	}
	if n.Highlighted {
		attrs = append(attrs, `class="highlight"`)
	}
	return attrs
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type border struct {
	width float64
	color string
}

// parseBorder reads a CSS border shorthand such as "2px solid #fff".
func parseBorder(s string) border {
	b := border{color: "#ffffff"}
	for _, f := range strings.Fields(s) {
		switch {
		case strings.HasSuffix(f, "px"):
			b.width, _ = strconv.ParseFloat(strings.TrimSuffix(f, "px"), 64)
		case f == "none":
			b.width = 0
			return b
		case f == "solid" || f == "dashed" || f == "dotted":
		default:
			b.color = f
		}
	}
	return b
}

var rgbaRe = regexp.MustCompile(`^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([0-9.]+)\s*)?\)$`)

// dotColor converts CSS colors Graphviz does not understand (#rgb and
// rgb()/rgba()) to #rrggbb[aa]. Other values pass through.
func dotColor(c string) string {
	if len(c) == 4 && c[0] == '#' {
		return "#" + strings.Repeat(c[1:2], 2) + strings.Repeat(c[2:3], 2) + strings.Repeat(c[3:4], 2)
	}
	m := rgbaRe.FindStringSubmatch(c)
	if m == nil {
		return c
	}
	var out strings.Builder
	out.WriteByte('#')
	for _, v := range m[1:4] {
		n, _ := strconv.Atoi(v)
		fmt.Fprintf(&out, "%02x", min(n, 255))
	}
	if m[4] != "" {
		a, _ := strconv.ParseFloat(m[4], 64)
		fmt.Fprintf(&out, "%02x", int(min(max(a, 0), 1)*255+0.5))
	}
	return out.String()
}

// RenderSVG renders a DOT graph to SVG with the neato engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element, which sizes the
// picture in pt, with a plain pixel-sized one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
