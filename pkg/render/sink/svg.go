package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/jsontree/pkg/tree"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	edgeColor  string
	edgeWidth  float64
	margin     float64
}

// WithBackground sets the canvas fill. An empty color leaves it transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithEdgeStroke sets the color and width of edge curves.
func WithEdgeStroke(color string, width float64) SVGOption {
	return func(r *svgRenderer) { r.edgeColor = color; r.edgeWidth = width }
}

// WithMargin sets the space kept right of and below the outermost boxes.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		background: "#0f172a",
		edgeColor:  "#cbd5e1",
		edgeWidth:  2,
		margin:     40,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws d at its layout positions.
func RenderSVG(d tree.Diagram, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	c := canvasFor(&d, r.margin)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		c.Width, c.Height, c.Width, c.Height)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(r.background))
	}

	buf.WriteString(`  <g class="edges">` + "\n")
	boxes := make(map[string]box, len(d.Nodes))
	for _, n := range d.Nodes {
		if _, ok := boxes[n.ID]; !ok {
			boxes[n.ID] = nodeBox(n)
		}
	}
	for _, e := range d.Edges {
		renderEdge(&buf, &r, e, boxes[e.Source], boxes[e.Target])
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, n := range d.Nodes {
		renderNode(&buf, n, nodeBox(n))
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderEdge draws a curve from the bottom center of the source box to the
// top center of the target box.
func renderEdge(buf *bytes.Buffer, r *svgRenderer, e tree.Edge, src, dst box) {
	x1, y1 := src.X+src.W/2, src.Y+src.H
	x2, y2 := dst.X+dst.W/2, dst.Y
	my := (y1 + y2) / 2
	fmt.Fprintf(buf, `    <path id="%s" class="edge" d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
		html.EscapeString(e.ID), x1, y1, x1, my, x2, my, x2, y2,
		html.EscapeString(r.edgeColor), r.edgeWidth)
}

func renderNode(buf *bytes.Buffer, n tree.Node, b box) {
	s := n.EffectiveStyle()
	bd := parseBorder(s.Border)

	class := "node node-" + n.Type.String()
	if n.Highlighted {
		class += " highlight"
	}
	fmt.Fprintf(buf, `    <g id="%s" class="%s" data-path="%s">`+"\n",
		html.EscapeString(n.ID), class, html.EscapeString(n.Path))
	fmt.Fprintf(buf, `      <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%d" fill="%s"`,
		b.X, b.Y, b.W, b.H, s.BorderRadius, html.EscapeString(s.Background))
	if bd.Style != "none" {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%.1f"`, html.EscapeString(bd.Color), bd.Width)
		if da := bd.dashArray(); da != "" {
			fmt.Fprintf(buf, ` stroke-dasharray="%s"`, da)
		}
	}
	buf.WriteString("/>\n")
	fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%d" fill="%s" dominant-baseline="middle">%s</text>`+"\n",
		b.X+float64(s.Padding), b.Y+b.H/2, s.FontSize, html.EscapeString(s.Color), html.EscapeString(n.Label))
	buf.WriteString("    </g>\n")
}
