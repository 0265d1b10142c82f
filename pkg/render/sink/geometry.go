package sink

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/jsontree/pkg/tree"
)

// Node boxes are sized from their label; minNodeWidth matches the default
// node width of flow canvases.
const (
	minNodeWidth = 150.0
	charWidth    = 0.6 // average glyph width relative to font size
	lineHeight   = 1.4
)

// box is the rectangle a node occupies.
type box struct {
	X, Y, W, H float64
}

func nodeBox(n tree.Node) box {
	s := n.Style
	font := float64(max(s.FontSize, 1))
	pad := float64(s.Padding)
	w := float64(utf8.RuneCountInString(n.Label))*font*charWidth + 2*pad
	return box{
		X: n.Position.X,
		Y: n.Position.Y,
		W: max(w, minNodeWidth),
		H: font*lineHeight + 2*pad,
	}
}

// border is a parsed CSS border shorthand such as "2px solid #fff".
type border struct {
	Width float64
	Style string
	Color string
}

func parseBorder(s string) border {
	b := border{Width: 1, Style: "solid", Color: "#fff"}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return b
	}
	if w, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "px"), 64); err == nil {
		b.Width = w
		fields = fields[1:]
	}
	if len(fields) > 0 {
		switch fields[0] {
		case "solid", "dashed", "dotted", "none":
			b.Style = fields[0]
			fields = fields[1:]
		}
	}
	if len(fields) > 0 {
		b.Color = strings.Join(fields, " ")
	}
	return b
}

func (b border) dashArray() string {
	switch b.Style {
	case "dashed":
		return "6 4"
	case "dotted":
		return "2 3"
	default:
		return ""
	}
}

// canvas is the drawing area covering every node box plus a margin.
type canvas struct {
	Width, Height float64
}

func canvasFor(d *tree.Diagram, margin float64) canvas {
	var c canvas
	for _, n := range d.Nodes {
		b := nodeBox(n)
		c.Width = max(c.Width, b.X+b.W+margin)
		c.Height = max(c.Height, b.Y+b.H+margin)
	}
	return c
}
