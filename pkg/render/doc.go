// Package render turns diagrams into pictures.
//
// The drawing itself lives in two subpackages:
//
//   - [sink] draws a diagram directly at its layout positions and also
//     encodes the node/edge lists for flow-style canvases and a standalone
//     HTML viewer.
//   - [nodelink] writes Graphviz DOT with every node pinned to its layout
//     position and renders it in-process.
//
// Both produce SVG. [ToPDF] and [ToPNG] convert SVG to print and raster
// formats with the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(d)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [sink]: github.com/matzehuels/jsontree/pkg/render/sink
// [nodelink]: github.com/matzehuels/jsontree/pkg/render/nodelink
package render
