// Package nodelink renders diagrams through Graphviz.
//
// [ToDOT] writes DOT source in which every node carries a pinned position
// (pos="x,y!") taken from the tree layout, so Graphviz keeps the per-depth
// columns and only routes the edges. Node fill, text color and border come
// from the node style; a highlighted node gets its highlight border.
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools, as long as they run the neato engine (the source sets
// layout=neato).
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
