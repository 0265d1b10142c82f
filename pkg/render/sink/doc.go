// Package sink encodes diagrams for drawing surfaces.
//
// # Formats
//
//   - [RenderJSON]: the node/edge lists consumed by flow-style canvases.
//     Nodes carry id, position, data.label, style and draggable; edges
//     carry id, source, target and animated.
//   - [RenderSVG]: a static picture with one rounded box per node, drawn at
//     the layout position, and one curve per edge.
//   - [RenderHTML]: a self-contained page embedding the SVG with pan, zoom,
//     fit and path search. When served by the HTTP server the page can also
//     regenerate the diagram through the API.
//
// Highlighted nodes are drawn with their highlight border.
package sink
