// Package tree turns a parsed document into a positioned node/edge diagram.
//
// # Overview
//
// [Build] walks a [document.Value] depth-first in pre-order, starting at the
// root path "$" at depth 0. Every value, container or primitive, becomes one
// [Node]; every non-root node gets one [Edge] from its parent. The result is
// always a tree: len(Edges) == len(Nodes)-1.
//
//	v, _ := document.ParseJSON(data)
//	d := tree.Build(v)
//	for _, n := range d.Nodes {
//	    fmt.Println(n.ID, n.Position, n.Label)
//	}
//
// # Layout
//
// Columns are depths and rows are per-depth counters:
//
//	x = depth × LevelSpacing + MarginX
//	y = row(depth) × RowSpacing + MarginY
//
// row(depth) is a single running counter for each depth, incremented for
// every node placed at that depth regardless of its parent. Nodes never
// overlap, but children are not grouped into their parent's row band.
// Counters belong to one build, so the same input always yields the same
// positions.
//
// # Styles
//
// Node styles depend only on the node's [ValueType]: object, array or
// primitive. [Themes] holds the three color pairs; [Options.Base] holds the
// shared padding, radius, border and font size.
//
// # Identifiers
//
// Node identifiers come from [jsonpath.Encode]. Keys containing the path
// separators can make two paths share an identifier; [Diagram.Collisions]
// lists such identifiers instead of renaming nodes.
package tree
