// Package pkg provides the core libraries for jsontree.
//
// # Overview
//
// jsontree turns a JSON document into a node/edge tree diagram: one node per
// value, laid out in columns by depth, with an edge from every container to
// each of its members. Nodes are addressed by paths such as
// $.user.address.city or $.items[0].name.
//
// # Architecture
//
// The typical data flow:
//
//	JSON / YAML / TOML text
//	         ↓
//	    [document] package (ordered value tree)
//	         ↓
//	    [tree] package (nodes, edges, positions, styles)
//	         ↓
//	    [locate] package (find and highlight a node by path)
//	         ↓
//	    [render/sink] / [render/nodelink] (flow JSON, SVG, HTML, DOT, PDF, PNG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/jsontree/pkg/document"
//	    "github.com/matzehuels/jsontree/pkg/locate"
//	    "github.com/matzehuels/jsontree/pkg/render/sink"
//	    "github.com/matzehuels/jsontree/pkg/tree"
//	)
//
//	v, err := document.ParseJSON(data)
//	if err != nil {
//	    return err // errors.UserMessage(err) is "Invalid JSON: ..."
//	}
//	d := tree.Build(v)
//	if r := locate.Locate("$.items[0].name", d.Nodes); r.Outcome == locate.Found {
//	    d.Highlight(r.ID)
//	}
//	flow, _ := sink.RenderJSON(d)
//
// # Main Packages
//
// [jsonpath] - Path construction and the path-to-id encoding.
//
// [document] - Closed value union with ordered object members, and parsers
// for JSON, YAML and TOML.
//
// [tree] - Tree construction. Positions come from per-depth row counters
// that are fresh for every build; styles come from the value type.
//
// [locate] - Exact path lookup with found, not-found and invalid-query outcomes.
//
// [workspace] - The current diagram of an interactive surface: generate
// replaces it, search highlights in it, and both return view instructions
// (fit, center).
//
// [render/sink] - Flow JSON, native SVG and a standalone HTML canvas.
//
// [render/nodelink] - Graphviz DOT with pinned positions.
//
// [render] - SVG to PDF/PNG conversion.
//
// [server] - HTTP API over in-memory workspaces.
//
// [config], [errors], [observability] and [buildinfo] carry configuration,
// error codes, event hooks and version data.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/tree/...               # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [jsonpath]: https://pkg.go.dev/github.com/matzehuels/jsontree/pkg/jsonpath
// [document]: https://pkg.go.dev/github.com/matzehuels/jsontree/pkg/document
// [tree]: https://pkg.go.dev/github.com/matzehuels/jsontree/pkg/tree
// [locate]: https://pkg.go.dev/github.com/matzehuels/jsontree/pkg/locate
// [workspace]: https://pkg.go.dev/github.com/matzehuels/jsontree/pkg/workspace
// [render]: https://pkg.go.dev/github.com/matzehuels/jsontree/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/jsontree/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/jsontree/pkg/render/nodelink
// [server]: https://pkg.go.dev/github.com/matzehuels/jsontree/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/jsontree/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/jsontree/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/jsontree/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/jsontree/pkg/buildinfo
package pkg
