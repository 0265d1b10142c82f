package sink

import (
	"encoding/json"

	"github.com/matzehuels/jsontree/pkg/tree"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent bool
	meta   bool
}

// WithIndent pretty-prints the output.
func WithIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// WithMeta adds path, depth, type and highlighted to each node's data.
func WithMeta() JSONOption { return func(r *jsonRenderer) { r.meta = true } }

type flowDiagram struct {
	Nodes []flowNode `json:"nodes"`
	Edges []flowEdge `json:"edges"`
}

type flowNode struct {
	ID        string        `json:"id"`
	Position  tree.Position `json:"position"`
	Data      flowData      `json:"data"`
	Style     tree.Style    `json:"style"`
	Draggable bool          `json:"draggable"`
}

type flowData struct {
	Label       string          `json:"label"`
	Path        string          `json:"path,omitempty"`
	Depth       *int            `json:"depth,omitempty"`
	Type        *tree.ValueType `json:"type,omitempty"`
	Highlighted bool            `json:"highlighted,omitempty"`
}

type flowEdge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Animated bool   `json:"animated"`
}

// RenderJSON encodes d as flow-canvas node and edge lists.
// Node styles already include the highlight border.
func RenderJSON(d tree.Diagram, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := flowDiagram{
		Nodes: make([]flowNode, len(d.Nodes)),
		Edges: make([]flowEdge, len(d.Edges)),
	}
	for i, n := range d.Nodes {
		fn := flowNode{
			ID:        n.ID,
			Position:  n.Position,
			Data:      flowData{Label: n.Label},
			Style:     n.EffectiveStyle(),
			Draggable: n.Draggable,
		}
		if r.meta {
			depth, typ := n.Depth, n.Type
			fn.Data.Path = n.Path
			fn.Data.Depth = &depth
			fn.Data.Type = &typ
			fn.Data.Highlighted = n.Highlighted
		}
		out.Nodes[i] = fn
	}
	for i, e := range d.Edges {
		out.Edges[i] = flowEdge(e)
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
