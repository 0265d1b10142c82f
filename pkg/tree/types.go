package tree

import "fmt"

// ValueType classifies a node for layout and styling.
type ValueType int

const (
	Object ValueType = iota
	Array
	Primitive
)

func (t ValueType) String() string {
	switch t {
	case Object:
		return "object"
	case Array:
		return "array"
	case Primitive:
		return "primitive"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// MarshalText encodes the type by name.
func (t ValueType) MarshalText() ([]byte, error) {
	switch t {
	case Object, Array, Primitive:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("tree: invalid value type %d", int(t))
	}
}

// UnmarshalText decodes a type name produced by MarshalText.
func (t *ValueType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "object":
		*t = Object
	case "array":
		*t = Array
	case "primitive":
		*t = Primitive
	default:
		return fmt.Errorf("tree: unknown value type %q", b)
	}
	return nil
}

// Position is a point in layout space. Y grows downwards.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one visual element of a diagram.
type Node struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	Depth       int       `json:"depth"`
	Position    Position  `json:"position"`
	Type        ValueType `json:"type"`
	Label       string    `json:"label"`
	Style       Style     `json:"style"`
	Highlighted bool      `json:"highlighted,omitempty"`
	Draggable   bool      `json:"draggable"`
}

// EffectiveStyle returns the style to draw the node with, taking the
// highlight state into account.
func (n Node) EffectiveStyle() Style {
	s := n.Style
	if n.Highlighted && s.HighlightBorder != "" {
		s.Border = s.HighlightBorder
	}
	return s
}

// Edge connects a container node to one of its members.
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Animated bool   `json:"animated"`
}
