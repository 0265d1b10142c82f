package tree

import (
	"github.com/matzehuels/jsontree/pkg/document"
	"github.com/matzehuels/jsontree/pkg/jsonpath"
)

// Default layout constants.
const (
	DefaultLevelSpacing = 300.0 // horizontal distance between depths
	DefaultRowSpacing   = 120.0 // vertical distance between rows of one depth
	DefaultMarginX      = 100.0
	DefaultMarginY      = 40.0
)

// Options controls layout and styling of a build.
type Options struct {
	LevelSpacing  float64
	RowSpacing    float64
	MarginX       float64
	MarginY       float64
	Base          Style
	Themes        Themes
	AnimatedEdges bool
}

// DefaultOptions returns the stock layout and palette.
func DefaultOptions() Options {
	return Options{
		LevelSpacing: DefaultLevelSpacing,
		RowSpacing:   DefaultRowSpacing,
		MarginX:      DefaultMarginX,
		MarginY:      DefaultMarginY,
		Base:         DefaultBase(),
		Themes:       DefaultThemes(),
	}
}

// TypeOf classifies a value: arrays are Array, null and scalars are
// Primitive, everything else is Object.
func TypeOf(v document.Value) ValueType {
	switch v.Kind() {
	case document.KindArray:
		return Array
	case document.KindObject:
		return Object
	default:
		return Primitive
	}
}

// Build lays out root with [DefaultOptions].
func Build(root document.Value) Diagram {
	return BuildWith(root, DefaultOptions())
}

// BuildWith lays out root with opts. It never fails: every Value produces a
// diagram with exactly one root node.
func BuildWith(root document.Value, opts Options) Diagram {
	b := &builder{opts: opts, rows: make(map[int]int)}
	b.walk(root, jsonpath.Root, 0, "")
	return Diagram{Nodes: b.nodes, Edges: b.edges}
}

// builder owns the per-build row counters.
type builder struct {
	opts  Options
	rows  map[int]int // next row index per depth
	nodes []Node
	edges []Edge
}

func (b *builder) walk(v document.Value, path string, depth int, parentID string) {
	row := b.rows[depth]
	b.rows[depth]++

	typ := TypeOf(v)
	id := jsonpath.Encode(path)

	label := path
	if typ == Primitive {
		label = path + ": " + v.Text()
	}

	b.nodes = append(b.nodes, Node{
		ID:    id,
		Path:  path,
		Depth: depth,
		Position: Position{
			X: float64(depth)*b.opts.LevelSpacing + b.opts.MarginX,
			Y: float64(row)*b.opts.RowSpacing + b.opts.MarginY,
		},
		Type:      typ,
		Label:     label,
		Style:     StyleFor(typ, b.opts.Base, b.opts.Themes),
		Draggable: true,
	})

	if parentID != "" {
		b.edges = append(b.edges, Edge{
			ID:       jsonpath.EdgeID(parentID, id),
			Source:   parentID,
			Target:   id,
			Animated: b.opts.AnimatedEdges,
		})
	}

	switch typ {
	case Object:
		for _, m := range v.Members() {
			b.walk(m.Value, jsonpath.Member(path, m.Key), depth+1, id)
		}
	case Array:
		for i, e := range v.Elements() {
			b.walk(e, jsonpath.Element(path, i), depth+1, id)
		}
	case Primitive:
		// leaf
	}
}
