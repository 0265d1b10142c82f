package tree

import "slices"

// Diagram is the complete output of one build. A new build replaces a
// diagram as a whole; only the Highlighted flags change afterwards.
type Diagram struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the first node with the given id.
func (d *Diagram) Node(id string) (Node, bool) {
	if i := d.index(id); i >= 0 {
		return d.Nodes[i], true
	}
	return Node{}, false
}

func (d *Diagram) index(id string) int {
	return slices.IndexFunc(d.Nodes, func(n Node) bool { return n.ID == id })
}

// Highlight marks the node with id as highlighted and clears the flag on all
// others. It reports whether id was found; if not, nothing changes.
func (d *Diagram) Highlight(id string) bool {
	target := d.index(id)
	if target < 0 {
		return false
	}
	for i := range d.Nodes {
		d.Nodes[i].Highlighted = i == target
	}
	return true
}

// ClearHighlight resets every node's Highlighted flag.
func (d *Diagram) ClearHighlight() {
	for i := range d.Nodes {
		d.Nodes[i].Highlighted = false
	}
}

// Highlighted returns the highlighted node, if any.
func (d *Diagram) Highlighted() (Node, bool) {
	for _, n := range d.Nodes {
		if n.Highlighted {
			return n, true
		}
	}
	return Node{}, false
}

// Collisions returns identifiers shared by more than one node, in order of
// their second occurrence. It is empty unless keys contain path separators.
func (d *Diagram) Collisions() []string {
	seen := make(map[string]int, len(d.Nodes))
	var dups []string
	for _, n := range d.Nodes {
		seen[n.ID]++
		if seen[n.ID] == 2 {
			dups = append(dups, n.ID)
		}
	}
	return dups
}

// Bounds is the bounding box of node positions.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Bounds returns the box spanned by node positions. It is zero for an empty diagram.
func (d *Diagram) Bounds() Bounds {
	if len(d.Nodes) == 0 {
		return Bounds{}
	}
	p := d.Nodes[0].Position
	b := Bounds{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
	for _, n := range d.Nodes[1:] {
		b.MinX = min(b.MinX, n.Position.X)
		b.MinY = min(b.MinY, n.Position.Y)
		b.MaxX = max(b.MaxX, n.Position.X)
		b.MaxY = max(b.MaxY, n.Position.Y)
	}
	return b
}

// Clone returns a deep copy so highlight changes do not leak between copies.
func (d Diagram) Clone() Diagram {
	return Diagram{Nodes: slices.Clone(d.Nodes), Edges: slices.Clone(d.Edges)}
}
