package tree

import (
	"encoding/json"
	"testing"
)

func TestHighlightIsExclusive(t *testing.T) {
	d := Build(mustParse(t, sample))

	if !d.Highlight("$_dot_user") {
		t.Fatal("Highlight($_dot_user) = false")
	}
	if !d.Highlight("$_dot_items") {
		t.Fatal("Highlight($_dot_items) = false")
	}

	count := 0
	for _, n := range d.Nodes {
		if n.Highlighted {
			count++
			if n.ID != "$_dot_items" {
				t.Errorf("unexpected highlighted node %s", n.ID)
			}
		}
	}
	if count != 1 {
		t.Errorf("%d highlighted nodes, want 1", count)
	}

	if d.Highlight("missing") {
		t.Error("Highlight(missing) = true")
	}
	if n, ok := d.Highlighted(); !ok || n.ID != "$_dot_items" {
		t.Error("failed highlight must not change state")
	}

	d.ClearHighlight()
	if _, ok := d.Highlighted(); ok {
		t.Error("ClearHighlight left a highlighted node")
	}
}

func TestEffectiveStyle(t *testing.T) {
	d := Build(mustParse(t, `{"a":1}`))
	d.Highlight("$_dot_a")

	n, _ := d.Node("$_dot_a")
	if got := n.EffectiveStyle().Border; got != "4px solid #fef08a" {
		t.Errorf("highlighted border = %q", got)
	}
	root, _ := d.Node("$")
	if got := root.EffectiveStyle().Border; got != DefaultBase().Border {
		t.Errorf("plain border = %q", got)
	}
}

func TestCollisions(t *testing.T) {
	// "a.b" as a key encodes like the nested path $.a.b.
	d := Build(mustParse(t, `{"a.b":1,"a":{"b":2}}`))
	got := d.Collisions()
	if len(got) != 1 || got[0] != "$_dot_a_dot_b" {
		t.Errorf("Collisions() = %v, want [$_dot_a_dot_b]", got)
	}

	clean := Build(mustParse(t, sample))
	if c := clean.Collisions(); len(c) != 0 {
		t.Errorf("unexpected collisions %v", c)
	}
}

func TestBounds(t *testing.T) {
	d := Build(mustParse(t, `[1,2,[3,4]]`))
	b := d.Bounds()
	if b.MinX != 100 || b.MaxX != 700 || b.MinY != 40 || b.MaxY != 280 {
		t.Errorf("Bounds() = %+v", b)
	}
	if b.Width() != 600 || b.Height() != 240 {
		t.Errorf("size = %vx%v", b.Width(), b.Height())
	}

	var empty Diagram
	if empty.Bounds() != (Bounds{}) {
		t.Error("empty diagram bounds should be zero")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := Build(mustParse(t, `[1]`))
	c := d.Clone()
	c.Highlight("$_brk_0_")
	if _, ok := d.Highlighted(); ok {
		t.Error("highlight leaked into original")
	}
}

func TestValueTypeJSON(t *testing.T) {
	data, err := json.Marshal(Node{Type: Array})
	if err != nil {
		t.Fatal(err)
	}
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		t.Fatal(err)
	}
	if n.Type != Array {
		t.Errorf("type = %v, want array", n.Type)
	}
	if err := n.Type.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for unknown type")
	}
}
