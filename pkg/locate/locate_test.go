package locate

import (
	"testing"

	"github.com/matzehuels/jsontree/pkg/document"
	"github.com/matzehuels/jsontree/pkg/errors"
	"github.com/matzehuels/jsontree/pkg/tree"
)

func build(t *testing.T, s string) tree.Diagram {
	t.Helper()
	v, err := document.ParseJSON([]byte(s))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return tree.Build(v)
}

func TestLocateEmptyQuery(t *testing.T) {
	d := build(t, `{"a":1}`)
	for _, q := range []string{"", "   ", "\t\n"} {
		r := Locate(q, d.Nodes)
		if r.Outcome != InvalidQuery {
			t.Errorf("Locate(%q) = %v, want InvalidQuery", q, r.Outcome)
		}
		if !errors.Is(r.Err(), errors.ErrCodeEmptyQuery) {
			t.Errorf("Locate(%q).Err() = %v", q, r.Err())
		}
	}

	if r := Locate("", nil); r.Outcome != InvalidQuery {
		t.Errorf("Locate on empty node set = %v, want InvalidQuery", r.Outcome)
	}
}

func TestLocateNestedMember(t *testing.T) {
	d := build(t, `{"user":{"address":{"city":"Wonderland"}}}`)
	r := Locate("$.user.address.city", d.Nodes)

	if r.Outcome != Found {
		t.Fatalf("outcome = %v, want Found", r.Outcome)
	}
	if r.Node.Label != "$.user.address.city: Wonderland" {
		t.Errorf("label = %q", r.Node.Label)
	}
	if r.ID != "$_dot_user_dot_address_dot_city" {
		t.Errorf("id = %q", r.ID)
	}
	if r.Position != (tree.Position{X: 1000, Y: 40}) {
		t.Errorf("position = %+v", r.Position)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
}

func TestLocateArrayElements(t *testing.T) {
	d := build(t, `{"items":[{"name":"item1"},{"name":"item2"}]}`)

	first := Locate("$.items[0].name", d.Nodes)
	second := Locate("$.items[1].name", d.Nodes)
	if first.Outcome != Found || second.Outcome != Found {
		t.Fatalf("outcomes = %v, %v", first.Outcome, second.Outcome)
	}
	if first.ID == second.ID {
		t.Errorf("both queries matched %s", first.ID)
	}
	if first.Node.Label != "$.items[0].name: item1" || second.Node.Label != "$.items[1].name: item2" {
		t.Errorf("labels = %q, %q", first.Node.Label, second.Node.Label)
	}
}

func TestLocateNotFound(t *testing.T) {
	d := build(t, `{"user":{"name":"Alice"}}`)
	for _, q := range []string{"$.missing", "$.User", "$.user.name.first", "$.user[0]", "user", "$. user"} {
		r := Locate(q, d.Nodes)
		if r.Outcome != NotFound {
			t.Errorf("Locate(%q) = %v, want NotFound", q, r.Outcome)
		}
		if !errors.Is(r.Err(), errors.ErrCodeNoMatch) {
			t.Errorf("Locate(%q).Err() = %v", q, r.Err())
		}
	}
}

func TestLocateTrimsOuterWhitespace(t *testing.T) {
	d := build(t, `{"a":1}`)
	r := Locate("  $.a\n", d.Nodes)
	if r.Outcome != Found || r.Query != "$.a" {
		t.Errorf("Locate = %v %q, want Found $.a", r.Outcome, r.Query)
	}
}

func TestLocateRoot(t *testing.T) {
	d := build(t, `[]`)
	r := Locate("$", d.Nodes)
	if r.Outcome != Found || r.ID != "$" {
		t.Errorf("Locate($) = %v %q", r.Outcome, r.ID)
	}
}

func TestLocateFirstMatchOnCollision(t *testing.T) {
	d := build(t, `{"a.b":1,"a":{"b":2}}`)
	r := Locate("$.a.b", d.Nodes)
	if r.Outcome != Found || r.Node.Label != "$.a.b: 1" {
		t.Errorf("Locate = %v %+v, want first node", r.Outcome, r.Node)
	}
}

func TestLocateResultIsCopy(t *testing.T) {
	d := build(t, `{"a":1}`)
	r := Locate("$.a", d.Nodes)
	r.Node.Label = "changed"
	if d.Nodes[1].Label != "$.a: 1" {
		t.Error("Locate result aliases the node slice")
	}
}
