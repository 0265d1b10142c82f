package workspace

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/matzehuels/jsontree/pkg/document"
	"github.com/matzehuels/jsontree/pkg/errors"
	"github.com/matzehuels/jsontree/pkg/locate"
	"github.com/matzehuels/jsontree/pkg/tree"
)

const sample = `{"user":{"name":"Alice","address":{"city":"Wonderland","zip":12345}},"items":[{"name":"item1"},{"name":"item2"}]}`

func newWorkspace() *Workspace {
	return New(tree.DefaultOptions(), DefaultViewOptions())
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace()

	fit, err := w.Generate(ctx, []byte(sample), document.FormatJSON)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if fit.Padding != DefaultFitPadding {
		t.Errorf("fit padding = %v, want %v", fit.Padding, DefaultFitPadding)
	}
	if n := len(w.Diagram().Nodes); n != 11 {
		t.Errorf("%d nodes, want 11", n)
	}
	if w.Version() != 1 {
		t.Errorf("version = %d, want 1", w.Version())
	}
}

func TestGenerateErrorKeepsPreviousDiagram(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace()

	if _, err := w.Generate(ctx, []byte(`[1,2,3]`), document.FormatJSON); err != nil {
		t.Fatal(err)
	}
	before := w.Diagram()

	_, err := w.Generate(ctx, []byte(`{"broken":`), document.FormatJSON)
	if !errors.Is(err, errors.ErrCodeInvalidJSON) {
		t.Fatalf("err = %v, want INVALID_JSON", err)
	}

	after := w.Diagram()
	if len(after.Nodes) != len(before.Nodes) || after.Nodes[0].ID != before.Nodes[0].ID {
		t.Error("failed generate changed the diagram")
	}
	if src, _ := w.Source(); string(src) != `[1,2,3]` {
		t.Errorf("source = %q", src)
	}
	if w.Version() != 1 {
		t.Errorf("version = %d, want 1", w.Version())
	}
}

func TestGenerateReplacesDiagram(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace()

	if _, err := w.Generate(ctx, []byte(sample), document.FormatJSON); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Search(ctx, "$.user"); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Generate(ctx, []byte(`{"user":1}`), document.FormatJSON); err != nil {
		t.Fatal(err)
	}

	d := w.Diagram()
	if len(d.Nodes) != 2 {
		t.Errorf("%d nodes, want 2", len(d.Nodes))
	}
	if _, ok := d.Highlighted(); ok {
		t.Error("highlight survived a regenerate")
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace()
	if _, err := w.Generate(ctx, []byte(sample), document.FormatJSON); err != nil {
		t.Fatal(err)
	}

	res, err := w.Search(ctx, "$.user.address.city")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if res.Outcome != locate.Found || res.Node.Label != "$.user.address.city: Wonderland" {
		t.Fatalf("result = %+v", res.Result)
	}
	if res.Center == nil || res.Center.X != res.Position.X || res.Center.Zoom != DefaultCenterZoom {
		t.Errorf("center = %+v", res.Center)
	}
	if res.Center.Duration != DefaultCenterDuration {
		t.Errorf("duration = %v", res.Center.Duration)
	}

	d := w.Diagram()
	n, ok := d.Highlighted()
	if !ok || n.ID != res.ID {
		t.Errorf("highlighted = %v %v, want %s", n.ID, ok, res.ID)
	}
}

func TestSearchFailuresKeepHighlight(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace()
	if _, err := w.Generate(ctx, []byte(sample), document.FormatJSON); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Search(ctx, "$.items[1].name"); err != nil {
		t.Fatal(err)
	}

	if _, err := w.Search(ctx, "  "); !errors.Is(err, errors.ErrCodeEmptyQuery) {
		t.Errorf("empty query err = %v", err)
	}
	res, err := w.Search(ctx, "$.missing")
	if !errors.Is(err, errors.ErrCodeNoMatch) {
		t.Errorf("missing err = %v", err)
	}
	if res.Center != nil {
		t.Error("miss should not carry a center instruction")
	}

	d := w.Diagram()
	n, ok := d.Highlighted()
	if !ok || n.Path != "$.items[1].name" {
		t.Errorf("highlight = %q %v, want $.items[1].name", n.Path, ok)
	}
}

func TestSearchBeforeGenerate(t *testing.T) {
	w := newWorkspace()
	_, err := w.Search(context.Background(), "$")
	if !errors.Is(err, errors.ErrCodeNoMatch) {
		t.Errorf("err = %v, want NO_MATCH", err)
	}
}

func TestConcurrentGenerateAndSearch(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace()
	if _, err := w.Generate(ctx, []byte(sample), document.FormatJSON); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = w.Generate(ctx, []byte(sample), document.FormatJSON)
		}()
		go func() {
			defer wg.Done()
			_, _ = w.Search(ctx, "$.items[0].name")
			d := w.Diagram()
			if len(d.Nodes) != 11 || len(d.Edges) != 10 {
				t.Errorf("observed partial diagram: %d nodes %d edges", len(d.Nodes), len(d.Edges))
			}
		}()
	}
	wg.Wait()
}

func TestCenterJSON(t *testing.T) {
	data, err := json.Marshal(Center{X: 1000, Y: 40, Zoom: 1.4, Duration: DefaultCenterDuration})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"x":1000,"y":40,"zoom":1.4,"duration":500}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}
