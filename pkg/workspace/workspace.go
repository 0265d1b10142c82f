// Package workspace holds the current diagram of an interactive session.
//
// A [Workspace] implements the two user actions of the viewer:
//
//   - [Workspace.Generate] parses text, builds a fresh diagram and swaps it
//     in as a whole. On a parse error the previous diagram stays untouched.
//   - [Workspace.Search] locates a path in the current diagram, highlights
//     the hit exclusively and returns where the view should center.
//
// Both actions return view instructions ([FitView], [Center]) for whatever
// surface draws the diagram: the terminal viewer, the HTML canvas or a
// caller of the HTTP API.
//
// A Workspace is safe for concurrent use. Builds happen outside the lock, so
// readers never observe a partially built diagram.
package workspace

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/matzehuels/jsontree/pkg/document"
	"github.com/matzehuels/jsontree/pkg/errors"
	"github.com/matzehuels/jsontree/pkg/locate"
	"github.com/matzehuels/jsontree/pkg/observability"
	"github.com/matzehuels/jsontree/pkg/tree"
)

// View defaults.
const (
	DefaultFitPadding     = 0.2
	DefaultCenterZoom     = 1.4
	DefaultCenterDuration = 500 * time.Millisecond
)

// FitView asks the surface to fit the whole diagram with relative padding.
type FitView struct {
	Padding float64 `json:"padding"`
}

// Center asks the surface to center on a point at the given zoom,
// animating over Duration.
type Center struct {
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Zoom     float64       `json:"zoom"`
	Duration time.Duration `json:"-"`
}

// MarshalJSON encodes Duration in milliseconds, the unit animation APIs expect.
func (c Center) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X        float64 `json:"x"`
		Y        float64 `json:"y"`
		Zoom     float64 `json:"zoom"`
		Duration int64   `json:"duration"`
	}{c.X, c.Y, c.Zoom, c.Duration.Milliseconds()})
}

// ViewOptions configures the view instructions.
type ViewOptions struct {
	FitPadding     float64
	CenterZoom     float64
	CenterDuration time.Duration
}

// DefaultViewOptions returns the stock view instructions.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		FitPadding:     DefaultFitPadding,
		CenterZoom:     DefaultCenterZoom,
		CenterDuration: DefaultCenterDuration,
	}
}

// SearchResult is the outcome of [Workspace.Search].
type SearchResult struct {
	locate.Result
	Center *Center `json:"center,omitempty"`
}

// Workspace owns the current diagram and its source text.
type Workspace struct {
	layout tree.Options
	view   ViewOptions

	mu      sync.RWMutex
	diagram tree.Diagram
	source  []byte
	format  document.Format
	version int
}

// New creates an empty workspace.
func New(layout tree.Options, view ViewOptions) *Workspace {
	return &Workspace{layout: layout, view: view, format: document.FormatJSON}
}

// Generate parses text and replaces the current diagram.
// Errors leave the workspace unchanged.
func (w *Workspace) Generate(ctx context.Context, text []byte, format document.Format) (FitView, error) {
	if err := errors.ValidateDocumentSize(len(text)); err != nil {
		return FitView{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, string(format), len(text))
	start := time.Now()
	v, err := document.Parse(text, format)
	hooks.OnParseComplete(ctx, string(format), time.Since(start), err)
	if err != nil {
		return FitView{}, err
	}

	start = time.Now()
	d := tree.BuildWith(v, w.layout)
	hooks.OnBuildComplete(ctx, len(d.Nodes), len(d.Edges), time.Since(start))

	w.mu.Lock()
	w.diagram = d
	w.source = append([]byte(nil), text...)
	w.format = format
	w.version++
	w.mu.Unlock()

	return FitView{Padding: w.view.FitPadding}, nil
}

// Search locates query in the current diagram. A hit becomes the only
// highlighted node; misses leave the highlight state as it was.
func (w *Workspace) Search(ctx context.Context, query string) (SearchResult, error) {
	w.mu.Lock()
	r := locate.Locate(query, w.diagram.Nodes)
	if r.Outcome == locate.Found {
		w.diagram.Highlight(r.ID)
	}
	w.mu.Unlock()

	observability.Pipeline().OnSearch(ctx, r.Query, r.Outcome.String())

	if err := r.Err(); err != nil {
		return SearchResult{Result: r}, err
	}
	return SearchResult{
		Result: r,
		Center: &Center{
			X:        r.Position.X,
			Y:        r.Position.Y,
			Zoom:     w.view.CenterZoom,
			Duration: w.view.CenterDuration,
		},
	}, nil
}

// Diagram returns a copy of the current diagram.
func (w *Workspace) Diagram() tree.Diagram {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.diagram.Clone()
}

// Source returns the text and format of the last successful generate.
func (w *Workspace) Source() ([]byte, document.Format) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]byte(nil), w.source...), w.format
}

// Version counts successful generates. It is 0 until the first one.
func (w *Workspace) Version() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.version
}
