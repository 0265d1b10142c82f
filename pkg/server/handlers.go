package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/jsontree/pkg/document"
	"github.com/matzehuels/jsontree/pkg/errors"
	"github.com/matzehuels/jsontree/pkg/render/nodelink"
	"github.com/matzehuels/jsontree/pkg/render/sink"
	"github.com/matzehuels/jsontree/pkg/workspace"
)

// generateResponse answers create and regenerate requests.
type generateResponse struct {
	ID      string            `json:"id"`
	Version int               `json:"version"`
	FitView workspace.FitView `json:"fitView"`
	Nodes   int               `json:"nodes"`
	Edges   int               `json:"edges"`
}

type searchRequest struct {
	Query string `json:"query"`
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (string, *workspace.Workspace, bool) {
	id := chi.URLParam(r, "id")
	ws, err := s.store.Get(id)
	if err != nil {
		writeError(w, s.logger, err)
		return "", nil, false
	}
	return id, ws, true
}

// readDocument returns the request body and the format named by ?format=.
func readDocument(r *http.Request) ([]byte, document.Format, error) {
	format, err := document.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		return nil, "", err
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, errors.MaxDocumentSize+1))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if err := errors.ValidateDocumentSize(len(body)); err != nil {
		return nil, "", err
	}
	return body, format, nil
}

// generate rebuilds ws from text and reports whether it succeeded.
func (s *Server) generate(w http.ResponseWriter, r *http.Request, id string, ws *workspace.Workspace, text []byte, format document.Format, status int) bool {
	fit, err := ws.Generate(r.Context(), text, format)
	if err != nil {
		writeError(w, s.logger, err)
		return false
	}
	d := ws.Diagram()
	if status == http.StatusCreated {
		w.Header().Set("Location", "/api/workspaces/"+id)
	}
	writeJSON(w, status, generateResponse{
		ID:      id,
		Version: ws.Version(),
		FitView: fit,
		Nodes:   len(d.Nodes),
		Edges:   len(d.Edges),
	})
	return true
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	text, format, err := readDocument(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if len(text) == 0 {
		text, format = []byte(document.Sample), document.FormatJSON
	}

	id, ws := s.store.Create()
	if !s.generate(w, r, id, ws, text, format, http.StatusCreated) {
		if err := s.store.Delete(id); err != nil {
			s.logger.Debug("discard failed workspace", "id", id, "error", err)
		}
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id, ws, ok := s.lookup(w, r)
	if !ok {
		return
	}
	text, format, err := readDocument(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	s.generate(w, r, id, ws, text, format, http.StatusOK)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	_, ws, ok := s.lookup(w, r)
	if !ok {
		return
	}
	out, err := sink.RenderJSON(ws.Diagram(), sink.WithMeta())
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeRaw(w, "application/json", out)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	_, ws, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req searchRequest
	if q := r.URL.Query().Get("q"); q != "" {
		req.Query = q
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, s.logger, errors.Wrap(errors.ErrCodeInvalidInput, err, "search body must be {\"query\": \"...\"}"))
		return
	}

	res, err := ws.Search(r.Context(), req.Query)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	_, ws, ok := s.lookup(w, r)
	if !ok {
		return
	}
	d := ws.Diagram()

	switch engine := r.URL.Query().Get("engine"); engine {
	case "", "native":
		writeRaw(w, "image/svg+xml", sink.RenderSVG(d))
	case "graphviz":
		svg, err := nodelink.RenderSVG(r.Context(), nodelink.ToDOT(d, nodelink.Options{Background: "#0f172a"}))
		if err != nil {
			writeError(w, s.logger, err)
			return
		}
		writeRaw(w, "image/svg+xml", svg)
	default:
		writeError(w, s.logger, errors.New(errors.ErrCodeInvalidFormat, "unknown engine %q (want native or graphviz)", engine))
	}
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	_, ws, ok := s.lookup(w, r)
	if !ok {
		return
	}
	detailed := r.URL.Query().Get("detailed") == "true"
	writeRaw(w, "text/vnd.graphviz", []byte(nodelink.ToDOT(ws.Diagram(), nodelink.Options{Detailed: detailed})))
}

func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	_, ws, ok := s.lookup(w, r)
	if !ok {
		return
	}
	text, format := ws.Source()
	w.Header().Set("X-Document-Format", string(format))
	writeRaw(w, "text/plain; charset=utf-8", text)
}

// handleIndex opens a viewer on a fresh workspace holding the sample document.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	id, ws := s.store.Create()
	if _, err := ws.Generate(r.Context(), []byte(document.Sample), document.FormatJSON); err != nil {
		writeError(w, s.logger, err)
		return
	}
	page, err := sink.RenderHTML(ws.Diagram(), sink.HTMLOptions{
		Source:          document.Sample,
		Endpoint:        "/api/workspaces/" + id,
		FitPadding:      s.opts.View.FitPadding,
		CenterZoom:      s.opts.View.CenterZoom,
		CenterDuration:  s.opts.View.CenterDuration,
		HighlightBorder: s.opts.Layout.Base.HighlightBorder,
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeRaw(w, "text/html; charset=utf-8", page)
}
