package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hyperjump/notegraph/internal/graph"
	"github.com/hyperjump/notegraph/internal/notes"
)

// maxCanvas bounds the requested drawing size on either axis.
const maxCanvas = 4096

type graphView struct {
	store    *notes.Store
	layout   *graph.Layout
	selected string
	width    int
	height   int
}

// graphOptions builds layout options from config; zero values fall back to defaults.
func (s *Server) graphOptions() graph.Options {
	g := s.config.Graph
	return graph.Options{
		RadiusFactor:   g.RadiusFactor,
		NodeRadius:     g.NodeRadius,
		SelectedRadius: g.SelectedNodeRadius,
		HitRadius:      g.HitRadius,
		LabelMax:       g.LabelMax,
	}
}

// buildGraph lays out the caller's notes for the folder, width and height query parameters.
func (s *Server) buildGraph(w http.ResponseWriter, r *http.Request) (*graphView, bool) {
	st, ok := s.session(w, r)
	if !ok {
		return nil, false
	}
	width, err := intParam(r, "width", s.config.Graph.DefaultWidth)
	if err != nil || width <= 0 || width > maxCanvas {
		s.respondError(w, http.StatusBadRequest, "invalid width")
		return nil, false
	}
	height, err := intParam(r, "height", s.config.Graph.DefaultHeight)
	if err != nil || height <= 0 || height > maxCanvas {
		s.respondError(w, http.StatusBadRequest, "invalid height")
		return nil, false
	}
	list, err := st.Filter(r.URL.Query().Get("folder"))
	if err != nil {
		s.fail(w, err)
		return nil, false
	}
	v := &graphView{
		store:    st,
		layout:   graph.New(list, float64(width), float64(height), s.graphOptions()),
		selected: r.URL.Query().Get("selected"),
		width:    width,
		height:   height,
	}
	if v.selected == "" {
		if n, ok := st.Selected(); ok {
			v.selected = n.ID
		}
	}
	return v, true
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	v, ok := s.buildGraph(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"layout":      v.layout,
		"selected_id": v.selected,
	})
}

func (s *Server) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	v, ok := s.buildGraph(w, r)
	if !ok {
		return
	}
	surface := graph.NewSVGSurface(float64(v.width), float64(v.height))
	graph.Render(surface, v.layout, v.selected)
	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := surface.WriteTo(w); err != nil {
		s.logger.Debug("failed to write svg", zap.Error(err))
	}
}

func (s *Server) handleGraphPNG(w http.ResponseWriter, r *http.Request) {
	v, ok := s.buildGraph(w, r)
	if !ok {
		return
	}
	surface := graph.NewPNGSurface(v.width, v.height)
	graph.Render(surface, v.layout, v.selected)
	w.Header().Set("Content-Type", "image/png")
	if err := surface.Encode(w); err != nil {
		s.logger.Debug("failed to write png", zap.Error(err))
	}
}

// handleGraphHit resolves a pointer position to a node and selects its note.
func (s *Server) handleGraphHit(w http.ResponseWriter, r *http.Request) {
	v, ok := s.buildGraph(w, r)
	if !ok {
		return
	}
	x, errX := floatParam(r, "x", -1)
	y, errY := floatParam(r, "y", -1)
	if errX != nil || errY != nil || r.URL.Query().Get("x") == "" || r.URL.Query().Get("y") == "" {
		s.respondError(w, http.StatusBadRequest, "x and y are required")
		return
	}
	node, hit := v.layout.HitTest(x, y)
	if !hit {
		s.respondJSON(w, http.StatusOK, map[string]interface{}{"hit": false})
		return
	}
	n, err := v.store.Select(node.ID)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"hit": true, "node": node, "note": n})
}
