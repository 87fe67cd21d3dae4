package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/internal/notes"
	"github.com/hyperjump/notegraph/internal/storage"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// session returns the caller's note store, writing the error response on failure.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*notes.Store, bool) {
	st, err := s.deps.Sessions.Get(r.Context(), userFrom(r.Context()))
	if err != nil {
		s.fail(w, err)
		return nil, false
	}
	return st, true
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	folder := r.URL.Query().Get("folder")
	if folder != "" && folder != models.FolderAll && !models.IsFolder(folder) {
		s.respondError(w, http.StatusBadRequest, "unknown folder")
		return
	}
	list, err := st.Filter(folder)
	if err != nil {
		s.fail(w, err)
		return
	}
	resp := map[string]interface{}{"notes": list}
	if sel, ok := st.Selected(); ok {
		resp["selected_id"] = sel.ID
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Folder string `json:"folder"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	n, err := st.Create(r.Context(), req.Folder)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, n)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	n, err := st.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, n)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	var n models.Note
	if !s.decode(w, r, &n) {
		return
	}
	n.ID = chi.URLParam(r, "id")
	updated, err := st.Update(r.Context(), &n)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := st.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePreviewNote(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	n, err := st.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	html, err := s.deps.Markdown.Render(n.Content)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"id": n.ID, "title": n.Title, "html": html})
}

func (s *Server) handleSelectNote(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	n, err := st.Select(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, n)
}

func (s *Server) handleSelectedNote(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	n, found := st.Selected()
	if !found {
		s.respondError(w, http.StatusNotFound, "no note selected")
		return
	}
	s.respondJSON(w, http.StatusOK, n)
}

func (s *Server) handleFolders(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	counts, err := st.FolderCounts()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"folders": counts})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	q := r.URL.Query()
	query := &models.SearchQuery{Query: q.Get("q"), Mode: q.Get("mode"), Limit: limit}
	list, err := st.Filter(q.Get("folder"))
	if err != nil {
		s.fail(w, err)
		return
	}
	resp, err := s.deps.Search.Search(r.Context(), st.UserID(), query, list)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	ended := s.deps.Sessions.End(userFrom(r.Context()))
	s.respondJSON(w, http.StatusOK, map[string]bool{"ended": ended})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := models.ServiceStatus{
		Driver:       s.config.Storage.Driver,
		RankedSearch: s.deps.Search.RankedEnabled(),
	}
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		n, err := s.deps.Storage.CountNotes(ctx)
		resp.Notes = n
		return err
	})
	g.Go(func() error {
		n, err := s.deps.Storage.CountQuestions(ctx)
		resp.Questions = n
		return err
	})
	g.Go(func() error {
		usage, total, err := storage.DiskUsage(s.config.Storage.DatabasePath, s.config.Storage.BleveIndexPath, s.config.Profile.AvatarDir)
		resp.DiskUsage = usage
		resp.DiskUsageBytes = total
		return err
	})
	if err := g.Wait(); err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}
