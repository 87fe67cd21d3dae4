package server

import (
	"net/http"

	"github.com/hyperjump/notegraph/internal/models"
)

// multipartOverhead is allowed on top of the avatar limit for form framing.
const multipartOverhead = 1 << 20

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Profiles.Get(r.Context(), userFrom(r.Context()))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handlePatchProfile(w http.ResponseWriter, r *http.Request) {
	var patch models.ProfilePatch
	if !s.decode(w, r, &patch) {
		return
	}
	p, err := s.deps.Profiles.Update(r.Context(), userFrom(r.Context()), patch)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	limit := s.config.Profile.MaxAvatarBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(limit); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid upload")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	p, err := s.deps.Profiles.UploadAvatar(r.Context(), userFrom(r.Context()), header.Size, header.Header.Get("Content-Type"), file)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}
