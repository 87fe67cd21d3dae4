package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hyperjump/notegraph/internal/ai"
	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/internal/notes"
	"github.com/hyperjump/notegraph/internal/plan"
	"github.com/hyperjump/notegraph/internal/profile"
	"github.com/hyperjump/notegraph/internal/search"
	"github.com/hyperjump/notegraph/internal/storage"
)

const maxBodyBytes = 4 << 20

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	s.logger.Debug("invalid request body", zap.String("path", r.URL.Path), zap.Error(err))
	s.respondError(w, http.StatusBadRequest, "invalid request body")
	return false
}

// fail maps err onto a status code and a message safe to show the user.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalid),
		errors.Is(err, plan.ErrInvalidInput),
		errors.Is(err, search.ErrRankedUnavailable),
		errors.Is(err, profile.ErrTooLarge),
		errors.Is(err, profile.ErrUnsupportedType),
		errors.Is(err, profile.ErrInvalidImage),
		errors.Is(err, profile.ErrInvalidUser):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ai.ErrEmptyInput), errors.Is(err, ai.ErrUnknownMode):
		s.respondError(w, http.StatusBadRequest, ai.UserMessage(err))
	case errors.Is(err, storage.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, notes.ErrNoSession):
		s.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ai.ErrUpstream), errors.Is(err, ai.ErrNotConfigured), errors.Is(err, plan.ErrNoChat), errors.Is(err, plan.ErrNoPlan):
		s.respondError(w, http.StatusBadGateway, ai.FailureMessage)
	default:
		s.logger.Error("request failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// intParam parses an integer query parameter, returning def when absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func floatParam(r *http.Request, name string, def float64) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}
