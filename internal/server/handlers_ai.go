package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hyperjump/notegraph/internal/ai"
)

// handleChatFunction answers one chat message: {"message"} -> {"response"}.
func (s *Server) handleChatFunction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.respondError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if s.deps.Chat == nil {
		s.respondError(w, http.StatusBadRequest, ai.FailureMessage)
		return
	}
	reply, err := s.deps.Chat.Complete(r.Context(), req.Message)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, ai.UserMessage(err))
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"response": reply})
}

// handleSearchFunction runs web research: {"query"} -> {"content"}.
func (s *Server) handleSearchFunction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.respondError(w, http.StatusBadRequest, "Query is required")
		return
	}
	if s.deps.Research == nil {
		s.respondError(w, http.StatusBadRequest, ai.FailureMessage)
		return
	}
	content, err := s.deps.Research.Search(r.Context(), req.Query)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, ai.UserMessage(err))
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"content": content})
}

// handleGenerateFunction completes a prompt: {"prompt"} -> {"generated_text"}.
// Upstream failures still answer 200 with a fixed fallback text.
func (s *Server) handleGenerateFunction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		s.respondError(w, http.StatusBadRequest, "Prompt is required")
		return
	}
	var (
		gen *ai.Generation
		err error
	)
	if s.deps.Generate == nil {
		err = ai.ErrNotConfigured
	} else {
		gen, err = s.deps.Generate.Generate(r.Context(), req.Prompt)
	}
	if err != nil {
		s.respondJSON(w, http.StatusOK, map[string]string{
			"generated_text": ai.UnavailableMessage,
			"error":          ai.UserMessage(err),
		})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"generated_text": gen.Text,
		"loading":        gen.Loading,
	})
}

type askRequest struct {
	Mode    string `json:"mode"`
	Query   string `json:"query"`
	Content string `json:"content,omitempty"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !s.decode(w, r, &req) {
		return
	}
	mode, err := ai.ParseMode(req.Mode)
	if err != nil {
		s.fail(w, err)
		return
	}
	result, err := s.assistant.Ask(r.Context(), mode, req.Query)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"mode":   string(mode),
		"title":  mode.Title(),
		"result": result,
	})
}

// handleSaveAnswer stores an assistant answer in the AI folder.
func (s *Server) handleSaveAnswer(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	var req askRequest
	if !s.decode(w, r, &req) {
		return
	}
	mode, err := ai.ParseMode(req.Mode)
	if err != nil {
		s.fail(w, err)
		return
	}
	n, err := s.assistant.SaveAsNote(r.Context(), st, mode, req.Query, req.Content)
	if err != nil {
		if errors.Is(err, ai.ErrEmptyInput) {
			s.respondError(w, http.StatusBadRequest, "content is required")
			return
		}
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, n)
}
