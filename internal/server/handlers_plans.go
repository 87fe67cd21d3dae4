package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/internal/notes"
	"github.com/hyperjump/notegraph/internal/plan"
)

// questionFilter reads week, difficulty and topic query parameters. Difficulty
// and topic may repeat or hold comma-separated values.
func questionFilter(r *http.Request) (models.QuestionFilter, error) {
	week, err := intParam(r, "week", 0)
	if err != nil {
		return models.QuestionFilter{}, err
	}
	q := r.URL.Query()
	return models.QuestionFilter{
		Week:         week,
		Difficulties: splitValues(q["difficulty"]),
		Topics:       splitValues(q["topic"]),
	}, nil
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	filter, err := questionFilter(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid week")
		return
	}
	qs, err := s.deps.Storage.ListQuestions(r.Context(), filter)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"questions": qs, "total": len(qs)})
}

func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.deps.Storage.ListProgress(r.Context(), userFrom(r.Context()))
	if err != nil {
		s.fail(w, err)
		return
	}
	if progress == nil {
		progress = []models.Progress{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"progress": progress})
}

func (s *Server) handleMarkProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuestionID int  `json:"question_id"`
		Completed  bool `json:"completed"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.QuestionID <= 0 {
		s.respondError(w, http.StatusBadRequest, "question_id is required")
		return
	}
	p := &models.Progress{UserID: userFrom(r.Context()), QuestionID: req.QuestionID, Completed: req.Completed}
	if req.Completed {
		now := time.Now().UTC()
		p.CompletedAt = &now
	}
	if err := s.deps.Storage.UpsertProgress(r.Context(), p); err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

// handleDynamicPlan packs the filtered question bank into weeks.
func (s *Server) handleDynamicPlan(w http.ResponseWriter, r *http.Request) {
	weeks, err := intParam(r, "weeks", s.config.Plan.DefaultWeeks)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid weeks")
		return
	}
	hours, err := intParam(r, "hours", s.config.Plan.DefaultHoursPerWeek)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid hours")
		return
	}
	filter, err := questionFilter(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid week")
		return
	}
	qs, err := s.deps.Storage.ListQuestions(r.Context(), filter)
	if err != nil {
		s.fail(w, err)
		return
	}
	p, err := plan.Pack(qs, weeks, hours)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req models.PlanRequest
	if !s.decode(w, r, &req) {
		return
	}
	p, err := s.deps.Plans.Generate(r.Context(), req)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"plan":     p,
		"title":    plan.PlanTitle(p.Request),
		"markdown": plan.RenderMarkdown(p),
	})
}

func (s *Server) handleWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Weeks        int      `json:"weeks"`
		HoursPerWeek int      `json:"hours_per_week"`
		Difficulties []string `json:"difficulties"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	weeks, err := s.deps.Plans.GenerateWeekPlan(r.Context(), req.Weeks, req.HoursPerWeek, req.Difficulties)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"weeks": weeks})
}

// handleSavePlan renders a structured plan to markdown and stores it as a note.
func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	var p models.StructuredPlan
	if !s.decode(w, r, &p) {
		return
	}
	if err := plan.ValidateRequest(&p.Request); err != nil {
		s.fail(w, err)
		return
	}
	if len(p.Days) == 0 {
		s.respondError(w, http.StatusBadRequest, "plan has no days")
		return
	}
	n, err := st.CreateAI(r.Context(), plan.PlanTitle(p.Request), plan.RenderMarkdown(&p), models.FolderStudyPlans, notes.StudyPlanSource)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, n)
}

func (s *Server) handleSavedPlans(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	plans, err := st.SavedPlans()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"plans": plans})
}
