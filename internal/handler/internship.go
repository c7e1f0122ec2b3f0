package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Priyanshu055/intern-match-backend/internal/repository"
	"github.com/Priyanshu055/intern-match-backend/internal/service"
)

// InternshipHandler serves the internship catalog, recommendations, and
// bookmark routes.
type InternshipHandler struct {
	internships *service.InternshipService
	logger      *slog.Logger
}

func NewInternshipHandler(internships *service.InternshipService, logger *slog.Logger) *InternshipHandler {
	return &InternshipHandler{internships: internships, logger: logger}
}

// internshipRequest is the JSON body for creating or updating a posting.
// Company ID comes from the token, never the body.
type internshipRequest struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	RequiredSkills      []string   `json:"requiredSkills"`
	Location            string     `json:"location"`
	Stipend             string     `json:"stipend"`
	Duration            string     `json:"duration"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
}

func (req internshipRequest) toInput() service.InternshipInput {
	return service.InternshipInput{
		Title:               req.Title,
		Description:         req.Description,
		RequiredSkills:      req.RequiredSkills,
		Location:            req.Location,
		Stipend:             req.Stipend,
		Duration:            req.Duration,
		ApplicationDeadline: req.ApplicationDeadline,
	}
}

// HandleList returns the public catalog. Supports ?location= and
// ?skills=go,sql query filters; no authentication required.
//
// GET /api/internships
func (h *InternshipHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := repository.InternshipFilter{
		Location: r.URL.Query().Get("location"),
	}
	if raw := r.URL.Query().Get("skills"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Skills = append(filter.Skills, s)
			}
		}
	}

	internships, err := h.internships.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, internships)
}

// HandleGet returns one posting by ID.
//
// GET /api/internships/{id}
func (h *InternshipHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	internship, err := h.internships.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, internship)
}

// HandleRecommended returns the catalog scored against the candidate's
// skills, best match first.
//
// GET /api/internships/recommended
func (h *InternshipHandler) HandleRecommended(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	recs, err := h.internships.Recommend(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// HandleListByEmployer returns the employer's own postings.
//
// GET /api/internships/employer
func (h *InternshipHandler) HandleListByEmployer(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	internships, err := h.internships.ListByEmployer(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, internships)
}

// HandleCreate posts a new internship.
//
// POST /api/internships
func (h *InternshipHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	var req internshipRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	internship, err := h.internships.Create(r.Context(), actor, req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, internship)
}

// HandleUpdate edits a posting the employer owns.
//
// PUT /api/internships/{id}
func (h *InternshipHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	var req internshipRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	internship, err := h.internships.Update(r.Context(), actor, r.PathValue("id"), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, internship)
}

// HandleDelete removes a posting the employer owns.
//
// DELETE /api/internships/{id}
func (h *InternshipHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	if err := h.internships.Delete(r.Context(), actor, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSave bookmarks an internship for the candidate.
//
// POST /api/internships/save
func (h *InternshipHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	var req struct {
		InternshipID string `json:"internshipId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	saved, err := h.internships.Save(r.Context(), actor, req.InternshipID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// HandleListSaved returns the candidate's bookmarked internships.
//
// GET /api/internships/saved
func (h *InternshipHandler) HandleListSaved(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	internships, err := h.internships.ListSaved(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, internships)
}

// HandleUnsave removes a bookmark.
//
// DELETE /api/internships/saved/{internshipId}
func (h *InternshipHandler) HandleUnsave(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	if err := h.internships.Unsave(r.Context(), actor, r.PathValue("internshipId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
