package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
	"github.com/Priyanshu055/intern-match-backend/internal/model"
	"github.com/Priyanshu055/intern-match-backend/internal/service"
	"github.com/Priyanshu055/intern-match-backend/internal/storage"
)

// ApplicationHandler serves the application lifecycle routes.
type ApplicationHandler struct {
	applications *service.ApplicationService
	blobs        storage.BlobStore
	logger       *slog.Logger
}

func NewApplicationHandler(applications *service.ApplicationService, blobs storage.BlobStore, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, blobs: blobs, logger: logger}
}

// HandleApply submits an application. The body is either plain JSON or
// multipart form data with an optional "resume" file; an attached resume
// is stored first and its reference recorded on the application.
//
// POST /api/applications
func (h *ApplicationHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	input, err := h.parseApplyRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	app, err := h.applications.Apply(r.Context(), actor, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *ApplicationHandler) parseApplyRequest(r *http.Request) (service.ApplyInput, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var req struct {
			InternshipID   string `json:"internshipId"`
			CoverLetter    string `json:"coverLetter"`
			AdditionalInfo string `json:"additionalInfo"`
		}
		if err := decodeJSON(r, &req); err != nil {
			return service.ApplyInput{}, err
		}
		return service.ApplyInput{
			InternshipID:   req.InternshipID,
			CoverLetter:    req.CoverLetter,
			AdditionalInfo: req.AdditionalInfo,
		}, nil
	}

	if err := r.ParseMultipartForm(storage.MaxUploadSize); err != nil {
		return service.ApplyInput{}, apperror.ValidationFailed("form", "malformed or oversized form data")
	}
	input := service.ApplyInput{
		InternshipID:   r.FormValue("internshipId"),
		CoverLetter:    r.FormValue("coverLetter"),
		AdditionalInfo: r.FormValue("additionalInfo"),
	}

	file, header, err := r.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		return input, nil // resume is optional
	}
	if err != nil {
		return service.ApplyInput{}, apperror.ValidationFailed("resume", "resume file could not be read")
	}
	defer file.Close()

	ref, err := h.blobs.Save(storage.KindResume, header.Filename, header.Size, file)
	if err != nil {
		return service.ApplyInput{}, err
	}
	input.ResumeURL = ref
	return input, nil
}

// HandleListCandidate returns the candidate's own applications.
//
// GET /api/applications/candidate
func (h *ApplicationHandler) HandleListCandidate(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	apps, err := h.applications.ListForCandidate(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// HandleListEmployer returns every application against the employer's
// postings.
//
// GET /api/applications/employer
func (h *ApplicationHandler) HandleListEmployer(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	apps, err := h.applications.ListForEmployer(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// HandleUpdateStatus records the employer's decision.
//
// PUT /api/applications/{id}
func (h *ApplicationHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	app, err := h.applications.UpdateStatus(r.Context(), actor, r.PathValue("id"), model.ApplicationStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}
