package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
	"github.com/Priyanshu055/intern-match-backend/internal/model"
	"github.com/Priyanshu055/intern-match-backend/internal/service"
	"github.com/Priyanshu055/intern-match-backend/internal/storage"
)

// ProfileHandler serves profile reads, writes, and the upload routes.
// The same routes serve both roles; the actor's role picks the profile
// shape.
type ProfileHandler struct {
	profiles *service.ProfileService
	logger   *slog.Logger
}

func NewProfileHandler(profiles *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// profileRequest is the union of candidate and employer profile fields.
// Skills is a pointer-shaped nil check: an absent key keeps the stored
// list, an empty array clears it.
type profileRequest struct {
	// candidate fields
	Skills     []string `json:"skills"`
	Education  string   `json:"education"`
	Experience string   `json:"experience"`
	// employer fields
	Company     string `json:"company"`
	Industry    string `json:"industry"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

// HandleGet returns the actor's profile, dispatching on role.
//
// GET /api/profiles
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	switch actor.Role {
	case model.RoleCandidate:
		profile, err := h.profiles.GetCandidate(r.Context(), actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	case model.RoleEmployer:
		profile, err := h.profiles.GetEmployer(r.Context(), actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	default:
		writeError(w, apperror.Forbidden("access denied"))
	}
}

// HandleUpsert creates or partially updates the actor's profile.
//
// POST /api/profiles
func (h *ProfileHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	switch actor.Role {
	case model.RoleCandidate:
		profile, err := h.profiles.UpsertCandidate(r.Context(), actor, service.CandidateProfileInput{
			Skills:     req.Skills,
			Education:  req.Education,
			Experience: req.Experience,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	case model.RoleEmployer:
		profile, err := h.profiles.UpsertEmployer(r.Context(), actor, service.EmployerProfileInput{
			Company:     req.Company,
			Industry:    req.Industry,
			Website:     req.Website,
			Description: req.Description,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	default:
		writeError(w, apperror.Forbidden("access denied"))
	}
}

// HandleUploadResume stores a resume and suggests skills from its text.
//
// POST /api/profiles/upload-resume (multipart, field "resume")
func (h *ProfileHandler) HandleUploadResume(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	filename, data, err := readUpload(r, "resume")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.profiles.UploadResume(r.Context(), actor, filename, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"resumeUrl":       result.ResumeURL,
		"suggestedSkills": result.SuggestedSkills,
	})
}

// HandleUploadProfileImage stores an avatar for either role.
//
// POST /api/profiles/upload-profile-image (multipart, field "profileImage")
func (h *ProfileHandler) HandleUploadProfileImage(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	filename, data, err := readUpload(r, "profileImage")
	if err != nil {
		writeError(w, err)
		return
	}

	ref, err := h.profiles.UploadProfileImage(r.Context(), actor, filename, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"profileImage": ref})
}

// readUpload pulls one file out of a multipart form, capped at the
// storage size limit.
func readUpload(r *http.Request, field string) (string, []byte, error) {
	if err := r.ParseMultipartForm(storage.MaxUploadSize); err != nil {
		return "", nil, apperror.ValidationFailed(field, "malformed or oversized form data")
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, apperror.ValidationFailed(field, "no file uploaded")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxUploadSize+1))
	if err != nil {
		return "", nil, apperror.ValidationFailed(field, "file could not be read")
	}
	if int64(len(data)) > storage.MaxUploadSize {
		return "", nil, apperror.StorageRejected("file exceeds the 5 MB upload limit")
	}
	return header.Filename, data, nil
}
