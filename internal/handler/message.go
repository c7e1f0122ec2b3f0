package handler

import (
	"log/slog"
	"net/http"

	"github.com/Priyanshu055/intern-match-backend/internal/model"
	"github.com/Priyanshu055/intern-match-backend/internal/policy"
	"github.com/Priyanshu055/intern-match-backend/internal/service"
)

// MessageHandler serves the messaging relay routes.
type MessageHandler struct {
	messages *service.MessageService
	logger   *slog.Logger
}

func NewMessageHandler(messages *service.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, logger: logger}
}

// HandleSend relays a message to the other party of an application.
//
// POST /api/messages
func (h *MessageHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	var req struct {
		ApplicationID string `json:"applicationId"`
		Body          string `json:"body"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	msg, err := h.messages.Send(r.Context(), actor, req.ApplicationID, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// HandleListCandidate returns the candidate's inbox.
//
// GET /api/messages/candidate
func (h *MessageHandler) HandleListCandidate(w http.ResponseWriter, r *http.Request) {
	h.listForRole(w, r, model.RoleCandidate)
}

// HandleListEmployer returns the employer's inbox.
//
// GET /api/messages/employer
func (h *MessageHandler) HandleListEmployer(w http.ResponseWriter, r *http.Request) {
	h.listForRole(w, r, model.RoleEmployer)
}

func (h *MessageHandler) listForRole(w http.ResponseWriter, r *http.Request, role model.Role) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	if err := policy.RequireRole(actor, role); err != nil {
		writeError(w, err)
		return
	}

	msgs, err := h.messages.ListForUser(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// HandleCandidateProfile lets an employer view an applicant's account
// and profile from the conversation screen.
//
// GET /api/messages/candidate-profile/{applicationId}
func (h *MessageHandler) HandleCandidateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	view, err := h.messages.CandidateProfileForApplication(r.Context(), actor, r.PathValue("applicationId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleMarkRead marks a received message as read.
//
// PUT /api/messages/{id}/read
func (h *MessageHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	msg, err := h.messages.MarkRead(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}
