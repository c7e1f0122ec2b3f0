package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
	"github.com/Priyanshu055/intern-match-backend/internal/model"
	"github.com/Priyanshu055/intern-match-backend/internal/policy"
	"github.com/Priyanshu055/intern-match-backend/internal/repository"
)

// MessageService relays messages between the two parties of an
// application. Clients never address a user directly: they name an
// application, and the service derives sender and receiver from the
// actor's position in it.
type MessageService struct {
	messages     repository.MessageRepository
	applications repository.ApplicationRepository
	internships  repository.InternshipRepository
	users        repository.UserRepository
	candidates   repository.CandidateProfileRepository
	logger       *slog.Logger
}

func NewMessageService(
	messages repository.MessageRepository,
	applications repository.ApplicationRepository,
	internships repository.InternshipRepository,
	users repository.UserRepository,
	candidates repository.CandidateProfileRepository,
	logger *slog.Logger,
) *MessageService {
	return &MessageService{
		messages:     messages,
		applications: applications,
		internships:  internships,
		users:        users,
		candidates:   candidates,
		logger:       logger,
	}
}

// Send stores a message from the actor to the other party of the given
// application. The actor must be the application's candidate or the
// owning employer; anyone else gets Forbidden without learning whether
// the application exists beyond the 404 check.
func (s *MessageService) Send(ctx context.Context, actor policy.Actor, applicationID, body string) (*model.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperror.ValidationFailed("body", "message body is required")
	}
	app, err := s.applications.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	internship, err := s.internships.GetInternshipByID(ctx, app.InternshipID)
	if err != nil {
		return nil, err
	}
	senderID, receiverID, err := policy.MessageParties(actor, app, internship)
	if err != nil {
		return nil, err
	}

	msg := &model.Message{
		SenderID:      senderID,
		ReceiverID:    receiverID,
		ApplicationID: app.ID,
		Body:          body,
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	s.logger.Info("message sent", "message_id", msg.ID, "application_id", app.ID)
	return msg, nil
}

// ListForUser returns every message the actor sent or received, newest
// first. Both roles use this for their inbox view.
func (s *MessageService) ListForUser(ctx context.Context, actor policy.Actor) ([]model.Message, error) {
	return s.messages.ListMessagesByParticipant(ctx, actor.UserID)
}

// ApplicantView pairs an applicant's account with their profile. The
// conversation screen needs both: the account for name and email, the
// profile for skills and resume.
type ApplicantView struct {
	User    *model.User             `json:"user"`
	Profile *model.CandidateProfile `json:"profile"`
}

// CandidateProfileForApplication lets the employer who owns an
// application's internship view the applicant from the conversation
// screen. A candidate who never filled in a profile shows up with an
// empty one rather than a 404; the application itself proves the
// candidate exists.
func (s *MessageService) CandidateProfileForApplication(ctx context.Context, actor policy.Actor, applicationID string) (*ApplicantView, error) {
	app, err := s.applications.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	internship, err := s.internships.GetInternshipByID(ctx, app.InternshipID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanModerateApplication(actor, internship); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, app.CandidateID)
	if err != nil {
		return nil, err
	}
	profile, err := s.candidates.GetCandidateProfile(ctx, app.CandidateID)
	if errors.Is(err, apperror.ErrNotFound) {
		profile = &model.CandidateProfile{UserID: app.CandidateID, Skills: []string{}}
	} else if err != nil {
		return nil, err
	}
	return &ApplicantView{User: user, Profile: profile}, nil
}

// MarkRead flips a message's read flag. Only the receiver may do this;
// marking an already-read message again is a no-op.
func (s *MessageService) MarkRead(ctx context.Context, actor policy.Actor, messageID string) (*model.Message, error) {
	msg, err := s.messages.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanMarkRead(actor, msg); err != nil {
		return nil, err
	}
	if !msg.Read {
		if err := s.messages.MarkMessageRead(ctx, msg.ID); err != nil {
			return nil, err
		}
		msg.Read = true
	}
	return msg, nil
}
