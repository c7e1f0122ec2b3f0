package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
	"github.com/Priyanshu055/intern-match-backend/internal/model"
	"github.com/Priyanshu055/intern-match-backend/internal/repository"
)

// =========================================================================
// IN-MEMORY MOCK STORE
// =========================================================================
//
// mockStore implements every repository interface the services depend on,
// the same way a single sqlite.DB does in production. Data lives in maps,
// copies go in and out so tests can't corrupt the store through shared
// pointers, and failNext lets a test force one storage error.

type mockStore struct {
	users        map[string]*model.User
	usersByEmail map[string]string
	candidates   map[string]*model.CandidateProfile // keyed by user ID
	employers    map[string]*model.EmployerProfile  // keyed by user ID
	internships  map[string]*model.Internship
	applications map[string]*model.Application
	saved        map[string]*model.SavedInternship
	messages     map[string]*model.Message

	internshipOrder  []string // insertion order for deterministic listings
	messageOrder     []string
	applicationOrder []string

	nextID   int
	failNext error // returned (once) by the next store call
}

func newMockStore() *mockStore {
	return &mockStore{
		users:        make(map[string]*model.User),
		usersByEmail: make(map[string]string),
		candidates:   make(map[string]*model.CandidateProfile),
		employers:    make(map[string]*model.EmployerProfile),
		internships:  make(map[string]*model.Internship),
		applications: make(map[string]*model.Application),
		saved:        make(map[string]*model.SavedInternship),
		messages:     make(map[string]*model.Message),
	}
}

func (m *mockStore) id() string {
	m.nextID++
	return fmt.Sprintf("mock-%d", m.nextID)
}

func (m *mockStore) fail() error {
	if err := m.failNext; err != nil {
		m.failNext = nil
		return err
	}
	return nil
}

// ---- UserRepository ----

func (m *mockStore) CreateUser(_ context.Context, user *model.User) error {
	if err := m.fail(); err != nil {
		return err
	}
	if _, taken := m.usersByEmail[user.Email]; taken {
		return apperror.Conflict("email is already registered")
	}
	user.ID = m.id()
	stored := *user
	m.users[user.ID] = &stored
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return nil, apperror.NotFound("user", email)
	}
	return m.GetUserByID(context.Background(), id)
}

func (m *mockStore) SetProfileImage(_ context.Context, id, imageRef string) error {
	user, ok := m.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	user.ProfileImage = imageRef
	return nil
}

// ---- CandidateProfileRepository / EmployerProfileRepository ----

func (m *mockStore) GetCandidateProfile(_ context.Context, userID string) (*model.CandidateProfile, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	profile, ok := m.candidates[userID]
	if !ok {
		return nil, apperror.NotFound("candidate profile", userID)
	}
	result := *profile
	return &result, nil
}

func (m *mockStore) UpsertCandidateProfile(_ context.Context, profile *model.CandidateProfile) error {
	if err := m.fail(); err != nil {
		return err
	}
	if profile.ID == "" {
		profile.ID = m.id()
	}
	stored := *profile
	m.candidates[profile.UserID] = &stored
	return nil
}

func (m *mockStore) GetEmployerProfile(_ context.Context, userID string) (*model.EmployerProfile, error) {
	profile, ok := m.employers[userID]
	if !ok {
		return nil, apperror.NotFound("employer profile", userID)
	}
	result := *profile
	return &result, nil
}

func (m *mockStore) UpsertEmployerProfile(_ context.Context, profile *model.EmployerProfile) error {
	if profile.ID == "" {
		profile.ID = m.id()
	}
	stored := *profile
	m.employers[profile.UserID] = &stored
	return nil
}

// ---- InternshipRepository ----

func (m *mockStore) CreateInternship(_ context.Context, internship *model.Internship) error {
	if err := m.fail(); err != nil {
		return err
	}
	internship.ID = m.id()
	stored := *internship
	m.internships[internship.ID] = &stored
	m.internshipOrder = append(m.internshipOrder, internship.ID)
	return nil
}

func (m *mockStore) GetInternshipByID(_ context.Context, id string) (*model.Internship, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	internship, ok := m.internships[id]
	if !ok {
		return nil, apperror.NotFound("internship", id)
	}
	result := *internship
	return &result, nil
}

func (m *mockStore) ListInternships(_ context.Context, filter repository.InternshipFilter) ([]model.Internship, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	result := make([]model.Internship, 0, len(m.internshipOrder))
	for _, id := range m.internshipOrder {
		in, ok := m.internships[id]
		if !ok {
			continue
		}
		if filter.Location != "" && in.Location != filter.Location {
			continue
		}
		if len(filter.Skills) > 0 && !hasAnySkill(in.RequiredSkills, filter.Skills) {
			continue
		}
		result = append(result, *in)
	}
	return result, nil
}

func (m *mockStore) ListInternshipsByCompany(_ context.Context, companyID string) ([]model.Internship, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	result := []model.Internship{}
	for _, id := range m.internshipOrder {
		if in, ok := m.internships[id]; ok && in.CompanyID == companyID {
			result = append(result, *in)
		}
	}
	return result, nil
}

func (m *mockStore) UpdateInternship(_ context.Context, internship *model.Internship) error {
	if _, ok := m.internships[internship.ID]; !ok {
		return apperror.NotFound("internship", internship.ID)
	}
	stored := *internship
	m.internships[internship.ID] = &stored
	return nil
}

func (m *mockStore) DeleteInternship(_ context.Context, id string) error {
	if _, ok := m.internships[id]; !ok {
		return apperror.NotFound("internship", id)
	}
	delete(m.internships, id)
	return nil
}

func hasAnySkill(required, wanted []string) bool {
	for _, r := range required {
		for _, w := range wanted {
			if r == w {
				return true
			}
		}
	}
	return false
}

// ---- ApplicationRepository ----

func (m *mockStore) CreateApplication(_ context.Context, app *model.Application) error {
	if err := m.fail(); err != nil {
		return err
	}
	for _, existing := range m.applications {
		if existing.CandidateID == app.CandidateID && existing.InternshipID == app.InternshipID {
			return apperror.Conflict("application already exists")
		}
	}
	app.ID = m.id()
	app.Status = model.StatusPending
	stored := *app
	m.applications[app.ID] = &stored
	m.applicationOrder = append(m.applicationOrder, app.ID)
	return nil
}

func (m *mockStore) GetApplicationByID(_ context.Context, id string) (*model.Application, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	app, ok := m.applications[id]
	if !ok {
		return nil, apperror.NotFound("application", id)
	}
	result := *app
	return &result, nil
}

func (m *mockStore) ListApplicationsByCandidate(_ context.Context, candidateID string) ([]model.Application, error) {
	result := []model.Application{}
	for _, id := range m.applicationOrder {
		if app, ok := m.applications[id]; ok && app.CandidateID == candidateID {
			result = append(result, *app)
		}
	}
	return result, nil
}

func (m *mockStore) ListApplicationsByInternships(_ context.Context, internshipIDs []string) ([]model.Application, error) {
	wanted := make(map[string]bool, len(internshipIDs))
	for _, id := range internshipIDs {
		wanted[id] = true
	}
	result := []model.Application{}
	for _, id := range m.applicationOrder {
		if app, ok := m.applications[id]; ok && wanted[app.InternshipID] {
			result = append(result, *app)
		}
	}
	return result, nil
}

func (m *mockStore) ApplicationExists(_ context.Context, candidateID, internshipID string) (bool, error) {
	if err := m.fail(); err != nil {
		return false, err
	}
	for _, app := range m.applications {
		if app.CandidateID == candidateID && app.InternshipID == internshipID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) UpdateApplicationStatus(_ context.Context, id string, status model.ApplicationStatus) error {
	app, ok := m.applications[id]
	if !ok {
		return apperror.NotFound("application", id)
	}
	app.Status = status
	return nil
}

// ---- SavedInternshipRepository ----

func (m *mockStore) SaveInternship(_ context.Context, saved *model.SavedInternship) error {
	for _, existing := range m.saved {
		if existing.UserID == saved.UserID && existing.InternshipID == saved.InternshipID {
			return apperror.Conflict("internship already saved")
		}
	}
	saved.ID = m.id()
	stored := *saved
	m.saved[saved.ID] = &stored
	return nil
}

func (m *mockStore) UnsaveInternship(_ context.Context, userID, internshipID string) error {
	for id, existing := range m.saved {
		if existing.UserID == userID && existing.InternshipID == internshipID {
			delete(m.saved, id)
			return nil
		}
	}
	return apperror.NotFound("saved internship", internshipID)
}

func (m *mockStore) ListSavedByUser(_ context.Context, userID string) ([]model.SavedInternship, error) {
	result := []model.SavedInternship{}
	for _, saved := range m.saved {
		if saved.UserID == userID {
			result = append(result, *saved)
		}
	}
	return result, nil
}

// ---- MessageRepository ----

func (m *mockStore) CreateMessage(_ context.Context, msg *model.Message) error {
	if err := m.fail(); err != nil {
		return err
	}
	msg.ID = m.id()
	stored := *msg
	m.messages[msg.ID] = &stored
	m.messageOrder = append(m.messageOrder, msg.ID)
	return nil
}

func (m *mockStore) GetMessageByID(_ context.Context, id string) (*model.Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, apperror.NotFound("message", id)
	}
	result := *msg
	return &result, nil
}

func (m *mockStore) ListMessagesByParticipant(_ context.Context, userID string) ([]model.Message, error) {
	result := []model.Message{}
	for i := len(m.messageOrder) - 1; i >= 0; i-- {
		msg, ok := m.messages[m.messageOrder[i]]
		if !ok {
			continue
		}
		if msg.SenderID == userID || msg.ReceiverID == userID {
			result = append(result, *msg)
		}
	}
	return result, nil
}

func (m *mockStore) MarkMessageRead(_ context.Context, id string) error {
	msg, ok := m.messages[id]
	if !ok {
		return apperror.NotFound("message", id)
	}
	msg.Read = true
	return nil
}

// Compile-time checks that the mock satisfies every interface, same as
// the sqlite package does for the real store.
var (
	_ repository.UserRepository             = (*mockStore)(nil)
	_ repository.CandidateProfileRepository = (*mockStore)(nil)
	_ repository.EmployerProfileRepository  = (*mockStore)(nil)
	_ repository.InternshipRepository       = (*mockStore)(nil)
	_ repository.ApplicationRepository      = (*mockStore)(nil)
	_ repository.SavedInternshipRepository  = (*mockStore)(nil)
	_ repository.MessageRepository          = (*mockStore)(nil)
)

// =========================================================================
// SHARED HELPERS
// =========================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// seedInternship inserts a posting owned by companyID and returns it.
func seedInternship(t *testing.T, store *mockStore, companyID string, skills ...string) *model.Internship {
	t.Helper()
	internship := &model.Internship{
		CompanyID:      companyID,
		Title:          "Backend Intern",
		Description:    "Build APIs",
		RequiredSkills: skills,
		Location:       "Remote",
	}
	if err := store.CreateInternship(context.Background(), internship); err != nil {
		t.Fatalf("setup: CreateInternship() error = %v", err)
	}
	return internship
}

// seedApplication inserts an application from candidateID to the given
// internship and returns it.
func seedApplication(t *testing.T, store *mockStore, candidateID, internshipID string) *model.Application {
	t.Helper()
	app := &model.Application{
		CandidateID:  candidateID,
		InternshipID: internshipID,
		CoverLetter:  "I am interested",
	}
	if err := store.CreateApplication(context.Background(), app); err != nil {
		t.Fatalf("setup: CreateApplication() error = %v", err)
	}
	return app
}
