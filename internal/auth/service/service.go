// Package service implements authentication business logic.
package service

import (
	"context"

	"recruit_portal_backend/internal/auth/password"
	"recruit_portal_backend/internal/auth/repository"
	"recruit_portal_backend/internal/auth/session"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/platform/apperr"
	"recruit_portal_backend/platform/httpkit"
	"recruit_portal_backend/platform/logger"
)

const (
	demoEmail    = "recruiter@kaizen.com"
	demoPassword = "password123"
)

// UserView is the user shape returned to clients. The password hash never
// leaves the service.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LoginResult carries the new session and its user.
type LoginResult struct {
	SessionID string
	User      UserView
}

// Service implements auth use cases.
type Service struct {
	repo     repository.Repository
	sessions session.Store
	bus      events.Bus
	log      *logger.Logger
}

// New creates the auth service.
func New(repo repository.Repository, sessions session.Store, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, sessions: sessions, bus: bus, log: log}
}

// Login verifies credentials and opens a session.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.AuthEvent("login", email, false, "unknown email")
			return LoginResult{}, apperr.Unauthorized("invalid credentials")
		}
		return LoginResult{}, err
	}

	if !user.IsActive {
		s.log.AuthEvent("login", email, false, "inactive account")
		return LoginResult{}, apperr.Unauthorized("invalid credentials")
	}

	if !password.Verify(user.PasswordHash, plainPassword) {
		s.log.AuthEvent("login", email, false, "bad password")
		return LoginResult{}, apperr.Unauthorized("invalid credentials")
	}

	return s.openSession(ctx, user)
}

// DemoLogin opens a session for the seeded demo recruiter, creating the
// account if the seed is missing.
func (s *Service) DemoLogin(ctx context.Context) (LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, demoEmail)
	if apperr.Is(err, apperr.KindNotFound) {
		hash, hashErr := password.Hash(demoPassword)
		if hashErr != nil {
			return LoginResult{}, apperr.Internal("failed to provision demo user")
		}
		user, err = s.repo.Create(ctx, repository.CreateParams{
			Username:     "demo_recruiter",
			Email:        demoEmail,
			Name:         "Demo Recruiter",
			PasswordHash: hash,
			Role:         "recruiter",
		})
	}
	if err != nil {
		return LoginResult{}, err
	}

	return s.openSession(ctx, user)
}

// Logout destroys the session. Unknown sessions log out successfully.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	data, err := s.sessions.Get(ctx, sessionID)
	if err == nil && data != nil {
		if user, lookupErr := s.repo.GetByEmail(ctx, data.Email); lookupErr == nil {
			s.bus.Publish(ctx, events.UserLoggedOut{
				BaseEvent: events.NewBaseEvent(),
				UserID:    user.ID,
			})
		}
		s.log.AuthEvent("logout", data.Email, true, "")
	}
	return s.sessions.Destroy(ctx, sessionID)
}

// Validate resolves a bearer session ID for the auth middleware.
func (s *Service) Validate(ctx context.Context, sessionID string) (*httpkit.Session, error) {
	data, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &httpkit.Session{
		ID:     sessionID,
		UserID: data.UserID,
		Email:  data.Email,
		Role:   data.Role,
	}, nil
}

// Compile-time check that Service satisfies the auth middleware contract.
var _ httpkit.SessionValidator = (*Service)(nil)

func (s *Service) openSession(ctx context.Context, user repository.User) (LoginResult, error) {
	sessionID, err := s.sessions.Create(ctx, session.Data{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return LoginResult{}, apperr.Wrap(apperr.KindInternal, "failed to create session", err)
	}

	s.log.AuthEvent("login", user.Email, true, "")
	s.bus.Publish(ctx, events.UserLoggedIn{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
	})

	return LoginResult{
		SessionID: sessionID,
		User: UserView{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
			Name:     user.Name,
			Role:     user.Role,
		},
	}, nil
}
