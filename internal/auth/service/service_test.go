package service

import (
	"context"
	"testing"
	"time"

	"recruit_portal_backend/internal/auth/password"
	"recruit_portal_backend/internal/auth/repository"
	"recruit_portal_backend/internal/auth/session"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/platform/apperr"
	"recruit_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	users map[string]repository.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (repository.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func (f *fakeUserRepo) Create(ctx context.Context, params repository.CreateParams) (repository.User, error) {
	u := repository.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		Name:         params.Name,
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
		IsActive:     true,
	}
	f.users[params.Email] = u
	return u, nil
}

func newTestService(t *testing.T, users map[string]repository.User) *Service {
	t.Helper()
	if users == nil {
		users = make(map[string]repository.User)
	}
	log := logger.New("development")
	return New(
		&fakeUserRepo{users: users},
		session.NewMemoryStore(time.Hour),
		events.NewInMemoryBus(log),
		log,
	)
}

func seededUser(t *testing.T, email, plain, role string) repository.User {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	return repository.User{
		ID:           uuid.New(),
		Username:     "recruiter",
		Email:        email,
		Name:         "Recruiter",
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	user := seededUser(t, "recruiter@kaizen.com", "password123", "recruiter")
	svc := newTestService(t, map[string]repository.User{user.Email: user})
	ctx := context.Background()

	result, err := svc.Login(ctx, "recruiter@kaizen.com", "password123")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if result.SessionID == "" {
		t.Fatal("Login() returned empty session id")
	}
	if result.User.Email != user.Email || result.User.Role != "recruiter" {
		t.Fatalf("Login() user = %+v", result.User)
	}

	resolved, err := svc.Validate(ctx, result.SessionID)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if resolved.UserID != user.ID.String() {
		t.Fatalf("Validate() user id = %q, want %q", resolved.UserID, user.ID)
	}
}

func TestLoginBadPassword(t *testing.T) {
	user := seededUser(t, "recruiter@kaizen.com", "password123", "recruiter")
	svc := newTestService(t, map[string]repository.User{user.Email: user})

	_, err := svc.Login(context.Background(), "recruiter@kaizen.com", "wrong")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("Login() error = %v, want unauthorized", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Login(context.Background(), "nobody@kaizen.com", "password123")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("Login() error = %v, want unauthorized", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	user := seededUser(t, "recruiter@kaizen.com", "password123", "recruiter")
	user.IsActive = false
	svc := newTestService(t, map[string]repository.User{user.Email: user})

	_, err := svc.Login(context.Background(), "recruiter@kaizen.com", "password123")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("Login() error = %v, want unauthorized", err)
	}
}

func TestDemoLoginProvisionsUser(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	result, err := svc.DemoLogin(ctx)
	if err != nil {
		t.Fatalf("DemoLogin() error: %v", err)
	}
	if result.User.Email != "recruiter@kaizen.com" {
		t.Fatalf("DemoLogin() email = %q", result.User.Email)
	}

	// Subsequent demo logins reuse the provisioned account.
	again, err := svc.DemoLogin(ctx)
	if err != nil {
		t.Fatalf("DemoLogin() second call error: %v", err)
	}
	if again.User.ID != result.User.ID {
		t.Fatalf("DemoLogin() provisioned a second account: %q vs %q", again.User.ID, result.User.ID)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	user := seededUser(t, "recruiter@kaizen.com", "password123", "recruiter")
	svc := newTestService(t, map[string]repository.User{user.Email: user})
	ctx := context.Background()

	result, err := svc.Login(ctx, "recruiter@kaizen.com", "password123")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	if err := svc.Logout(ctx, result.SessionID); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}

	if _, err := svc.Validate(ctx, result.SessionID); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("Validate() after logout error = %v, want unauthorized", err)
	}
}
