package service

import (
	"context"
	"testing"

	"recruit_portal_backend/internal/settings/repository"
	"recruit_portal_backend/platform/apperr"
)

type fakeRepo struct {
	settings map[string]repository.Setting
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{settings: map[string]repository.Setting{}}
}

func (f *fakeRepo) List(ctx context.Context) ([]repository.Setting, error) {
	out := make([]repository.Setting, 0, len(f.settings))
	for _, s := range f.settings {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepo) Get(ctx context.Context, key string) (repository.Setting, error) {
	if s, ok := f.settings[key]; ok {
		return s, nil
	}
	return repository.Setting{}, apperr.NotFound("setting not found")
}

func (f *fakeRepo) Set(ctx context.Context, key string, value any) (repository.Setting, error) {
	s := repository.Setting{Key: key, Value: value}
	f.settings[key] = s
	return s, nil
}

func TestMockModeDefaultsOffOnFreshInstall(t *testing.T) {
	svc := New(newFakeRepo())

	enabled, err := svc.MockMode(context.Background())
	if err != nil {
		t.Fatalf("MockMode() error: %v", err)
	}
	if enabled {
		t.Fatal("MockMode() = true with no stored setting, want false")
	}
}

func TestMockModeIgnoresNonBooleanValue(t *testing.T) {
	repo := newFakeRepo()
	repo.settings[MockModeKey] = repository.Setting{Key: MockModeKey, Value: "yes"}
	svc := New(repo)

	enabled, err := svc.MockMode(context.Background())
	if err != nil {
		t.Fatalf("MockMode() error: %v", err)
	}
	if enabled {
		t.Fatal("MockMode() = true for a non-boolean value, want false")
	}
}

func TestMockModeRoundTrip(t *testing.T) {
	svc := New(newFakeRepo())
	ctx := context.Background()

	if err := svc.SetMockMode(ctx, true); err != nil {
		t.Fatalf("SetMockMode(true) error: %v", err)
	}
	if enabled, _ := svc.MockMode(ctx); !enabled {
		t.Fatal("MockMode() = false after SetMockMode(true)")
	}

	if err := svc.SetMockMode(ctx, false); err != nil {
		t.Fatalf("SetMockMode(false) error: %v", err)
	}
	if enabled, _ := svc.MockMode(ctx); enabled {
		t.Fatal("MockMode() = true after SetMockMode(false)")
	}
}

func TestSetRejectsEmptyKey(t *testing.T) {
	svc := New(newFakeRepo())

	_, err := svc.Set(context.Background(), "", true)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Set(\"\") error = %v, want validation", err)
	}
}
