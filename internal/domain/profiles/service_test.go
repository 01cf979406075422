package profiles

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRepo struct {
	byUserID map[string]Profile
}

func newTestRepo() *testRepo {
	return &testRepo{byUserID: make(map[string]Profile)}
}

func (r *testRepo) Upsert(_ context.Context, p Profile) error {
	r.byUserID[p.UserID] = p
	return nil
}

func (r *testRepo) GetByUserID(_ context.Context, userID string) (Profile, error) {
	p, ok := r.byUserID[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func TestService_Save_Upserts(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }

	p, err := svc.Save(context.Background(), "user-1", SaveInput{
		DisplayName: "Ana",
		Email:       "ana@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DisplayName != "Ana" || p.Email != "ana@example.com" {
		t.Fatalf("unexpected profile: %+v", p)
	}

	// Segunda escritura gana.
	p2, err := svc.Save(context.Background(), "user-1", SaveInput{
		DisplayName: "Ana María",
		Email:       "ana@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DisplayName != p2.DisplayName {
		t.Fatalf("expected last write to win, got %+v", got)
	}
}

func TestService_Save_DefaultsDisplayName(t *testing.T) {
	svc := NewService(newTestRepo())

	p, err := svc.Save(context.Background(), "user-1", SaveInput{Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DisplayName != "User" {
		t.Fatalf("expected default display name, got %q", p.DisplayName)
	}
}

func TestService_Save_RequiresEmail(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Save(context.Background(), "user-1", SaveInput{DisplayName: "Ana"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Get_Missing(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
