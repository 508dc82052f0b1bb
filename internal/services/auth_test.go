package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lvxn0va/legal-ease-ai/internal/config"
	"github.com/lvxn0va/legal-ease-ai/internal/repository"
	"github.com/lvxn0va/legal-ease-ai/internal/types"
)

type fakeUserRepo struct {
	users map[string]*types.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*types.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *types.User) error {
	user.IsActive = true
	user.CreatedAt = time.Now()
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*types.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) CheckUserExists(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *fakeUserRepo) RecordLogin(_ context.Context, id string, at time.Time) error {
	for _, u := range r.users {
		if u.ID == id {
			u.LastLoginAt = &at
		}
	}
	return nil
}

func newTestAuthService(repo repository.UserRepository) *AuthService {
	jwtService := NewJWTService(&config.Config{JWTSecretKey: "test-secret", AccessTokenTTL: time.Hour})
	return NewAuthService(repo, NewHashingService(), jwtService)
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.AccessToken == "" {
		t.Error("Register returned no access token")
	}

	// The stored password must be a hash, never the plaintext.
	stored := repo.users["ada@example.com"]
	if stored.PasswordHash == "correct horse battery" {
		t.Error("password stored in plaintext")
	}

	login, err := svc.Login(ctx, "ada@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.UserID != reg.UserID {
		t.Errorf("login user ID = %q, want %q", login.UserID, reg.UserID)
	}

	claims, err := svc.ValidateToken(login.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != reg.UserID {
		t.Errorf("token user ID = %q, want %q", claims.UserID, reg.UserID)
	}

	if stored.LastLoginAt == nil {
		t.Error("login timestamp not recorded")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "password-one"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(ctx, "Other", "Person", "ada@example.com", "password-two")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("duplicate register error = %v, want already-exists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "right-password"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login(ctx, "ada@example.com", "wrong-password"); err == nil {
		t.Fatal("expected login to fail with the wrong password")
	}
}

func TestLoginUnknownUserHidesExistence(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if err == nil {
		t.Fatal("expected login to fail for an unknown user")
	}
	if !strings.Contains(err.Error(), "invalid email or password") {
		t.Errorf("error = %v, must not reveal whether the account exists", err)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "some-password"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	repo.users["ada@example.com"].IsActive = false

	_, err := svc.Login(ctx, "ada@example.com", "some-password")
	if err == nil || !strings.Contains(err.Error(), "deactivated") {
		t.Fatalf("error = %v, want deactivated", err)
	}
}
