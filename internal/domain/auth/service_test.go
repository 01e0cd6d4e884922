package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/photoproof/photoproof-api/internal/domain/studio"
	"github.com/photoproof/photoproof-api/internal/domain/user"
	"github.com/photoproof/photoproof-api/internal/middleware"
	"github.com/photoproof/photoproof-api/internal/pkg/jwt"
)

type userRepoStub struct {
	users []*user.User
}

func (r *userRepoStub) Create(_ context.Context, u *user.User) error {
	r.users = append(r.users, u)
	return nil
}
func (r *userRepoStub) GetByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (r *userRepoStub) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *userRepoStub) ListByStudio(context.Context, string) ([]*user.User, error) {
	return r.users, nil
}

type studioRepoStub struct {
	studios []*studio.Studio
}

func (r *studioRepoStub) Create(_ context.Context, s *studio.Studio) error {
	r.studios = append(r.studios, s)
	return nil
}
func (r *studioRepoStub) GetByID(context.Context, string) (*studio.Studio, error) {
	return nil, nil
}
func (r *studioRepoStub) GetByEmail(context.Context, string) (*studio.Studio, error) {
	return nil, nil
}
func (r *studioRepoStub) List(context.Context, int, int) ([]*studio.Studio, int, error) {
	return nil, 0, nil
}
func (r *studioRepoStub) Update(context.Context, *studio.Studio) error { return nil }

func newTestService(users *userRepoStub) *Service {
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)
	return NewService(users, &studioRepoStub{}, jwtService, nil)
}

func seedUser(email, password string, active bool) *user.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &user.User{
		ID:           "u-1",
		StudioID:     "s-1",
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Test User",
		Role:         middleware.RoleStudioOwner,
		IsActive:     active,
	}
}

func TestRegisterCreatesStudioAndOwner(t *testing.T) {
	users := &userRepoStub{}
	svc := newTestService(users)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		StudioName: "Lumen Studio",
		FullName:   "Ada Example",
		Email:      "ada@example.com",
		Password:   "correct horse",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.User.Role != middleware.RoleStudioOwner {
		t.Fatalf("expected owner role, got %s", resp.User.Role)
	}
	if resp.User.StudioID == "" {
		t.Fatalf("registered user must belong to a studio")
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatalf("expected issued token pair")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &userRepoStub{users: []*user.User{seedUser("ada@example.com", "pw", true)}}
	svc := newTestService(users)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		StudioName: "Another",
		FullName:   "Someone Else",
		Email:      "ada@example.com",
		Password:   "correct horse",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := &userRepoStub{users: []*user.User{seedUser("ada@example.com", "right", true)}}
	svc := newTestService(users)

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(&userRepoStub{})

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "pw"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	users := &userRepoStub{users: []*user.User{seedUser("ada@example.com", "right", false)}}
	svc := newTestService(users)

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "right"})
	if !errors.Is(err, ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestRefreshWithoutStoreIsStateless(t *testing.T) {
	users := &userRepoStub{users: []*user.User{seedUser("ada@example.com", "right", true)}}
	svc := newTestService(users)

	login, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "right"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), &RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.User.ID != "u-1" {
		t.Fatalf("refresh returned wrong user: %s", refreshed.User.ID)
	}
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc := newTestService(&userRepoStub{})

	_, err := svc.Refresh(context.Background(), &RefreshRequest{RefreshToken: "not-a-jwt"})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Fatalf("expected ErrInvalidRefresh, got %v", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	users := &userRepoStub{users: []*user.User{seedUser("ada@example.com", "right", true)}}
	svc := newTestService(users)

	login, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "right"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	_, err = svc.Refresh(context.Background(), &RefreshRequest{RefreshToken: login.Tokens.AccessToken})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Fatalf("expected ErrInvalidRefresh for an access token, got %v", err)
	}
}
