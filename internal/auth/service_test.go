package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"wisata/internal/shared/config"
	"wisata/internal/users"
)

type fakeUserRepo struct {
	byID map[string]*users.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*users.User)}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *users.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	copied := *user
	r.byID[user.ID.String()] = &copied
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	for _, user := range r.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	user, ok := r.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		Name:     "Budi Santoso",
		Email:    "budi@example.com",
		Phone:    "081234567890",
		Password: "rahasia-kuat",
	}
}

func TestRegisterCreatesRegularAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.User.Role != string(users.RoleUser) {
		t.Fatalf("registered role = %s, want USER", resp.User.Role)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("registration must issue a token pair")
	}

	stored, err := repo.GetUserByEmail(ctx, "budi@example.com")
	if err != nil {
		t.Fatalf("user was not persisted: %v", err)
	}
	if stored.Password == "rahasia-kuat" {
		t.Fatalf("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("rahasia-kuat")); err != nil {
		t.Fatalf("stored hash does not match the password: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest()); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	_, err := svc.Register(ctx, registerRequest())
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest()); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, err := svc.Login(ctx, &LoginRequest{Email: "budi@example.com", Password: "salah"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "salah"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must also map to ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateTokenCarriesIdentity(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	claims, err := svc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.Type != "access" {
		t.Fatalf("access token claims type = %s", claims.Type)
	}
	if claims.Email != "budi@example.com" || claims.Role != string(users.RoleUser) {
		t.Fatalf("claims do not carry the identity: %+v", claims)
	}
	if claims.UserID != resp.User.ID {
		t.Fatalf("claims user id = %s, want %s", claims.UserID, resp.User.ID)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, err := svc.RefreshToken(ctx, resp.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token must not refresh, got %v", err)
	}

	pair, err := svc.RefreshToken(ctx, resp.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token should work, got %v", err)
	}
	if pair.AccessToken == "" {
		t.Fatalf("refresh did not issue a new access token")
	}
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	userID := resp.User.ID

	err = svc.ChangePassword(ctx, userID, &ChangePasswordRequest{
		CurrentPassword: "salah",
		NewPassword:     "kata-sandi-baru",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong current password must be rejected, got %v", err)
	}

	err = svc.ChangePassword(ctx, userID, &ChangePasswordRequest{
		CurrentPassword: "rahasia-kuat",
		NewPassword:     "kata-sandi-baru",
	})
	if err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}

	if _, err := svc.Login(ctx, &LoginRequest{Email: "budi@example.com", Password: "kata-sandi-baru"}); err != nil {
		t.Fatalf("login with the new password failed: %v", err)
	}
}
