package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/service/auth"
	"CourseHub/internal/storage/memory"
	"CourseHub/pkg/logger"
)

func newAuthService(t *testing.T) (*auth.AuthService, *memory.CatalogMemory) {
	t.Helper()
	store := memory.NewCatalogMemory()
	manager := auth.NewJWTManager("test-secret", "course-catalog", time.Hour)
	return auth.NewAuthService(logger.NewDiscard(), manager, store), store
}

func TestAuthService_CreateUserAndLogin(t *testing.T) {
	service, _ := newAuthService(t)
	ctx := context.Background()

	created, err := service.CreateUser(ctx, "student@example.com", "pass123", "https://pics.example.com/s.png", false)
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected an assigned user id")
	}
	if created.PasswordHash == "pass123" || created.PasswordHash == "" {
		t.Fatalf("password must be stored as a digest")
	}
	if created.PasswordSalt == "" {
		t.Fatalf("expected a per-user salt")
	}

	user, token, err := service.Login(ctx, "student@example.com", "pass123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a signed token")
	}
	if user.Email != "student@example.com" {
		t.Fatalf("unexpected user returned: %s", user.Email)
	}

	claims, err := service.Claims(token)
	if err != nil {
		t.Fatalf("Claims error: %v", err)
	}
	if claims.UserID != created.ID || claims.Email != created.Email || claims.IsAdmin {
		t.Fatalf("claims do not match the logged-in user: %+v", claims)
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	service, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := service.CreateUser(ctx, "student@example.com", "pass123", "", false); err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"missing email", "", "pass123", app_errors.ErrEmailRequired},
		{"missing password", "student@example.com", "", app_errors.ErrPasswordRequired},
		{"unknown email", "nobody@example.com", "pass123", app_errors.ErrIncorrectPassword},
		{"wrong password", "student@example.com", "wrong", app_errors.ErrIncorrectPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	service, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := service.CreateUser(ctx, "student@example.com", "pass123", "", false); err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	_, err := service.CreateUser(ctx, "student@example.com", "other", "", true)
	if !errors.Is(err, app_errors.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_CreateUserValidation(t *testing.T) {
	service, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := service.CreateUser(ctx, "", "pass123", "", false); !errors.Is(err, app_errors.ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}
	if _, err := service.CreateUser(ctx, "student@example.com", "", "", false); !errors.Is(err, app_errors.ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
}
