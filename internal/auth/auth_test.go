package auth

import (
	"context"
	"testing"

	"github.com/ucampus/campus-events-api/internal/config"
	"github.com/ucampus/campus-events-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuth(t *testing.T) (*AuthHandler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.User{}, &models.APIKey{})

	cfg := &config.Config{JWTSecret: "test-secret"}
	return NewAuthHandler(cfg, db), db
}

func TestAuthorizeWithCookie(t *testing.T) {
	handler, db := setupAuth(t)

	user := models.User{Username: "ana", Email: "ana@example.edu"}
	db.Create(&user)

	token, err := handler.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	userID, err := handler.Authorize(context.Background(), "auth_token="+token)
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if userID != user.ID {
		t.Errorf("expected user ID %d, got %d", user.ID, userID)
	}
}

func TestAuthorizeRejectsGarbage(t *testing.T) {
	handler, _ := setupAuth(t)

	if _, err := handler.Authorize(context.Background(), ""); err == nil {
		t.Fatal("expected error for missing cookie, got nil")
	}
	if _, err := handler.Authorize(context.Background(), "auth_token=not-a-jwt"); err == nil {
		t.Fatal("expected error for invalid token, got nil")
	}
}

func TestAuthorizePrefersContext(t *testing.T) {
	handler, _ := setupAuth(t)

	// The API-key middleware resolves the user before huma runs.
	ctx := context.WithValue(context.Background(), UserIDKey, uint(42))
	userID, err := handler.Authorize(ctx, "")
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user ID 42, got %d", userID)
	}
}

func TestHandleLogoutClearsCookie(t *testing.T) {
	handler, _ := setupAuth(t)

	resp, err := handler.HandleLogout(context.Background(), &LogoutRequest{})
	if err != nil {
		t.Fatalf("HandleLogout returned error: %v", err)
	}
	if resp.SetCookie == "" {
		t.Fatal("expected an expiring Set-Cookie header")
	}
}

func TestHandleLoginPassword(t *testing.T) {
	handler, db := setupAuth(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	user := models.User{
		Username:     "root",
		Email:        "root@example.edu",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	db.Create(&user)

	t.Run("Valid", func(t *testing.T) {
		req := &LoginRequest{}
		req.Body.Email = "root@example.edu"
		req.Body.Password = "hunter2"
		resp, err := handler.HandleLogin(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleLogin returned error: %v", err)
		}
		if resp.SetCookie == "" {
			t.Error("expected a session cookie to be set")
		}
		if resp.Body.Role != models.RoleAdmin {
			t.Errorf("expected admin role, got %s", resp.Body.Role)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		req := &LoginRequest{}
		req.Body.Email = "root@example.edu"
		req.Body.Password = "wrong"
		if _, err := handler.HandleLogin(context.Background(), req); err == nil {
			t.Fatal("expected error for wrong password, got nil")
		}
	})

	t.Run("NoPasswordSet", func(t *testing.T) {
		ssoOnly := models.User{Username: "ana", Email: "ana@example.edu", SSOID: "sso-1"}
		db.Create(&ssoOnly)
		req := &LoginRequest{}
		req.Body.Email = "ana@example.edu"
		req.Body.Password = ""
		if _, err := handler.HandleLogin(context.Background(), req); err == nil {
			t.Fatal("expected error for SSO-only account, got nil")
		}
	})
}
