package services_test

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/configdb/internal/config"
	"github.com/localnerve/configdb/internal/services"
	"github.com/localnerve/configdb/internal/store"
	"github.com/localnerve/configdb/internal/testhelpers"
	"github.com/localnerve/configdb/internal/types"
)

func newAuthFixture(t *testing.T) *services.AuthService {
	db := testhelpers.OpenTestDB(t)
	st := store.New(db)
	cfg := &config.Config{
		JWTSecret:       "test-secret-do-not-use",
		JWTIssuer:       "configdb-test",
		TokenTTLMinutes: 30,
	}
	return services.NewAuthService(st, cfg)
}

func statusOf(err error) int {
	var apiErr *types.ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthFixture(t)

	user, err := auth.Register("tester@example.com", "s3cret-pass", "")
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	if user.Role != "standard" {
		t.Errorf("Expected default role 'standard', got %q", user.Role)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Error("Expected password to be hashed")
	}

	token, loggedIn, err := auth.Login("tester@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Failed to login: %v", err)
	}
	if token == "" {
		t.Fatal("Expected a signed token")
	}
	if loggedIn.UserID != user.UserID {
		t.Errorf("Expected login to return the registered user")
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.UserID != user.UserID || claims.Email != user.Email || claims.Role != user.Role {
		t.Errorf("Expected claims to carry user identity, got %+v", claims)
	}
}

func TestRegisterValidation(t *testing.T) {
	auth := newAuthFixture(t)

	if _, err := auth.Register("", "s3cret-pass", ""); statusOf(err) != fiber.StatusBadRequest {
		t.Errorf("Expected BadRequest for missing email, got %v", err)
	}
	if _, err := auth.Register("tester@example.com", "short", ""); statusOf(err) != fiber.StatusBadRequest {
		t.Errorf("Expected BadRequest for short password, got %v", err)
	}
	if _, err := auth.Register("tester@example.com", "s3cret-pass", "superuser"); statusOf(err) != fiber.StatusBadRequest {
		t.Errorf("Expected BadRequest for unknown role, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newAuthFixture(t)

	if _, err := auth.Register("tester@example.com", "s3cret-pass", ""); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	_, err := auth.Register("tester@example.com", "other-pass1", "admin")
	if !types.IsConflict(err) {
		t.Errorf("Expected Conflict for duplicate email, got %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	auth := newAuthFixture(t)

	if _, err := auth.Register("tester@example.com", "s3cret-pass", ""); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	if _, _, err := auth.Login("tester@example.com", "wrong-pass"); statusOf(err) != fiber.StatusUnauthorized {
		t.Errorf("Expected Unauthorized for wrong password, got %v", err)
	}
	if _, _, err := auth.Login("nobody@example.com", "s3cret-pass"); statusOf(err) != fiber.StatusUnauthorized {
		t.Errorf("Expected Unauthorized for unknown email, got %v", err)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	auth := newAuthFixture(t)

	user, err := auth.Register("tester@example.com", "s3cret-pass", "admin")
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	token, err := auth.GenerateToken(user)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := auth.ValidateToken(token + "x"); err == nil {
		t.Error("Expected tampered token to be rejected")
	}
	if _, err := auth.ValidateToken("not-a-token"); err == nil {
		t.Error("Expected garbage token to be rejected")
	}
}
