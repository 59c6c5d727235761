package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"
	"github.com/vibast-solutions/ms-go-bootcamps/app/service"
)

func newAuthService(t *testing.T) (*service.AuthService, *memUserStore, *fakeMailer, *service.TokenService) {
	t.Helper()

	cfg := testConfig()
	users := newMemUserStore()
	mailer := &fakeMailer{}
	tokens := service.NewTokenService(cfg)
	return service.NewAuthService(users, tokens, mailer, cfg), users, mailer, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	authService, _, _, tokens := newAuthService(t)
	ctx := context.Background()

	result, err := authService.Register(ctx, "John Doe", "john@example.com", "password123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.User.Role != entity.RoleUser {
		t.Fatalf("expected default role user, got %s", result.User.Role)
	}
	if result.User.PasswordHash == "password123" {
		t.Fatal("password stored in plaintext")
	}

	claims, err := tokens.Validate(result.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != result.User.ID {
		t.Fatalf("expected token subject %s, got %s", result.User.ID, claims.UserID)
	}

	loginResult, err := authService.Login(ctx, "john@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loginResult.User.ID != result.User.ID {
		t.Fatalf("expected user %s, got %s", result.User.ID, loginResult.User.ID)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	authService, _, _, _ := newAuthService(t)

	_, err := authService.Register(context.Background(), "Mallory", "mallory@example.com", "password123", entity.RoleAdmin)
	if !errors.Is(err, service.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	authService, _, _, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := authService.Register(ctx, "John", "john@example.com", "password123", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, err := authService.Register(ctx, "Jane", "john@example.com", "password456", "")
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	authService, _, _, _ := newAuthService(t)

	_, err := authService.Register(context.Background(), "John", "john@example.com", "abc", "")
	if !errors.Is(err, service.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestLoginFailsUniformly(t *testing.T) {
	authService, _, _, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := authService.Register(ctx, "John", "john@example.com", "password123", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, unknownErr := authService.Login(ctx, "nobody@example.com", "password123")
	_, wrongErr := authService.Login(ctx, "john@example.com", "wrong-password")

	if !errors.Is(unknownErr, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
	}
}

func TestUpdateDetailsEmailTaken(t *testing.T) {
	authService, _, _, _ := newAuthService(t)
	ctx := context.Background()

	first, err := authService.Register(ctx, "John", "john@example.com", "password123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := authService.Register(ctx, "Jane", "jane@example.com", "password123", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err = authService.UpdateDetails(ctx, first.User.ID, "", "jane@example.com")
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	authService, _, _, _ := newAuthService(t)
	ctx := context.Background()

	result, err := authService.Register(ctx, "John", "john@example.com", "password123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := authService.UpdatePassword(ctx, result.User.ID, "wrong", "newpassword"); !errors.Is(err, service.ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}

	updated, err := authService.UpdatePassword(ctx, result.User.ID, "password123", "newpassword")
	if err != nil {
		t.Fatalf("update password failed: %v", err)
	}
	if updated.Token == "" {
		t.Fatal("expected a fresh token after password change")
	}

	if _, err := authService.Login(ctx, "john@example.com", "password123"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := authService.Login(ctx, "john@example.com", "newpassword"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	authService, _, mailer, _ := newAuthService(t)

	err := authService.ForgotPassword(context.Background(), "nobody@example.com", "http://localhost:8080")
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(mailer.sentTo) != 0 {
		t.Fatalf("expected no mail, sent to %v", mailer.sentTo)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	authService, users, mailer, _ := newAuthService(t)
	ctx := context.Background()

	result, err := authService.Register(ctx, "John", "john@example.com", "password123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := authService.ForgotPassword(ctx, "john@example.com", "http://localhost:8080"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	if len(mailer.sentTo) != 1 || mailer.sentTo[0] != "john@example.com" {
		t.Fatalf("expected one mail to john@example.com, got %v", mailer.sentTo)
	}

	rawToken := resetTokenFromMail(t, mailer.lastBody)
	if users.users[result.User.ID].ResetTokenHash != service.HashResetSecret(rawToken) {
		t.Fatal("stored hash does not match mailed token")
	}

	resetResult, err := authService.ResetPassword(ctx, rawToken, "brandnewpass")
	if err != nil {
		t.Fatalf("reset password failed: %v", err)
	}
	if resetResult.Token == "" {
		t.Fatal("expected a session token after reset")
	}

	if _, err := authService.Login(ctx, "john@example.com", "brandnewpass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	// the token is single use
	if _, err := authService.ResetPassword(ctx, rawToken, "anotherpass1"); !errors.Is(err, service.ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken on reuse, got %v", err)
	}
}

func TestForgotPasswordMailFailureRollsBack(t *testing.T) {
	authService, users, mailer, _ := newAuthService(t)
	ctx := context.Background()

	result, err := authService.Register(ctx, "John", "john@example.com", "password123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	mailer.fail = true
	err = authService.ForgotPassword(ctx, "john@example.com", "http://localhost:8080")
	if !errors.Is(err, service.ErrMailDelivery) {
		t.Fatalf("expected ErrMailDelivery, got %v", err)
	}

	stored := users.users[result.User.ID]
	if stored.ResetTokenHash != "" || stored.ResetTokenExpiresAt != nil {
		t.Fatal("reset token not rolled back after mail failure")
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	authService, users, _, _ := newAuthService(t)
	ctx := context.Background()

	result, err := authService.Register(ctx, "John", "john@example.com", "password123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	raw, hash, err := service.NewResetSecret()
	if err != nil {
		t.Fatalf("new reset secret: %v", err)
	}
	expired := time.Now().Add(-time.Minute)
	stored := users.users[result.User.ID]
	stored.ResetTokenHash = hash
	stored.ResetTokenExpiresAt = &expired

	if _, err := authService.ResetPassword(ctx, raw, "brandnewpass"); !errors.Is(err, service.ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken for expired token, got %v", err)
	}
}

func resetTokenFromMail(t *testing.T, body string) string {
	t.Helper()

	idx := strings.LastIndex(body, "/")
	if idx < 0 {
		t.Fatalf("no reset URL in mail body: %q", body)
	}
	return body[idx+1:]
}
