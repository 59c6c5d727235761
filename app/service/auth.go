package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-bootcamps/app/dto"
	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"
	"github.com/vibast-solutions/ms-go-bootcamps/config"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidRole        = errors.New("role must be user or publisher")
	ErrWeakPassword       = errors.New("password does not meet policy requirements")
	ErrMailDelivery       = errors.New("could not deliver email")
)

// UserStore is the credential store port.
type UserStore interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetResetToken(ctx context.Context, id, hash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id string) error
	ResetPassword(ctx context.Context, id, passwordHash string) error
}

// Mailer is the notification port used by the password-reset flow.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type AuthService struct {
	users  UserStore
	tokens *TokenService
	mailer Mailer
	cfg    *config.Config
}

func NewAuthService(users UserStore, tokens *TokenService, mailer Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		cfg:    cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string, role entity.Role) (*dto.AuthResult, error) {
	if role == "" {
		role = entity.RoleUser
	}
	// admin accounts are provisioned out of band, never self-registered
	if role != entity.RoleUser && role != entity.RolePublisher {
		return nil, ErrInvalidRole
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if err := s.cfg.PasswordPolicy.Validate(password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.tokenResult(user)
}

// Login fails identically for an unknown email and a wrong password so the
// response carries no account-existence signal.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.tokenResult(user)
}

func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) UpdateDetails(ctx context.Context, userID, name, email string) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if email != "" && email != user.Email {
		existing, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailTaken
		}
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword requires the current password to match before accepting the
// new one, and re-issues a session token on success.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*dto.AuthResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return nil, ErrIncorrectPassword
	}

	if err := s.cfg.PasswordPolicy.Validate(newPassword); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return nil, err
	}
	user.PasswordHash = string(hashedPassword)

	return s.tokenResult(user)
}

// ForgotPassword persists the hash of a fresh reset secret and mails the raw
// secret. A failed delivery rolls the stored hash back so no dangling reset
// path survives it.
func (s *AuthService) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	raw, hash, err := NewResetSecret()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.cfg.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, hash, expiresAt); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/api/v1/auth/resetpassword/%s", resetURLBase, raw)
	body := fmt.Sprintf(
		"You are receiving this email because you (or someone else) requested a password reset. Please make a PUT request to:\n\n%s",
		resetURL,
	)

	if err := s.mailer.Send(ctx, user.Email, "Password reset token", body); err != nil {
		if clearErr := s.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			return fmt.Errorf("%w: rollback failed: %s", ErrMailDelivery, clearErr.Error())
		}
		return fmt.Errorf("%w: %s", ErrMailDelivery, err.Error())
	}

	return nil
}

// ResetPassword consumes a raw reset token: the stored hash must match and be
// unexpired. The password update and the token clear are one document write.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) (*dto.AuthResult, error) {
	user, err := s.users.FindByResetTokenHash(ctx, HashResetSecret(rawToken), time.Now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidResetToken
	}

	if err := s.cfg.PasswordPolicy.Validate(newPassword); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if err := s.users.ResetPassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return nil, err
	}
	user.PasswordHash = string(hashedPassword)
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil

	return s.tokenResult(user)
}

func (s *AuthService) tokenResult(user *entity.User) (*dto.AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResult{Token: token, User: user}, nil
}
