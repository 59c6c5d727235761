package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	httpdto "github.com/vibast-solutions/ms-go-bootcamps/app/dto/http"
	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"
	"github.com/vibast-solutions/ms-go-bootcamps/app/middleware"
	"github.com/vibast-solutions/ms-go-bootcamps/app/service"
	"github.com/vibast-solutions/ms-go-bootcamps/config"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthController(authService *service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{authService: authService, cfg: cfg}
}

func (c *AuthController) Register(ctx echo.Context) error {
	var req httpdto.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind register request")
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
	}

	result, err := c.authService.Register(ctx.Request().Context(), req.Name, req.Email, req.Password, entity.Role(req.Role))
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			logrus.WithField("email", req.Email).Warn("Register failed: email taken")
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError("email already registered"))
		}
		if errors.Is(err, service.ErrInvalidRole) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError("role must be user or publisher"))
		}
		if errors.Is(err, service.ErrWeakPassword) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Register failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithFields(logrus.Fields{
		"user_id": result.User.ID,
		"role":    result.User.Role,
	}).Info("User registered")
	return c.sendTokenResponse(ctx, http.StatusCreated, result.Token)
}

func (c *AuthController) Login(ctx echo.Context) error {
	var req httpdto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind login request")
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
	}

	result, err := c.authService.Login(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logrus.WithField("email", req.Email).Warn("Login failed: invalid credentials")
			return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("invalid credentials"))
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Login failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithField("user_id", result.User.ID).Info("Login successful")
	return c.sendTokenResponse(ctx, http.StatusOK, result.Token)
}

// Logout clears the session cookie; the token itself simply expires.
func (c *AuthController) Logout(ctx echo.Context) error {
	ctx.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "none",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Path:     "/",
	})
	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(map[string]interface{}{}))
}

func (c *AuthController) Me(ctx echo.Context) error {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("not authorized to access this route"))
	}

	user, err := c.authService.Me(ctx.Request().Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("user not found"))
		}
		logrus.WithError(err).WithField("user_id", ident.UserID).Error("Fetch current user failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(user))
}

func (c *AuthController) UpdateDetails(ctx echo.Context) error {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("not authorized to access this route"))
	}

	var req httpdto.UpdateDetailsRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
	}

	user, err := c.authService.UpdateDetails(ctx.Request().Context(), ident.UserID, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("user not found"))
		}
		if errors.Is(err, service.ErrEmailTaken) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError("email already registered"))
		}
		logrus.WithError(err).WithField("user_id", ident.UserID).Error("Update details failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithField("user_id", user.ID).Info("User details updated")
	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(user))
}

func (c *AuthController) UpdatePassword(ctx echo.Context) error {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("not authorized to access this route"))
	}

	var req httpdto.UpdatePasswordRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
	}

	result, err := c.authService.UpdatePassword(ctx.Request().Context(), ident.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("user not found"))
		}
		if errors.Is(err, service.ErrIncorrectPassword) {
			logrus.WithField("user_id", ident.UserID).Warn("Update password failed: current password mismatch")
			return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("current password is incorrect"))
		}
		if errors.Is(err, service.ErrWeakPassword) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
		}
		logrus.WithError(err).WithField("user_id", ident.UserID).Error("Update password failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithField("user_id", ident.UserID).Info("Password updated")
	return c.sendTokenResponse(ctx, http.StatusOK, result.Token)
}

func (c *AuthController) ForgotPassword(ctx echo.Context) error {
	var req httpdto.ForgotPasswordRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
	}

	resetBase := fmt.Sprintf("%s://%s", ctx.Scheme(), ctx.Request().Host)
	err := c.authService.ForgotPassword(ctx.Request().Context(), req.Email, resetBase)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("there is no user with that email"))
		}
		if errors.Is(err, service.ErrMailDelivery) {
			logrus.WithError(err).WithField("email", req.Email).Error("Reset email delivery failed")
			return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("email could not be sent"))
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Forgot password failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithField("email", req.Email).Info("Password reset email sent")
	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope("email sent"))
}

func (c *AuthController) ResetPassword(ctx echo.Context) error {
	var req httpdto.ResetPasswordRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
	}

	result, err := c.authService.ResetPassword(ctx.Request().Context(), ctx.Param("resettoken"), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			logrus.Warn("Reset password failed: invalid or expired token")
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid or expired reset token"))
		}
		if errors.Is(err, service.ErrWeakPassword) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
		}
		logrus.WithError(err).Error("Reset password failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithField("user_id", result.User.ID).Info("Password reset")
	return c.sendTokenResponse(ctx, http.StatusOK, result.Token)
}

// sendTokenResponse sets the session cookie and returns the token envelope.
func (c *AuthController) sendTokenResponse(ctx echo.Context, status int, token string) error {
	ctx.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Expires:  time.Now().Add(c.cfg.CookieTTL),
		HttpOnly: true,
		Secure:   c.cfg.CookieSecure,
		Path:     "/",
	})
	return ctx.JSON(status, httpdto.NewTokenEnvelope(token))
}
