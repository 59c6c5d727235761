package controller

import (
	"errors"
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-bootcamps/app/dto/http"
	"github.com/vibast-solutions/ms-go-bootcamps/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// UserController serves the admin-only user management routes.
type UserController struct {
	userService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

func (c *UserController) List(ctx echo.Context) error {
	opts := listOptionsFrom(ctx)
	users, total, err := c.userService.List(ctx.Request().Context(), opts)
	if err != nil {
		logrus.WithError(err).Error("List users failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}
	return ctx.JSON(http.StatusOK, httpdto.NewListEnvelope(users, len(users), opts.Page, opts.Limit, total))
}

func (c *UserController) Get(ctx echo.Context) error {
	user, err := c.userService.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("user not found"))
		}
		logrus.WithError(err).WithField("user_id", ctx.Param("id")).Error("Fetch user failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}
	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(user))
}

func (c *UserController) Create(ctx echo.Context) error {
	var req httpdto.CreateUserRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
	}

	user, err := c.userService.Create(ctx.Request().Context(), req.ToInput())
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError("email already registered"))
		}
		if errors.Is(err, service.ErrValidation) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
		}
		if errors.Is(err, service.ErrWeakPassword) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Create user failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User created by admin")
	return ctx.JSON(http.StatusCreated, httpdto.NewEnvelope(user))
}

func (c *UserController) Update(ctx echo.Context) error {
	var req httpdto.UpdateUserRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid request body"))
	}

	user, err := c.userService.Update(ctx.Request().Context(), ctx.Param("id"), req.ToInput())
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("user not found"))
		}
		if errors.Is(err, service.ErrEmailTaken) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError("email already registered"))
		}
		if errors.Is(err, service.ErrValidation) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
		}
		logrus.WithError(err).WithField("user_id", ctx.Param("id")).Error("Update user failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(user))
}

func (c *UserController) Delete(ctx echo.Context) error {
	err := c.userService.Delete(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("user not found"))
		}
		logrus.WithError(err).WithField("user_id", ctx.Param("id")).Error("Delete user failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithField("user_id", ctx.Param("id")).Info("User deleted by admin")
	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(map[string]interface{}{}))
}
