package controller

import (
	"errors"
	"net/http"
	"strconv"

	httpdto "github.com/vibast-solutions/ms-go-bootcamps/app/dto/http"
	"github.com/vibast-solutions/ms-go-bootcamps/app/middleware"
	"github.com/vibast-solutions/ms-go-bootcamps/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type BootcampController struct {
	bootcampService *service.BootcampService
}

func NewBootcampController(bootcampService *service.BootcampService) *BootcampController {
	return &BootcampController{bootcampService: bootcampService}
}

func (c *BootcampController) List(ctx echo.Context) error {
	opts := listOptionsFrom(ctx)
	bootcamps, total, err := c.bootcampService.List(ctx.Request().Context(), opts)
	if err != nil {
		logrus.WithError(err).Error("List bootcamps failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}
	return ctx.JSON(http.StatusOK, httpdto.NewListEnvelope(bootcamps, len(bootcamps), opts.Page, opts.Limit, total))
}

func (c *BootcampController) Get(ctx echo.Context) error {
	bootcamp, err := c.bootcampService.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrBootcampNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("bootcamp not found"))
		}
		logrus.WithError(err).WithField("bootcamp_id", ctx.Param("id")).Error("Fetch bootcamp failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}
	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(bootcamp))
}

func (c *BootcampController) Create(ctx echo.Context) error {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("not authorized to access this route"))
	}

	var req httpdto.CreateBootcampRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
	}

	bootcamp, err := c.bootcampService.Create(ctx.Request().Context(), ident, req.ToInput())
	if err != nil {
		if errors.Is(err, service.ErrDuplicateBootcamp) {
			logrus.WithField("user_id", ident.UserID).Warn("Create bootcamp rejected: owner already has one")
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError("user has already published a bootcamp"))
		}
		if errors.Is(err, service.ErrValidation) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
		}
		logrus.WithError(err).WithField("user_id", ident.UserID).Error("Create bootcamp failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithFields(logrus.Fields{
		"bootcamp_id": bootcamp.ID,
		"user_id":     ident.UserID,
	}).Info("Bootcamp created")
	return ctx.JSON(http.StatusCreated, httpdto.NewEnvelope(bootcamp))
}

func (c *BootcampController) Update(ctx echo.Context) error {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("not authorized to access this route"))
	}

	var req httpdto.UpdateBootcampRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid request body"))
	}

	bootcamp, err := c.bootcampService.Update(ctx.Request().Context(), ident, ctx.Param("id"), req.ToInput())
	if err != nil {
		if errors.Is(err, service.ErrBootcampNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("bootcamp not found"))
		}
		if errors.Is(err, service.ErrForbidden) {
			logrus.WithFields(logrus.Fields{
				"bootcamp_id": ctx.Param("id"),
				"user_id":     ident.UserID,
			}).Warn("Update bootcamp rejected: not the owner")
			return ctx.JSON(http.StatusForbidden, httpdto.NewError("not authorized to update this bootcamp"))
		}
		if errors.Is(err, service.ErrValidation) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
		}
		logrus.WithError(err).WithField("bootcamp_id", ctx.Param("id")).Error("Update bootcamp failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(bootcamp))
}

func (c *BootcampController) Delete(ctx echo.Context) error {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("not authorized to access this route"))
	}

	err := c.bootcampService.Delete(ctx.Request().Context(), ident, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrBootcampNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("bootcamp not found"))
		}
		if errors.Is(err, service.ErrForbidden) {
			return ctx.JSON(http.StatusForbidden, httpdto.NewError("not authorized to delete this bootcamp"))
		}
		logrus.WithError(err).WithField("bootcamp_id", ctx.Param("id")).Error("Delete bootcamp failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithFields(logrus.Fields{
		"bootcamp_id": ctx.Param("id"),
		"user_id":     ident.UserID,
	}).Info("Bootcamp deleted")
	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(map[string]interface{}{}))
}

func (c *BootcampController) InRadius(ctx echo.Context) error {
	distance, err := strconv.ParseFloat(ctx.Param("distance"), 64)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("distance must be a number"))
	}

	bootcamps, err := c.bootcampService.InRadius(ctx.Request().Context(), ctx.Param("zipcode"), distance)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
		}
		logrus.WithError(err).WithField("zipcode", ctx.Param("zipcode")).Error("Radius search failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	count := len(bootcamps)
	return ctx.JSON(http.StatusOK, httpdto.Envelope{Success: true, Count: &count, Data: bootcamps})
}

func (c *BootcampController) UploadPhoto(ctx echo.Context) error {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("not authorized to access this route"))
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("please upload a file"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("Open uploaded file failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}
	defer src.Close()

	photo, err := c.bootcampService.UploadPhoto(
		ctx.Request().Context(),
		ident,
		ctx.Param("id"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		src,
	)
	if err != nil {
		if errors.Is(err, service.ErrBootcampNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("bootcamp not found"))
		}
		if errors.Is(err, service.ErrForbidden) {
			return ctx.JSON(http.StatusForbidden, httpdto.NewError("not authorized to update this bootcamp"))
		}
		if errors.Is(err, service.ErrNotAnImage) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError("please upload an image file"))
		}
		if errors.Is(err, service.ErrFileTooLarge) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
		}
		logrus.WithError(err).WithField("bootcamp_id", ctx.Param("id")).Error("Photo upload failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithFields(logrus.Fields{
		"bootcamp_id": ctx.Param("id"),
		"photo":       photo,
	}).Info("Bootcamp photo uploaded")
	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(photo))
}
