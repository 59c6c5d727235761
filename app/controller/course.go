package controller

import (
	"errors"
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-bootcamps/app/dto/http"
	"github.com/vibast-solutions/ms-go-bootcamps/app/middleware"
	"github.com/vibast-solutions/ms-go-bootcamps/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type CourseController struct {
	courseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

func (c *CourseController) List(ctx echo.Context) error {
	opts := listOptionsFrom(ctx)
	courses, total, err := c.courseService.List(ctx.Request().Context(), opts)
	if err != nil {
		logrus.WithError(err).Error("List courses failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}
	return ctx.JSON(http.StatusOK, httpdto.NewListEnvelope(courses, len(courses), opts.Page, opts.Limit, total))
}

func (c *CourseController) ListByBootcamp(ctx echo.Context) error {
	courses, err := c.courseService.ListByBootcamp(ctx.Request().Context(), ctx.Param("bootcampId"))
	if err != nil {
		if errors.Is(err, service.ErrBootcampNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("bootcamp not found"))
		}
		logrus.WithError(err).WithField("bootcamp_id", ctx.Param("bootcampId")).Error("List bootcamp courses failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	count := len(courses)
	return ctx.JSON(http.StatusOK, httpdto.Envelope{Success: true, Count: &count, Data: courses})
}

func (c *CourseController) Get(ctx echo.Context) error {
	course, err := c.courseService.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("course not found"))
		}
		logrus.WithError(err).WithField("course_id", ctx.Param("id")).Error("Fetch course failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}
	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(course))
}

func (c *CourseController) Create(ctx echo.Context) error {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("not authorized to access this route"))
	}

	var req httpdto.CreateCourseRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
	}

	course, err := c.courseService.Create(ctx.Request().Context(), ident, ctx.Param("bootcampId"), req.ToInput())
	if err != nil {
		if errors.Is(err, service.ErrBootcampNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("bootcamp not found"))
		}
		if errors.Is(err, service.ErrForbidden) {
			logrus.WithFields(logrus.Fields{
				"bootcamp_id": ctx.Param("bootcampId"),
				"user_id":     ident.UserID,
			}).Warn("Create course rejected: not the bootcamp owner")
			return ctx.JSON(http.StatusForbidden, httpdto.NewError("not authorized to add a course to this bootcamp"))
		}
		if errors.Is(err, service.ErrValidation) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
		}
		logrus.WithError(err).WithField("bootcamp_id", ctx.Param("bootcampId")).Error("Create course failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithFields(logrus.Fields{
		"course_id":   course.ID,
		"bootcamp_id": course.BootcampID,
	}).Info("Course created")
	return ctx.JSON(http.StatusCreated, httpdto.NewEnvelope(course))
}

func (c *CourseController) Update(ctx echo.Context) error {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("not authorized to access this route"))
	}

	var req httpdto.UpdateCourseRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid request body"))
	}

	course, err := c.courseService.Update(ctx.Request().Context(), ident, ctx.Param("id"), req.ToInput())
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("course not found"))
		}
		if errors.Is(err, service.ErrForbidden) {
			return ctx.JSON(http.StatusForbidden, httpdto.NewError("not authorized to update this course"))
		}
		if errors.Is(err, service.ErrValidation) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
		}
		logrus.WithError(err).WithField("course_id", ctx.Param("id")).Error("Update course failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(course))
}

func (c *CourseController) Delete(ctx echo.Context) error {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("not authorized to access this route"))
	}

	err := c.courseService.Delete(ctx.Request().Context(), ident, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("course not found"))
		}
		if errors.Is(err, service.ErrForbidden) {
			return ctx.JSON(http.StatusForbidden, httpdto.NewError("not authorized to delete this course"))
		}
		logrus.WithError(err).WithField("course_id", ctx.Param("id")).Error("Delete course failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithField("course_id", ctx.Param("id")).Info("Course deleted")
	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(map[string]interface{}{}))
}
