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

type ReviewController struct {
	reviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

func (c *ReviewController) List(ctx echo.Context) error {
	opts := listOptionsFrom(ctx)
	reviews, total, err := c.reviewService.List(ctx.Request().Context(), opts)
	if err != nil {
		logrus.WithError(err).Error("List reviews failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}
	return ctx.JSON(http.StatusOK, httpdto.NewListEnvelope(reviews, len(reviews), opts.Page, opts.Limit, total))
}

func (c *ReviewController) ListByBootcamp(ctx echo.Context) error {
	reviews, err := c.reviewService.ListByBootcamp(ctx.Request().Context(), ctx.Param("bootcampId"))
	if err != nil {
		if errors.Is(err, service.ErrBootcampNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("bootcamp not found"))
		}
		logrus.WithError(err).WithField("bootcamp_id", ctx.Param("bootcampId")).Error("List bootcamp reviews failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	count := len(reviews)
	return ctx.JSON(http.StatusOK, httpdto.Envelope{Success: true, Count: &count, Data: reviews})
}

func (c *ReviewController) Get(ctx echo.Context) error {
	review, err := c.reviewService.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("review not found"))
		}
		logrus.WithError(err).WithField("review_id", ctx.Param("id")).Error("Fetch review failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}
	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(review))
}

func (c *ReviewController) Create(ctx echo.Context) error {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("not authorized to access this route"))
	}

	var req httpdto.CreateReviewRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
	}

	review, err := c.reviewService.Create(ctx.Request().Context(), ident, ctx.Param("bootcampId"), req.ToInput())
	if err != nil {
		if errors.Is(err, service.ErrBootcampNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("bootcamp not found"))
		}
		if errors.Is(err, service.ErrDuplicateReview) {
			logrus.WithFields(logrus.Fields{
				"bootcamp_id": ctx.Param("bootcampId"),
				"user_id":     ident.UserID,
			}).Warn("Create review rejected: already reviewed")
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError("user has already reviewed this bootcamp"))
		}
		if errors.Is(err, service.ErrValidation) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
		}
		logrus.WithError(err).WithField("bootcamp_id", ctx.Param("bootcampId")).Error("Create review failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithFields(logrus.Fields{
		"review_id":   review.ID,
		"bootcamp_id": review.BootcampID,
	}).Info("Review created")
	return ctx.JSON(http.StatusCreated, httpdto.NewEnvelope(review))
}

func (c *ReviewController) Update(ctx echo.Context) error {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("not authorized to access this route"))
	}

	var req httpdto.UpdateReviewRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.NewError("invalid request body"))
	}

	review, err := c.reviewService.Update(ctx.Request().Context(), ident, ctx.Param("id"), req.ToInput())
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("review not found"))
		}
		if errors.Is(err, service.ErrForbidden) {
			return ctx.JSON(http.StatusForbidden, httpdto.NewError("not authorized to update this review"))
		}
		if errors.Is(err, service.ErrValidation) {
			return ctx.JSON(http.StatusBadRequest, httpdto.NewError(err.Error()))
		}
		logrus.WithError(err).WithField("review_id", ctx.Param("id")).Error("Update review failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(review))
}

func (c *ReviewController) Delete(ctx echo.Context) error {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, httpdto.NewError("not authorized to access this route"))
	}

	err := c.reviewService.Delete(ctx.Request().Context(), ident, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.NewError("review not found"))
		}
		if errors.Is(err, service.ErrForbidden) {
			return ctx.JSON(http.StatusForbidden, httpdto.NewError("not authorized to delete this review"))
		}
		logrus.WithError(err).WithField("review_id", ctx.Param("id")).Error("Delete review failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.NewError("internal server error"))
	}

	logrus.WithField("review_id", ctx.Param("id")).Info("Review deleted")
	return ctx.JSON(http.StatusOK, httpdto.NewEnvelope(map[string]interface{}{}))
}
