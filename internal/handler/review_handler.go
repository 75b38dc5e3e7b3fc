package handler

import (
	"net/http"

	"github.com/Eursukkul/hbnb-service/internal/dto"
	"github.com/Eursukkul/hbnb-service/internal/middleware"
	"github.com/Eursukkul/hbnb-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) RegisterRoutes(api *echo.Group, authn echo.MiddlewareFunc) {
	api.GET("/places/:id/reviews", h.ListReviews)
	api.POST("/places/:id/reviews", h.CreateReview, authn)
	api.PUT("/reviews/:id", h.UpdateReview, authn)
	api.DELETE("/reviews/:id", h.DeleteReview, authn)
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	reviews, err := h.svc.ListReviews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReviewResponses(reviews))
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req dto.ReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.svc.CreateReview(c.Request().Context(), c.Param("id"), middleware.UserID(c), req.Text, req.Rating)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToReviewResponse(review))
}

func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	var req dto.UpdateReviewRequest
	if err := decodeStrict(c, &req); err != nil {
		return err
	}

	review, err := h.svc.UpdateReview(c.Request().Context(), c.Param("id"), middleware.UserID(c), req.Text, req.Rating)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReviewResponse(review))
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	err := h.svc.DeleteReview(c.Request().Context(), c.Param("id"), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
