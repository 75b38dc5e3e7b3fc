package handler

import (
	"net/http"

	"github.com/Eursukkul/hbnb-service/internal/dto"
	"github.com/Eursukkul/hbnb-service/internal/middleware"
	"github.com/Eursukkul/hbnb-service/internal/service"
	"github.com/labstack/echo/v4"
)

type AmenityHandler struct {
	svc service.AmenityService
}

func NewAmenityHandler(svc service.AmenityService) *AmenityHandler {
	return &AmenityHandler{svc: svc}
}

func (h *AmenityHandler) RegisterRoutes(api *echo.Group, authn echo.MiddlewareFunc) {
	api.GET("/amenities", h.ListAmenities)
	api.GET("/amenities/:id", h.GetAmenity)

	admin := api.Group("/admin/amenities", authn, middleware.AdminOnly)
	admin.POST("", h.CreateAmenity)
	admin.PUT("/:id", h.UpdateAmenity)
	admin.DELETE("/:id", h.DeleteAmenity)
}

func (h *AmenityHandler) ListAmenities(c echo.Context) error {
	amenities, err := h.svc.ListAmenities(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToAmenityResponses(amenities))
}

func (h *AmenityHandler) GetAmenity(c echo.Context) error {
	amenity, err := h.svc.GetAmenity(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToAmenityResponse(amenity))
}

func (h *AmenityHandler) CreateAmenity(c echo.Context) error {
	var req dto.AmenityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	amenity, err := h.svc.CreateAmenity(c.Request().Context(), req.Name)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToAmenityResponse(amenity))
}

func (h *AmenityHandler) UpdateAmenity(c echo.Context) error {
	var req dto.AmenityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	amenity, err := h.svc.UpdateAmenity(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToAmenityResponse(amenity))
}

func (h *AmenityHandler) DeleteAmenity(c echo.Context) error {
	if err := h.svc.DeleteAmenity(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
