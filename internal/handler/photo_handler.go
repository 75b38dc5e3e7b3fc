package handler

import (
	"net/http"

	"github.com/Eursukkul/hbnb-service/internal/dto"
	"github.com/Eursukkul/hbnb-service/internal/middleware"
	"github.com/Eursukkul/hbnb-service/internal/service"
	"github.com/labstack/echo/v4"
)

type PhotoHandler struct {
	svc service.PhotoService
}

func NewPhotoHandler(svc service.PhotoService) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

func (h *PhotoHandler) RegisterRoutes(api *echo.Group, authn echo.MiddlewareFunc) {
	photos := api.Group("/places/:id/photos", authn)
	photos.POST("", h.AddPhoto)
	photos.PUT("/:photoID", h.UpdatePhoto)
	photos.DELETE("/:photoID", h.DeletePhoto)
}

func (h *PhotoHandler) AddPhoto(c echo.Context) error {
	var req dto.PhotoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	photo, err := h.svc.AddPhoto(c.Request().Context(), c.Param("id"), middleware.UserID(c), service.PhotoInput{
		Filename:  req.Filename,
		URL:       req.URL,
		Caption:   req.Caption,
		IsPrimary: req.IsPrimary,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToPhotoResponse(photo))
}

func (h *PhotoHandler) UpdatePhoto(c echo.Context) error {
	var req dto.UpdatePhotoRequest
	if err := decodeStrict(c, &req); err != nil {
		return err
	}

	photo, err := h.svc.UpdatePhoto(c.Request().Context(), c.Param("id"), c.Param("photoID"), middleware.UserID(c), service.PhotoPatch{
		Filename:  req.Filename,
		URL:       req.URL,
		Caption:   req.Caption,
		IsPrimary: req.IsPrimary,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPhotoResponse(photo))
}

func (h *PhotoHandler) DeletePhoto(c echo.Context) error {
	if err := h.svc.DeletePhoto(c.Request().Context(), c.Param("id"), c.Param("photoID"), middleware.UserID(c)); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
