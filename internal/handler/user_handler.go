package handler

import (
	"net/http"

	"github.com/Eursukkul/hbnb-service/internal/dto"
	"github.com/Eursukkul/hbnb-service/internal/middleware"
	"github.com/Eursukkul/hbnb-service/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	users    service.UserService
	bookings service.BookingService
}

func NewUserHandler(users service.UserService, bookings service.BookingService) *UserHandler {
	return &UserHandler{users: users, bookings: bookings}
}

func (h *UserHandler) RegisterRoutes(api *echo.Group, authn echo.MiddlewareFunc) {
	users := api.Group("/users", authn)
	users.GET("/bookings", h.MyBookings)
	users.PUT("/me", h.UpdateMe)
	users.GET("/:id", h.GetUser)

	admin := api.Group("/admin/users", authn, middleware.AdminOnly)
	admin.POST("/:id/promote", h.Promote)
	admin.POST("/:id/demote", h.Demote)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.users.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := decodeStrict(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), middleware.UserID(c), service.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) MyBookings(c echo.Context) error {
	bookings, err := h.bookings.ListTenantBookings(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *UserHandler) Promote(c echo.Context) error {
	return h.setAdmin(c, true)
}

func (h *UserHandler) Demote(c echo.Context) error {
	return h.setAdmin(c, false)
}

func (h *UserHandler) setAdmin(c echo.Context, isAdmin bool) error {
	user, err := h.users.SetAdmin(c.Request().Context(), c.Param("id"), isAdmin)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
