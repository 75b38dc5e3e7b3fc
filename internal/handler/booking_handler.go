package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Eursukkul/hbnb-service/internal/availability"
	"github.com/Eursukkul/hbnb-service/internal/dto"
	"github.com/Eursukkul/hbnb-service/internal/middleware"
	"github.com/Eursukkul/hbnb-service/internal/models"
	"github.com/Eursukkul/hbnb-service/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(api *echo.Group, authn, optional echo.MiddlewareFunc) {
	places := api.Group("/places/:id/bookings")
	places.POST("", h.CreateBooking, authn)
	places.GET("", h.ListPlaceBookings, optional)
	places.POST("/:bookingID/confirm", h.ConfirmBooking, authn)
	places.POST("/:bookingID/reject", h.RejectBooking, authn)

	bookings := api.Group("/bookings", authn)
	bookings.GET("/:id", h.GetBooking)
	bookings.PUT("/:id", h.UpdateStatus)
	bookings.POST("/:id/cancel", h.CancelBooking)
	bookings.GET("/:id/history", h.History)
	bookings.GET("/:id/receipt", h.Receipt)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	checkIn, err := time.Parse(availability.DateLayout, req.CheckIn)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_in must be a date in YYYY-MM-DD format")
	}
	checkOut, err := time.Parse(availability.DateLayout, req.CheckOut)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_out must be a date in YYYY-MM-DD format")
	}

	booking, err := h.svc.RequestBooking(c.Request().Context(), c.Param("id"), middleware.UserID(c), service.BookingInput{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   req.Guests,
		Message:  req.Message,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

// ListPlaceBookings shows the owner every booking and everyone else only
// the confirmed date ranges.
func (h *BookingHandler) ListPlaceBookings(c echo.Context) error {
	res, err := h.svc.ListPlaceBookings(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}

	if res.IsOwner {
		return c.JSON(http.StatusOK, dto.ToBookingResponses(res.Bookings))
	}
	return c.JSON(http.StatusOK, dto.ToBookedRanges(res.Bookings))
}

func (h *BookingHandler) ConfirmBooking(c echo.Context) error {
	booking, err := h.svc.ConfirmBooking(c.Request().Context(), c.Param("id"), c.Param("bookingID"), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) RejectBooking(c echo.Context) error {
	booking, err := h.svc.RejectBooking(c.Request().Context(), c.Param("id"), c.Param("bookingID"), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	var req dto.UpdateBookingStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.svc.UpdateStatus(c.Request().Context(), c.Param("id"), middleware.UserID(c), models.BookingStatus(req.Status))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	booking, err := h.svc.CancelBooking(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	booking, err := h.svc.GetBooking(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) History(c echo.Context) error {
	events, err := h.svc.History(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingEventResponses(events))
}

func (h *BookingHandler) Receipt(c echo.Context) error {
	id := c.Param("id")
	pdf, err := h.svc.Receipt(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=receipt-%s.pdf", id))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
