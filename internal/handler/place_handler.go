package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Eursukkul/hbnb-service/internal/availability"
	"github.com/Eursukkul/hbnb-service/internal/dto"
	"github.com/Eursukkul/hbnb-service/internal/middleware"
	"github.com/Eursukkul/hbnb-service/internal/models"
	"github.com/Eursukkul/hbnb-service/internal/service"
	"github.com/labstack/echo/v4"
)

type PlaceHandler struct {
	places   service.PlaceService
	bookings service.BookingService
}

func NewPlaceHandler(places service.PlaceService, bookings service.BookingService) *PlaceHandler {
	return &PlaceHandler{places: places, bookings: bookings}
}

func (h *PlaceHandler) RegisterRoutes(api *echo.Group, authn echo.MiddlewareFunc) {
	places := api.Group("/places")
	places.GET("", h.ListPlaces)
	places.GET("/:id", h.GetPlace)
	places.GET("/:id/availability", h.CheckAvailability)
	places.POST("", h.CreatePlace, authn)
	places.PUT("/:id", h.UpdatePlace, authn)
	places.DELETE("/:id", h.DeletePlace, authn)
}

func (h *PlaceHandler) ListPlaces(c echo.Context) error {
	filter := models.PlaceFilter{City: strings.TrimSpace(c.QueryParam("city"))}

	var err error
	if filter.MinPrice, err = intQuery(c, "min_price"); err != nil {
		return err
	}
	if filter.MaxPrice, err = intQuery(c, "max_price"); err != nil {
		return err
	}
	if raw := c.QueryParam("amenities"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.AmenityIDs = append(filter.AmenityIDs, id)
			}
		}
	}

	places, err := h.places.ListPlaces(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPlaceResponses(places))
}

func (h *PlaceHandler) GetPlace(c echo.Context) error {
	details, err := h.places.GetPlace(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	resp := dto.ToPlaceResponse(details.Place)
	resp.Reviews = dto.ToReviewResponses(details.Place.Reviews)
	resp.AvgRating = details.AvgRating
	resp.BookedDates = details.BookedDates
	return c.JSON(http.StatusOK, resp)
}

func (h *PlaceHandler) CreatePlace(c echo.Context) error {
	var req dto.CreatePlaceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	place, err := h.places.CreatePlace(c.Request().Context(), middleware.UserID(c), service.PlaceInput{
		Name:              req.Name,
		Description:       req.Description,
		Address:           req.Address,
		City:              req.City,
		Country:           req.Country,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		PricePerNight:     req.PricePerNight,
		MaxGuests:         req.MaxGuests,
		NumberOfRooms:     req.NumberOfRooms,
		NumberOfBathrooms: req.NumberOfBathrooms,
		AmenityIDs:        req.AmenityIDs,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToPlaceResponse(place))
}

func (h *PlaceHandler) UpdatePlace(c echo.Context) error {
	var req dto.UpdatePlaceRequest
	if err := decodeStrict(c, &req); err != nil {
		return err
	}

	place, err := h.places.UpdatePlace(c.Request().Context(), c.Param("id"), middleware.UserID(c), service.PlacePatch{
		Name:              req.Name,
		Description:       req.Description,
		Address:           req.Address,
		City:              req.City,
		Country:           req.Country,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		ClearCoordinates:  req.ClearCoordinates,
		PricePerNight:     req.PricePerNight,
		MaxGuests:         req.MaxGuests,
		NumberOfRooms:     req.NumberOfRooms,
		NumberOfBathrooms: req.NumberOfBathrooms,
		AmenityIDs:        req.AmenityIDs,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPlaceResponse(place))
}

func (h *PlaceHandler) DeletePlace(c echo.Context) error {
	if err := h.places.DeletePlace(c.Request().Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ErrorResponse{Message: "place deleted successfully"})
}

func (h *PlaceHandler) CheckAvailability(c echo.Context) error {
	start, end := c.QueryParam("start_date"), c.QueryParam("end_date")
	if start == "" || end == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date and end_date are required")
	}

	rng, err := availability.ParseDateRange(start, end)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidRange) {
			return echo.NewHTTPError(http.StatusBadRequest, "end_date must be after start_date")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "dates must be in YYYY-MM-DD format")
	}

	placeID := c.Param("id")
	ok, err := h.bookings.CheckAvailability(c.Request().Context(), placeID, rng)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.AvailabilityResponse{
		PlaceID:   placeID,
		StartDate: rng.Start.Format(availability.DateLayout),
		EndDate:   rng.End.Format(availability.DateLayout),
		Available: ok,
	})
}

func intQuery(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return n, nil
}
