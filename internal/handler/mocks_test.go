package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"time"

	"github.com/Eursukkul/hbnb-service/internal/availability"
	"github.com/Eursukkul/hbnb-service/internal/middleware"
	"github.com/Eursukkul/hbnb-service/internal/models"
	"github.com/Eursukkul/hbnb-service/internal/service"
	"github.com/labstack/echo/v4"
)

// --- Mock BookingService ---

type mockBookingService struct {
	requestFn      func(ctx context.Context, placeID, tenantID string, in service.BookingInput) (*models.Booking, error)
	confirmFn      func(ctx context.Context, placeID, bookingID, actorID string) (*models.Booking, error)
	rejectFn       func(ctx context.Context, placeID, bookingID, actorID string) (*models.Booking, error)
	cancelFn       func(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	updateStatusFn func(ctx context.Context, bookingID, actorID string, status models.BookingStatus) (*models.Booking, error)
	availabilityFn func(ctx context.Context, placeID string, rng availability.DateRange) (bool, error)
	getFn          func(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	listPlaceFn    func(ctx context.Context, placeID, viewerID string) (*service.PlaceBookings, error)
	listTenantFn   func(ctx context.Context, tenantID string) ([]models.Booking, error)
	historyFn      func(ctx context.Context, bookingID, actorID string) ([]models.BookingEvent, error)
	receiptFn      func(ctx context.Context, bookingID, actorID string) ([]byte, error)
}

func (m *mockBookingService) RequestBooking(ctx context.Context, placeID, tenantID string, in service.BookingInput) (*models.Booking, error) {
	return m.requestFn(ctx, placeID, tenantID, in)
}
func (m *mockBookingService) ConfirmBooking(ctx context.Context, placeID, bookingID, actorID string) (*models.Booking, error) {
	return m.confirmFn(ctx, placeID, bookingID, actorID)
}
func (m *mockBookingService) RejectBooking(ctx context.Context, placeID, bookingID, actorID string) (*models.Booking, error) {
	return m.rejectFn(ctx, placeID, bookingID, actorID)
}
func (m *mockBookingService) CancelBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	return m.cancelFn(ctx, bookingID, actorID)
}
func (m *mockBookingService) UpdateStatus(ctx context.Context, bookingID, actorID string, status models.BookingStatus) (*models.Booking, error) {
	return m.updateStatusFn(ctx, bookingID, actorID, status)
}
func (m *mockBookingService) CheckAvailability(ctx context.Context, placeID string, rng availability.DateRange) (bool, error) {
	return m.availabilityFn(ctx, placeID, rng)
}
func (m *mockBookingService) GetBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	return m.getFn(ctx, bookingID, actorID)
}
func (m *mockBookingService) ListPlaceBookings(ctx context.Context, placeID, viewerID string) (*service.PlaceBookings, error) {
	return m.listPlaceFn(ctx, placeID, viewerID)
}
func (m *mockBookingService) ListTenantBookings(ctx context.Context, tenantID string) ([]models.Booking, error) {
	return m.listTenantFn(ctx, tenantID)
}
func (m *mockBookingService) History(ctx context.Context, bookingID, actorID string) ([]models.BookingEvent, error) {
	return m.historyFn(ctx, bookingID, actorID)
}
func (m *mockBookingService) Receipt(ctx context.Context, bookingID, actorID string) ([]byte, error) {
	return m.receiptFn(ctx, bookingID, actorID)
}
func (m *mockBookingService) CompleteFinished(ctx context.Context) ([]models.Booking, error) {
	return nil, nil
}

// --- Mock PlaceService ---

type mockPlaceService struct {
	createFn func(ctx context.Context, ownerID string, in service.PlaceInput) (*models.Place, error)
	getFn    func(ctx context.Context, id string) (*service.PlaceDetails, error)
	listFn   func(ctx context.Context, filter models.PlaceFilter) ([]models.Place, error)
	updateFn func(ctx context.Context, id, actorID string, patch service.PlacePatch) (*models.Place, error)
	deleteFn func(ctx context.Context, id, actorID string) error
}

func (m *mockPlaceService) CreatePlace(ctx context.Context, ownerID string, in service.PlaceInput) (*models.Place, error) {
	return m.createFn(ctx, ownerID, in)
}
func (m *mockPlaceService) GetPlace(ctx context.Context, id string) (*service.PlaceDetails, error) {
	return m.getFn(ctx, id)
}
func (m *mockPlaceService) ListPlaces(ctx context.Context, filter models.PlaceFilter) ([]models.Place, error) {
	return m.listFn(ctx, filter)
}
func (m *mockPlaceService) UpdatePlace(ctx context.Context, id, actorID string, patch service.PlacePatch) (*models.Place, error) {
	return m.updateFn(ctx, id, actorID, patch)
}
func (m *mockPlaceService) DeletePlace(ctx context.Context, id, actorID string) error {
	return m.deleteFn(ctx, id, actorID)
}

// --- Mock ReviewService ---

type mockReviewService struct {
	createFn func(ctx context.Context, placeID, userID, text string, rating int) (*models.Review, error)
	listFn   func(ctx context.Context, placeID string) ([]models.Review, error)
	updateFn func(ctx context.Context, reviewID, actorID string, text *string, rating *int) (*models.Review, error)
	deleteFn func(ctx context.Context, reviewID, actorID string, isAdmin bool) error
}

func (m *mockReviewService) CreateReview(ctx context.Context, placeID, userID, text string, rating int) (*models.Review, error) {
	return m.createFn(ctx, placeID, userID, text, rating)
}
func (m *mockReviewService) ListReviews(ctx context.Context, placeID string) ([]models.Review, error) {
	return m.listFn(ctx, placeID)
}
func (m *mockReviewService) UpdateReview(ctx context.Context, reviewID, actorID string, text *string, rating *int) (*models.Review, error) {
	return m.updateFn(ctx, reviewID, actorID, text, rating)
}
func (m *mockReviewService) DeleteReview(ctx context.Context, reviewID, actorID string, isAdmin bool) error {
	return m.deleteFn(ctx, reviewID, actorID, isAdmin)
}

// --- Mock AuthService ---

type mockAuthService struct {
	registerFn func(ctx context.Context, in service.RegisterInput) (*models.User, string, error)
	loginFn    func(ctx context.Context, email, password string) (*models.User, string, error)
}

func (m *mockAuthService) Register(ctx context.Context, in service.RegisterInput) (*models.User, string, error) {
	return m.registerFn(ctx, in)
}
func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	return m.loginFn(ctx, email, password)
}

// --- helpers ---

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = middleware.NewValidator()
	return e
}

// newContext builds a request context with path params given as name, value pairs.
func newContext(e *echo.Echo, method, target string, body io.Reader, userID string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	if userID != "" {
		c.Set("userID", userID)
	}
	return c, rec
}

func date(s string) time.Time {
	t, err := time.Parse(availability.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func testBooking(status models.BookingStatus) *models.Booking {
	b := &models.Booking{
		PlaceID:  "place-1",
		TenantID: "tenant-1",
		CheckIn:  date("2026-05-01"),
		CheckOut: date("2026-05-04"),
		Guests:   2,
		Status:   status,
		Place:    &models.Place{Name: "Loft", PricePerNight: 100, OwnerID: "owner-1"},
	}
	b.ID = "booking-1"
	return b
}
