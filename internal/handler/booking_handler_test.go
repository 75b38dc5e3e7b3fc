package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/Eursukkul/hbnb-service/internal/dto"
	"github.com/Eursukkul/hbnb-service/internal/models"
	"github.com/Eursukkul/hbnb-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking_Handler_Success(t *testing.T) {
	var got service.BookingInput
	svc := &mockBookingService{
		requestFn: func(ctx context.Context, placeID, tenantID string, in service.BookingInput) (*models.Booking, error) {
			assert.Equal(t, "place-1", placeID)
			assert.Equal(t, "tenant-1", tenantID)
			got = in
			return testBooking(models.StatusPending), nil
		},
	}

	e := newEcho()
	body := `{"check_in":"2026-05-01","check_out":"2026-05-04","guests":2,"message":"hi"}`
	c, rec := newContext(e, http.MethodPost, "/api/v1/places/place-1/bookings", strings.NewReader(body), "tenant-1", "id", "place-1")

	err := NewBookingHandler(svc).CreateBooking(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, date("2026-05-01"), got.CheckIn)
	assert.Equal(t, date("2026-05-04"), got.CheckOut)
	assert.Equal(t, 2, got.Guests)
	assert.Equal(t, "hi", got.Message)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "booking-1", resp.ID)
	assert.Equal(t, models.StatusPending, resp.Status)
	assert.Equal(t, "2026-05-01", resp.CheckIn)
	assert.Equal(t, 3, resp.Nights)
	require.NotNil(t, resp.TotalPrice)
	assert.Equal(t, 300, *resp.TotalPrice)
}

func TestCreateBooking_Handler_MissingDates(t *testing.T) {
	e := newEcho()
	c, _ := newContext(e, http.MethodPost, "/api/v1/places/place-1/bookings", strings.NewReader(`{"guests":2}`), "tenant-1", "id", "place-1")

	err := NewBookingHandler(nil).CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "check_in is required", he.Message)
}

func TestCreateBooking_Handler_BadDateFormat(t *testing.T) {
	e := newEcho()
	body := `{"check_in":"01/05/2026","check_out":"2026-05-04","guests":2}`
	c, _ := newContext(e, http.MethodPost, "/api/v1/places/place-1/bookings", strings.NewReader(body), "tenant-1", "id", "place-1")

	err := NewBookingHandler(nil).CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "check_in must be a date in YYYY-MM-DD format", he.Message)
}

func TestCreateBooking_Handler_ServiceErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"dates taken", service.ErrDatesUnavailable, http.StatusConflict},
		{"own place", service.ErrOwnPlaceBooking, http.StatusBadRequest},
		{"past check-in", service.ErrCheckInPast, http.StatusBadRequest},
		{"place missing", service.ErrPlaceNotFound, http.StatusNotFound},
		{"database down", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockBookingService{
				requestFn: func(ctx context.Context, placeID, tenantID string, in service.BookingInput) (*models.Booking, error) {
					return nil, tc.err
				},
			}

			e := newEcho()
			body := `{"check_in":"2026-05-01","check_out":"2026-05-04","guests":2}`
			c, _ := newContext(e, http.MethodPost, "/api/v1/places/place-1/bookings", strings.NewReader(body), "tenant-1", "id", "place-1")

			err := NewBookingHandler(svc).CreateBooking(c)

			he, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tc.code, he.Code)
		})
	}
}

func TestListPlaceBookings_Handler_OwnerSeesFullBookings(t *testing.T) {
	svc := &mockBookingService{
		listPlaceFn: func(ctx context.Context, placeID, viewerID string) (*service.PlaceBookings, error) {
			assert.Equal(t, "owner-1", viewerID)
			return &service.PlaceBookings{
				Bookings: []models.Booking{*testBooking(models.StatusPending), *testBooking(models.StatusConfirmed)},
				IsOwner:  true,
			}, nil
		},
	}

	e := newEcho()
	c, rec := newContext(e, http.MethodGet, "/api/v1/places/place-1/bookings", nil, "owner-1", "id", "place-1")

	require.NoError(t, NewBookingHandler(svc).ListPlaceBookings(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, "tenant-1", resp[0].TenantID)
}

func TestListPlaceBookings_Handler_AnonymousSeesRangesOnly(t *testing.T) {
	svc := &mockBookingService{
		listPlaceFn: func(ctx context.Context, placeID, viewerID string) (*service.PlaceBookings, error) {
			assert.Empty(t, viewerID)
			return &service.PlaceBookings{Bookings: []models.Booking{*testBooking(models.StatusConfirmed)}}, nil
		},
	}

	e := newEcho()
	c, rec := newContext(e, http.MethodGet, "/api/v1/places/place-1/bookings", nil, "", "id", "place-1")

	require.NoError(t, NewBookingHandler(svc).ListPlaceBookings(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "tenant-1")

	var resp []dto.BookedRangeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, dto.BookedRangeResponse{CheckIn: "2026-05-01", CheckOut: "2026-05-04"}, resp[0])
}

func TestConfirmBooking_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		confirmFn: func(ctx context.Context, placeID, bookingID, actorID string) (*models.Booking, error) {
			assert.Equal(t, "place-1", placeID)
			assert.Equal(t, "booking-1", bookingID)
			assert.Equal(t, "owner-1", actorID)
			return testBooking(models.StatusConfirmed), nil
		},
	}

	e := newEcho()
	c, rec := newContext(e, http.MethodPost, "/api/v1/places/place-1/bookings/booking-1/confirm", nil, "owner-1",
		"id", "place-1", "bookingID", "booking-1")

	require.NoError(t, NewBookingHandler(svc).ConfirmBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusConfirmed, resp.Status)
}

func TestConfirmBooking_Handler_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not owner", service.ErrNotPlaceOwner, http.StatusForbidden},
		{"not pending", service.ErrBookingNotPending, http.StatusBadRequest},
		{"lost the race", service.ErrDatesNoLongerAvailable, http.StatusConflict},
		{"missing", service.ErrBookingNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockBookingService{
				confirmFn: func(ctx context.Context, placeID, bookingID, actorID string) (*models.Booking, error) {
					return nil, tc.err
				},
			}

			e := newEcho()
			c, _ := newContext(e, http.MethodPost, "/", nil, "owner-1", "id", "place-1", "bookingID", "booking-1")

			err := NewBookingHandler(svc).ConfirmBooking(c)

			he, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tc.code, he.Code)
			assert.Equal(t, tc.err.Error(), he.Message)
		})
	}
}

func TestRejectBooking_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		rejectFn: func(ctx context.Context, placeID, bookingID, actorID string) (*models.Booking, error) {
			return testBooking(models.StatusCancelled), nil
		},
	}

	e := newEcho()
	c, rec := newContext(e, http.MethodPost, "/", nil, "owner-1", "id", "place-1", "bookingID", "booking-1")

	require.NoError(t, NewBookingHandler(svc).RejectBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestUpdateStatus_Handler_PassesStatus(t *testing.T) {
	var got models.BookingStatus
	svc := &mockBookingService{
		updateStatusFn: func(ctx context.Context, bookingID, actorID string, status models.BookingStatus) (*models.Booking, error) {
			got = status
			return testBooking(status), nil
		},
	}

	e := newEcho()
	c, rec := newContext(e, http.MethodPut, "/api/v1/bookings/booking-1", strings.NewReader(`{"status":"confirmed"}`), "owner-1", "id", "booking-1")

	require.NoError(t, NewBookingHandler(svc).UpdateStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusConfirmed, got)
}

func TestUpdateStatus_Handler_InvalidStatus(t *testing.T) {
	svc := &mockBookingService{
		updateStatusFn: func(ctx context.Context, bookingID, actorID string, status models.BookingStatus) (*models.Booking, error) {
			return nil, service.ErrInvalidStatus
		},
	}

	e := newEcho()
	c, _ := newContext(e, http.MethodPut, "/api/v1/bookings/booking-1", strings.NewReader(`{"status":"completed"}`), "owner-1", "id", "booking-1")

	err := NewBookingHandler(svc).UpdateStatus(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCancelBooking_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
			assert.Equal(t, "tenant-1", actorID)
			return testBooking(models.StatusCancelled), nil
		},
	}

	e := newEcho()
	c, rec := newContext(e, http.MethodPost, "/api/v1/bookings/booking-1/cancel", nil, "tenant-1", "id", "booking-1")

	require.NoError(t, NewBookingHandler(svc).CancelBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusCancelled, resp.Status)
}

func TestCancelBooking_Handler_NotCancellable(t *testing.T) {
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
			return nil, service.ErrBookingNotCancellable
		},
	}

	e := newEcho()
	c, _ := newContext(e, http.MethodPost, "/", nil, "tenant-1", "id", "booking-1")

	err := NewBookingHandler(svc).CancelBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetBooking_Handler_Forbidden(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
			return nil, service.ErrNotBookingParty
		},
	}

	e := newEcho()
	c, _ := newContext(e, http.MethodGet, "/api/v1/bookings/booking-1", nil, "stranger", "id", "booking-1")

	err := NewBookingHandler(svc).GetBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestHistory_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		historyFn: func(ctx context.Context, bookingID, actorID string) ([]models.BookingEvent, error) {
			b := testBooking(models.StatusPending)
			return []models.BookingEvent{
				models.NewBookingEvent("ev-1", models.EventBookingRequested, b, date("2026-04-01")),
			}, nil
		},
	}

	e := newEcho()
	c, rec := newContext(e, http.MethodGet, "/api/v1/bookings/booking-1/history", nil, "tenant-1", "id", "booking-1")

	require.NoError(t, NewBookingHandler(svc).History(c))

	var resp []dto.BookingEventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, models.EventBookingRequested, resp[0].Type)
}

func TestReceipt_Handler_ServesPDF(t *testing.T) {
	svc := &mockBookingService{
		receiptFn: func(ctx context.Context, bookingID, actorID string) ([]byte, error) {
			return []byte("%PDF-1.3"), nil
		},
	}

	e := newEcho()
	c, rec := newContext(e, http.MethodGet, "/api/v1/bookings/booking-1/receipt", nil, "tenant-1", "id", "booking-1")

	require.NoError(t, NewBookingHandler(svc).Receipt(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "receipt-booking-1.pdf")
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}

func TestReceipt_Handler_Unavailable(t *testing.T) {
	svc := &mockBookingService{
		receiptFn: func(ctx context.Context, bookingID, actorID string) ([]byte, error) {
			return nil, service.ErrReceiptUnavailable
		},
	}

	e := newEcho()
	c, _ := newContext(e, http.MethodGet, "/", nil, "tenant-1", "id", "booking-1")

	err := NewBookingHandler(svc).Receipt(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
