package dto

import (
	"time"

	"github.com/Eursukkul/hbnb-service/internal/availability"
	"github.com/Eursukkul/hbnb-service/internal/models"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type AmenityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PhotoResponse struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	IsPrimary bool   `json:"is_primary"`
	PlaceID   string `json:"place_id"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	PlaceID   string    `json:"place_id"`
	CreatedAt time.Time `json:"created_at"`
}

type PlaceResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Address           string            `json:"address"`
	City              string            `json:"city"`
	Country           string            `json:"country"`
	Latitude          *float64          `json:"latitude,omitempty"`
	Longitude         *float64          `json:"longitude,omitempty"`
	PricePerNight     int               `json:"price_per_night"`
	MaxGuests         int               `json:"max_guests"`
	NumberOfRooms     int               `json:"number_of_rooms"`
	NumberOfBathrooms int               `json:"number_of_bathrooms"`
	OwnerID           string            `json:"owner_id"`
	Owner             *UserResponse     `json:"owner,omitempty"`
	Photos            []PhotoResponse   `json:"photos"`
	Amenities         []AmenityResponse `json:"amenities"`
	Reviews           []ReviewResponse  `json:"reviews,omitempty"`
	AvgRating         float64           `json:"avg_rating"`
	BookedDates       []string          `json:"booked_dates,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type BookingResponse struct {
	ID         string               `json:"id"`
	PlaceID    string               `json:"place_id"`
	TenantID   string               `json:"tenant_id"`
	CheckIn    string               `json:"check_in"`
	CheckOut   string               `json:"check_out"`
	Guests     int                  `json:"guests"`
	Message    string               `json:"message,omitempty"`
	Status     models.BookingStatus `json:"status"`
	Nights     int                  `json:"nights"`
	TotalPrice *int                 `json:"total_price,omitempty"`
	PlaceName  string               `json:"place_name,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// BookedRangeResponse is what non-owners see of a confirmed booking.
type BookedRangeResponse struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

type AvailabilityResponse struct {
	PlaceID   string `json:"place_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}

type BookingEventResponse struct {
	ID         string               `json:"id"`
	Type       string               `json:"type"`
	Status     models.BookingStatus `json:"status"`
	OccurredAt time.Time            `json:"occurred_at"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func ToAmenityResponse(a *models.Amenity) AmenityResponse {
	return AmenityResponse{ID: a.ID, Name: a.Name}
}

func ToAmenityResponses(amenities []models.Amenity) []AmenityResponse {
	resp := make([]AmenityResponse, len(amenities))
	for i := range amenities {
		resp[i] = ToAmenityResponse(&amenities[i])
	}
	return resp
}

func ToPhotoResponse(p *models.PlacePhoto) PhotoResponse {
	return PhotoResponse{
		ID:        p.ID,
		Filename:  p.Filename,
		URL:       p.URL,
		Caption:   p.Caption,
		IsPrimary: p.IsPrimary,
		PlaceID:   p.PlaceID,
	}
}

func ToReviewResponse(r *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        r.ID,
		Text:      r.Text,
		Rating:    r.Rating,
		UserID:    r.UserID,
		PlaceID:   r.PlaceID,
		CreatedAt: r.CreatedAt,
	}
	if r.User != nil {
		resp.UserName = r.User.FirstName + " " + r.User.LastName
	}
	return resp
}

func ToReviewResponses(reviews []models.Review) []ReviewResponse {
	resp := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		resp[i] = ToReviewResponse(&reviews[i])
	}
	return resp
}

func ToPlaceResponse(p *models.Place) PlaceResponse {
	resp := PlaceResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Address:           p.Address,
		City:              p.City,
		Country:           p.Country,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
		PricePerNight:     p.PricePerNight,
		MaxGuests:         p.MaxGuests,
		NumberOfRooms:     p.NumberOfRooms,
		NumberOfBathrooms: p.NumberOfBathrooms,
		OwnerID:           p.OwnerID,
		Photos:            make([]PhotoResponse, len(p.Photos)),
		Amenities:         ToAmenityResponses(p.Amenities),
		AvgRating:         models.AverageRating(p.Reviews),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.Owner != nil {
		owner := ToUserResponse(p.Owner)
		resp.Owner = &owner
	}
	for i := range p.Photos {
		resp.Photos[i] = ToPhotoResponse(&p.Photos[i])
	}
	return resp
}

func ToPlaceResponses(places []models.Place) []PlaceResponse {
	resp := make([]PlaceResponse, len(places))
	for i := range places {
		resp[i] = ToPlaceResponse(&places[i])
	}
	return resp
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        b.ID,
		PlaceID:   b.PlaceID,
		TenantID:  b.TenantID,
		CheckIn:   b.CheckIn.Format(availability.DateLayout),
		CheckOut:  b.CheckOut.Format(availability.DateLayout),
		Guests:    b.Guests,
		Message:   b.Message,
		Status:    b.Status,
		Nights:    b.Nights(),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.Place != nil {
		total := b.TotalPrice(b.Place)
		resp.TotalPrice = &total
		resp.PlaceName = b.Place.Name
	}
	return resp
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}

func ToBookedRanges(bookings []models.Booking) []BookedRangeResponse {
	resp := make([]BookedRangeResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = BookedRangeResponse{
			CheckIn:  b.CheckIn.Format(availability.DateLayout),
			CheckOut: b.CheckOut.Format(availability.DateLayout),
		}
	}
	return resp
}

func ToBookingEventResponses(events []models.BookingEvent) []BookingEventResponse {
	resp := make([]BookingEventResponse, len(events))
	for i, ev := range events {
		resp[i] = BookingEventResponse{ID: ev.ID, Type: ev.Type, Status: ev.Status, OccurredAt: ev.OccurredAt}
	}
	return resp
}
