package dto

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
}

type CreatePlaceRequest struct {
	Name              string   `json:"name" validate:"required"`
	Description       string   `json:"description" validate:"required"`
	Address           string   `json:"address" validate:"required"`
	City              string   `json:"city" validate:"required"`
	Country           string   `json:"country" validate:"required"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	PricePerNight     int      `json:"price_per_night"`
	MaxGuests         int      `json:"max_guests"`
	NumberOfRooms     int      `json:"number_of_rooms"`
	NumberOfBathrooms int      `json:"number_of_bathrooms"`
	AmenityIDs        []string `json:"amenity_ids"`
}

// UpdatePlaceRequest is decoded strictly: a key not listed here is a 400.
type UpdatePlaceRequest struct {
	Name              *string   `json:"name"`
	Description       *string   `json:"description"`
	Address           *string   `json:"address"`
	City              *string   `json:"city"`
	Country           *string   `json:"country"`
	Latitude          *float64  `json:"latitude"`
	Longitude         *float64  `json:"longitude"`
	ClearCoordinates  bool      `json:"clear_coordinates"`
	PricePerNight     *int      `json:"price_per_night"`
	MaxGuests         *int      `json:"max_guests"`
	NumberOfRooms     *int      `json:"number_of_rooms"`
	NumberOfBathrooms *int      `json:"number_of_bathrooms"`
	AmenityIDs        *[]string `json:"amenity_ids"`
}

type PhotoRequest struct {
	Filename  string `json:"filename" validate:"required"`
	URL       string `json:"url" validate:"required"`
	Caption   string `json:"caption" validate:"max=255"`
	IsPrimary bool   `json:"is_primary"`
}

type UpdatePhotoRequest struct {
	Filename  *string `json:"filename"`
	URL       *string `json:"url"`
	Caption   *string `json:"caption"`
	IsPrimary *bool   `json:"is_primary"`
}

type ReviewRequest struct {
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

type UpdateReviewRequest struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

type AmenityRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// CreateBookingRequest carries dates as YYYY-MM-DD.
type CreateBookingRequest struct {
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests"`
	Message  string `json:"message" validate:"max=1000"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
