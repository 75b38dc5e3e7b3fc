package handler

import (
	"github.com/Eursukkul/hbnb-service/internal/middleware"
	"github.com/Eursukkul/hbnb-service/internal/service"
	"github.com/labstack/echo/v4"
)

type Services struct {
	Auth      service.AuthService
	Users     service.UserService
	Amenities service.AmenityService
	Places    service.PlaceService
	Photos    service.PhotoService
	Reviews   service.ReviewService
	Bookings  service.BookingService
}

// RegisterRoutes mounts the whole API under api.
func RegisterRoutes(api *echo.Group, tokens middleware.TokenParser, s Services) {
	authn := middleware.JWTAuth(tokens)

	NewAuthHandler(s.Auth, s.Users).RegisterRoutes(api, authn)
	NewUserHandler(s.Users, s.Bookings).RegisterRoutes(api, authn)
	NewAmenityHandler(s.Amenities).RegisterRoutes(api, authn)
	NewPlaceHandler(s.Places, s.Bookings).RegisterRoutes(api, authn)
	NewPhotoHandler(s.Photos).RegisterRoutes(api, authn)
	NewReviewHandler(s.Reviews).RegisterRoutes(api, authn)
	NewBookingHandler(s.Bookings).RegisterRoutes(api, authn, middleware.OptionalJWT(tokens))
}
