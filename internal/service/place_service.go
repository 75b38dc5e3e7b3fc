package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Eursukkul/hbnb-service/internal/availability"
	"github.com/Eursukkul/hbnb-service/internal/models"
	"github.com/Eursukkul/hbnb-service/internal/repository"
	"gorm.io/gorm"
)

type PlaceInput struct {
	Name              string
	Description       string
	Address           string
	City              string
	Country           string
	Latitude          *float64
	Longitude         *float64
	PricePerNight     int
	MaxGuests         int
	NumberOfRooms     int
	NumberOfBathrooms int
	AmenityIDs        []string
}

// PlacePatch lists the fields an owner may change. A nil field is left as is.
// ClearCoordinates unsets latitude and longitude; it cannot be combined with
// new values for them.
type PlacePatch struct {
	Name              *string
	Description       *string
	Address           *string
	City              *string
	Country           *string
	Latitude          *float64
	Longitude         *float64
	ClearCoordinates  bool
	PricePerNight     *int
	MaxGuests         *int
	NumberOfRooms     *int
	NumberOfBathrooms *int
	AmenityIDs        *[]string
}

// PlaceDetails is a place with the figures computed from its reviews and
// confirmed bookings.
type PlaceDetails struct {
	Place       *models.Place
	AvgRating   float64
	BookedDates []string
}

type PlaceService interface {
	CreatePlace(ctx context.Context, ownerID string, in PlaceInput) (*models.Place, error)
	GetPlace(ctx context.Context, id string) (*PlaceDetails, error)
	ListPlaces(ctx context.Context, filter models.PlaceFilter) ([]models.Place, error)
	UpdatePlace(ctx context.Context, id, actorID string, patch PlacePatch) (*models.Place, error)
	DeletePlace(ctx context.Context, id, actorID string) error
}

type placeService struct {
	tx          repository.Transactor
	placeRepo   repository.PlaceRepository
	amenityRepo repository.AmenityRepository
	bookingRepo repository.BookingRepository
	now         func() time.Time
}

func NewPlaceService(
	tx repository.Transactor,
	placeRepo repository.PlaceRepository,
	amenityRepo repository.AmenityRepository,
	bookingRepo repository.BookingRepository,
) PlaceService {
	return &placeService{
		tx:          tx,
		placeRepo:   placeRepo,
		amenityRepo: amenityRepo,
		bookingRepo: bookingRepo,
		now:         time.Now,
	}
}

func (s *placeService) CreatePlace(ctx context.Context, ownerID string, in PlaceInput) (*models.Place, error) {
	place := &models.Place{
		Name:              strings.TrimSpace(in.Name),
		Description:       strings.TrimSpace(in.Description),
		Address:           strings.TrimSpace(in.Address),
		City:              strings.TrimSpace(in.City),
		Country:           strings.TrimSpace(in.Country),
		Latitude:          in.Latitude,
		Longitude:         in.Longitude,
		PricePerNight:     in.PricePerNight,
		MaxGuests:         in.MaxGuests,
		NumberOfRooms:     in.NumberOfRooms,
		NumberOfBathrooms: in.NumberOfBathrooms,
		OwnerID:           ownerID,
	}
	if err := validatePlace(place); err != nil {
		return nil, err
	}

	amenities, err := s.resolveAmenities(ctx, in.AmenityIDs)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.placeRepo.Create(ctx, tx, place); err != nil {
			return fmt.Errorf("create place: %w", err)
		}
		if len(amenities) > 0 {
			if err := s.placeRepo.ReplaceAmenities(ctx, tx, place, amenities); err != nil {
				return fmt.Errorf("set amenities: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	place.Amenities = amenities

	log.Printf("[PlaceService] place %s created by %s", place.ID, ownerID)
	return place, nil
}

func (s *placeService) GetPlace(ctx context.Context, id string) (*PlaceDetails, error) {
	place, err := s.placeRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("get place: %w", err)
	}

	confirmed, err := s.bookingRepo.FindByPlace(ctx, s.bookingRepo.GetDB(), id, models.StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return &PlaceDetails{
		Place:       place,
		AvgRating:   models.AverageRating(place.Reviews),
		BookedDates: availability.BookedDates(confirmed, availability.Day(s.now())),
	}, nil
}

func (s *placeService) ListPlaces(ctx context.Context, filter models.PlaceFilter) ([]models.Place, error) {
	if filter.MinPrice < 0 || filter.MaxPrice < 0 {
		return nil, invalidf("price filters must not be negative")
	}
	if filter.MaxPrice > 0 && filter.MinPrice > filter.MaxPrice {
		return nil, invalidf("min_price must not exceed max_price")
	}
	return s.placeRepo.FindAll(ctx, filter)
}

func (s *placeService) UpdatePlace(ctx context.Context, id, actorID string, patch PlacePatch) (*models.Place, error) {
	if patch.ClearCoordinates && (patch.Latitude != nil || patch.Longitude != nil) {
		return nil, invalidf("clear_coordinates cannot be combined with latitude or longitude")
	}

	var amenities []models.Amenity
	if patch.AmenityIDs != nil {
		var err error
		if amenities, err = s.resolveAmenities(ctx, *patch.AmenityIDs); err != nil {
			return nil, err
		}
	}

	var result *models.Place

	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		place, err := s.placeRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrPlaceNotFound
			}
			return fmt.Errorf("lock place: %w", err)
		}
		if !place.IsOwnedBy(actorID) {
			return ErrNotPlaceOwner
		}

		applyPatch(place, patch)
		if err := validatePlace(place); err != nil {
			return err
		}

		if err := s.placeRepo.Update(ctx, tx, place); err != nil {
			return fmt.Errorf("update place: %w", err)
		}
		if patch.AmenityIDs != nil {
			if err := s.placeRepo.ReplaceAmenities(ctx, tx, place, amenities); err != nil {
				return fmt.Errorf("set amenities: %w", err)
			}
			place.Amenities = amenities
		}
		result = place
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[PlaceService] place %s updated", id)
	return result, nil
}

func (s *placeService) DeletePlace(ctx context.Context, id, actorID string) error {
	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		place, err := s.placeRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrPlaceNotFound
			}
			return fmt.Errorf("lock place: %w", err)
		}
		if !place.IsOwnedBy(actorID) {
			return ErrNotPlaceOwner
		}
		if err := s.placeRepo.Delete(ctx, tx, id); err != nil {
			if repository.IsNotFound(err) {
				return ErrPlaceNotFound
			}
			return fmt.Errorf("delete place: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[PlaceService] place %s deleted", id)
	return nil
}

// resolveAmenities loads the amenities by id. Duplicate ids collapse; any
// unknown id fails the whole call.
func (s *placeService) resolveAmenities(ctx context.Context, ids []string) ([]models.Amenity, error) {
	if len(ids) == 0 {
		return []models.Amenity{}, nil
	}

	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	amenities, err := s.amenityRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("load amenities: %w", err)
	}
	if len(amenities) != len(unique) {
		return nil, ErrInvalidAmenityRef
	}
	return amenities, nil
}

func applyPatch(p *models.Place, patch PlacePatch) {
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Address != nil {
		p.Address = strings.TrimSpace(*patch.Address)
	}
	if patch.City != nil {
		p.City = strings.TrimSpace(*patch.City)
	}
	if patch.Country != nil {
		p.Country = strings.TrimSpace(*patch.Country)
	}
	if patch.Latitude != nil {
		p.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		p.Longitude = patch.Longitude
	}
	if patch.ClearCoordinates {
		p.Latitude, p.Longitude = nil, nil
	}
	if patch.PricePerNight != nil {
		p.PricePerNight = *patch.PricePerNight
	}
	if patch.MaxGuests != nil {
		p.MaxGuests = *patch.MaxGuests
	}
	if patch.NumberOfRooms != nil {
		p.NumberOfRooms = *patch.NumberOfRooms
	}
	if patch.NumberOfBathrooms != nil {
		p.NumberOfBathrooms = *patch.NumberOfBathrooms
	}
}

func validatePlace(p *models.Place) error {
	switch {
	case p.Name == "" || len(p.Name) > 128:
		return invalidf("name is required and must be less than 128 characters")
	case p.Description == "":
		return invalidf("description is required")
	case p.Address == "":
		return invalidf("address is required")
	case p.City == "" || len(p.City) > 64:
		return invalidf("city is required and must be less than 64 characters")
	case p.Country == "" || len(p.Country) > 64:
		return invalidf("country is required and must be less than 64 characters")
	case p.PricePerNight <= 0:
		return invalidf("price per night must be greater than 0")
	case p.MaxGuests <= 0:
		return invalidf("maximum guests must be greater than 0")
	case p.NumberOfRooms <= 0:
		return invalidf("number of rooms must be greater than 0")
	case p.NumberOfBathrooms <= 0:
		return invalidf("number of bathrooms must be greater than 0")
	case p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90):
		return invalidf("latitude must be between -90 and 90")
	case p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180):
		return invalidf("longitude must be between -180 and 180")
	}
	return nil
}
