package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Eursukkul/hbnb-service/internal/models"
	"github.com/Eursukkul/hbnb-service/internal/repository"
)

type AmenityService interface {
	CreateAmenity(ctx context.Context, name string) (*models.Amenity, error)
	GetAmenity(ctx context.Context, id string) (*models.Amenity, error)
	ListAmenities(ctx context.Context) ([]models.Amenity, error)
	UpdateAmenity(ctx context.Context, id, name string) (*models.Amenity, error)
	DeleteAmenity(ctx context.Context, id string) error
	SeedDefaults(ctx context.Context) error
}

type amenityService struct {
	repo repository.AmenityRepository
}

func NewAmenityService(repo repository.AmenityRepository) AmenityService {
	return &amenityService{repo: repo}
}

func (s *amenityService) CreateAmenity(ctx context.Context, name string) (*models.Amenity, error) {
	name, err := amenityName(name)
	if err != nil {
		return nil, err
	}

	amenity := &models.Amenity{Name: name}
	if err := s.repo.Create(ctx, amenity); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAmenityExists
		}
		return nil, fmt.Errorf("create amenity: %w", err)
	}
	return amenity, nil
}

func (s *amenityService) GetAmenity(ctx context.Context, id string) (*models.Amenity, error) {
	amenity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAmenityNotFound
		}
		return nil, fmt.Errorf("get amenity: %w", err)
	}
	return amenity, nil
}

func (s *amenityService) ListAmenities(ctx context.Context) ([]models.Amenity, error) {
	return s.repo.FindAll(ctx)
}

func (s *amenityService) UpdateAmenity(ctx context.Context, id, name string) (*models.Amenity, error) {
	name, err := amenityName(name)
	if err != nil {
		return nil, err
	}

	amenity, err := s.GetAmenity(ctx, id)
	if err != nil {
		return nil, err
	}
	amenity.Name = name

	if err := s.repo.Update(ctx, amenity); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAmenityExists
		}
		return nil, fmt.Errorf("update amenity: %w", err)
	}
	return amenity, nil
}

func (s *amenityService) DeleteAmenity(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrAmenityNotFound
		}
		return fmt.Errorf("delete amenity: %w", err)
	}
	return nil
}

func (s *amenityService) SeedDefaults(ctx context.Context) error {
	return s.repo.Seed(ctx, models.DefaultAmenities)
}

func amenityName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 50 {
		return "", invalidf("amenity name is required and must be less than 50 characters")
	}
	return name, nil
}
