package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Eursukkul/hbnb-service/internal/models"
	"github.com/Eursukkul/hbnb-service/internal/repository"
	"gorm.io/gorm"
)

type PhotoInput struct {
	Filename  string
	URL       string
	Caption   string
	IsPrimary bool
}

type PhotoPatch struct {
	Filename  *string
	URL       *string
	Caption   *string
	IsPrimary *bool
}

type PhotoService interface {
	AddPhoto(ctx context.Context, placeID, actorID string, in PhotoInput) (*models.PlacePhoto, error)
	UpdatePhoto(ctx context.Context, placeID, photoID, actorID string, patch PhotoPatch) (*models.PlacePhoto, error)
	DeletePhoto(ctx context.Context, placeID, photoID, actorID string) error
}

type photoService struct {
	tx        repository.Transactor
	placeRepo repository.PlaceRepository
	photoRepo repository.PhotoRepository
}

func NewPhotoService(tx repository.Transactor, placeRepo repository.PlaceRepository, photoRepo repository.PhotoRepository) PhotoService {
	return &photoService{tx: tx, placeRepo: placeRepo, photoRepo: photoRepo}
}

func (s *photoService) AddPhoto(ctx context.Context, placeID, actorID string, in PhotoInput) (*models.PlacePhoto, error) {
	photo := &models.PlacePhoto{
		Filename:  strings.TrimSpace(in.Filename),
		URL:       strings.TrimSpace(in.URL),
		Caption:   in.Caption,
		IsPrimary: in.IsPrimary,
		PlaceID:   placeID,
	}
	if err := validatePhoto(photo); err != nil {
		return nil, err
	}

	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.lockOwnedPlace(ctx, tx, placeID, actorID); err != nil {
			return err
		}
		// The one-primary index is not deferrable: clear before inserting.
		if photo.IsPrimary {
			if err := s.photoRepo.ClearPrimary(ctx, tx, placeID, ""); err != nil {
				return fmt.Errorf("clear primary photo: %w", err)
			}
		}
		if err := s.photoRepo.Create(ctx, tx, photo); err != nil {
			return fmt.Errorf("create photo: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *photoService) UpdatePhoto(ctx context.Context, placeID, photoID, actorID string, patch PhotoPatch) (*models.PlacePhoto, error) {
	var result *models.PlacePhoto

	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.lockOwnedPlace(ctx, tx, placeID, actorID); err != nil {
			return err
		}
		photo, err := s.findPhoto(ctx, placeID, photoID)
		if err != nil {
			return err
		}

		if patch.Filename != nil {
			photo.Filename = strings.TrimSpace(*patch.Filename)
		}
		if patch.URL != nil {
			photo.URL = strings.TrimSpace(*patch.URL)
		}
		if patch.Caption != nil {
			photo.Caption = *patch.Caption
		}
		if patch.IsPrimary != nil {
			photo.IsPrimary = *patch.IsPrimary
		}
		if err := validatePhoto(photo); err != nil {
			return err
		}

		if photo.IsPrimary {
			if err := s.photoRepo.ClearPrimary(ctx, tx, placeID, photo.ID); err != nil {
				return fmt.Errorf("clear primary photo: %w", err)
			}
		}
		if err := s.photoRepo.Update(ctx, tx, photo); err != nil {
			return fmt.Errorf("update photo: %w", err)
		}
		result = photo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *photoService) DeletePhoto(ctx context.Context, placeID, photoID, actorID string) error {
	return s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.lockOwnedPlace(ctx, tx, placeID, actorID); err != nil {
			return err
		}
		if _, err := s.findPhoto(ctx, placeID, photoID); err != nil {
			return err
		}
		if err := s.photoRepo.Delete(ctx, tx, photoID); err != nil {
			return fmt.Errorf("delete photo: %w", err)
		}
		return nil
	})
}

// lockOwnedPlace serializes photo changes per place.
func (s *photoService) lockOwnedPlace(ctx context.Context, tx *gorm.DB, placeID, actorID string) error {
	place, err := s.placeRepo.FindByIDForUpdate(ctx, tx, placeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrPlaceNotFound
		}
		return fmt.Errorf("lock place: %w", err)
	}
	if !place.IsOwnedBy(actorID) {
		return ErrNotPlaceOwner
	}
	return nil
}

func (s *photoService) findPhoto(ctx context.Context, placeID, photoID string) (*models.PlacePhoto, error) {
	photo, err := s.photoRepo.FindByID(ctx, photoID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("get photo: %w", err)
	}
	if photo.PlaceID != placeID {
		return nil, ErrPhotoNotFound
	}
	return photo, nil
}

func validatePhoto(p *models.PlacePhoto) error {
	switch {
	case p.Filename == "":
		return invalidf("filename is required")
	case p.URL == "":
		return invalidf("url is required")
	case len(p.Caption) > 255:
		return invalidf("caption must be less than 255 characters")
	}
	return nil
}
