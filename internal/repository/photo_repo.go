package repository

import (
	"context"

	"github.com/Eursukkul/hbnb-service/internal/models"
	"gorm.io/gorm"
)

type PhotoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, photo *models.PlacePhoto) error
	FindByID(ctx context.Context, id string) (*models.PlacePhoto, error)
	ClearPrimary(ctx context.Context, tx *gorm.DB, placeID, exceptID string) error
	Update(ctx context.Context, tx *gorm.DB, photo *models.PlacePhoto) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, tx *gorm.DB, photo *models.PlacePhoto) error {
	return tx.WithContext(ctx).Create(photo).Error
}

func (r *photoRepository) FindByID(ctx context.Context, id string) (*models.PlacePhoto, error) {
	var photo models.PlacePhoto
	if err := r.db.WithContext(ctx).First(&photo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// ClearPrimary unsets the primary flag on every photo of the place except exceptID.
func (r *photoRepository) ClearPrimary(ctx context.Context, tx *gorm.DB, placeID, exceptID string) error {
	q := tx.WithContext(ctx).
		Model(&models.PlacePhoto{}).
		Where("place_id = ? AND is_primary = ?", placeID, true)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	return q.Update("is_primary", false).Error
}

func (r *photoRepository) Update(ctx context.Context, tx *gorm.DB, photo *models.PlacePhoto) error {
	return tx.WithContext(ctx).Save(photo).Error
}

func (r *photoRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return tx.WithContext(ctx).Delete(&models.PlacePhoto{}, "id = ?", id).Error
}
