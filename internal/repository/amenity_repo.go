package repository

import (
	"context"

	"github.com/Eursukkul/hbnb-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AmenityRepository interface {
	Create(ctx context.Context, amenity *models.Amenity) error
	FindAll(ctx context.Context) ([]models.Amenity, error)
	FindByID(ctx context.Context, id string) (*models.Amenity, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Amenity, error)
	FindByName(ctx context.Context, name string) (*models.Amenity, error)
	Update(ctx context.Context, amenity *models.Amenity) error
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context, names []string) error
}

type amenityRepository struct {
	db *gorm.DB
}

func NewAmenityRepository(db *gorm.DB) AmenityRepository {
	return &amenityRepository{db: db}
}

func (r *amenityRepository) Create(ctx context.Context, amenity *models.Amenity) error {
	return r.db.WithContext(ctx).Create(amenity).Error
}

func (r *amenityRepository) FindAll(ctx context.Context) ([]models.Amenity, error) {
	var amenities []models.Amenity
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&amenities).Error; err != nil {
		return nil, err
	}
	return amenities, nil
}

func (r *amenityRepository) FindByID(ctx context.Context, id string) (*models.Amenity, error) {
	var amenity models.Amenity
	if err := r.db.WithContext(ctx).First(&amenity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &amenity, nil
}

func (r *amenityRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Amenity, error) {
	var amenities []models.Amenity
	if len(ids) == 0 {
		return amenities, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&amenities).Error; err != nil {
		return nil, err
	}
	return amenities, nil
}

func (r *amenityRepository) FindByName(ctx context.Context, name string) (*models.Amenity, error) {
	var amenity models.Amenity
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&amenity).Error; err != nil {
		return nil, err
	}
	return &amenity, nil
}

func (r *amenityRepository) Update(ctx context.Context, amenity *models.Amenity) error {
	return r.db.WithContext(ctx).Save(amenity).Error
}

func (r *amenityRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Amenity{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Seed inserts the named amenities, leaving existing ones untouched.
func (r *amenityRepository) Seed(ctx context.Context, names []string) error {
	amenities := make([]models.Amenity, len(names))
	for i, n := range names {
		amenities[i] = models.Amenity{Name: n}
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&amenities).Error
}
