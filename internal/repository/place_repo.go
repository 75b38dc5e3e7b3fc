package repository

import (
	"context"

	"github.com/Eursukkul/hbnb-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, place *models.Place) error
	FindByID(ctx context.Context, id string) (*models.Place, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Place, error)
	FindAll(ctx context.Context, filter models.PlaceFilter) ([]models.Place, error)
	Update(ctx context.Context, tx *gorm.DB, place *models.Place) error
	ReplaceAmenities(ctx context.Context, tx *gorm.DB, place *models.Place, amenities []models.Amenity) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	GetDB() *gorm.DB
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *placeRepository) Create(ctx context.Context, tx *gorm.DB, place *models.Place) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(place).Error
}

// FindByID loads the place with owner, photos, amenities and reviews.
func (r *placeRepository) FindByID(ctx context.Context, id string) (*models.Place, error) {
	var place models.Place
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("is_primary DESC, created_at ASC") }).
		Preload("Amenities", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		First(&place, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &place, nil
}

// FindByIDForUpdate acquires a row-level lock on the place within the given
// transaction. Every booking state change for a place goes through this lock.
func (r *placeRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Place, error) {
	var place models.Place
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&place, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) FindAll(ctx context.Context, filter models.PlaceFilter) ([]models.Place, error) {
	var places []models.Place
	q := r.db.WithContext(ctx).Model(&models.Place{})
	if filter.City != "" {
		q = q.Where("city ILIKE ?", "%"+filter.City+"%")
	}
	if filter.MinPrice > 0 {
		q = q.Where("price_per_night >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price_per_night <= ?", filter.MaxPrice)
	}
	for _, amenityID := range filter.AmenityIDs {
		q = q.Where("EXISTS (SELECT 1 FROM place_amenities pa WHERE pa.place_id = places.id AND pa.amenity_id = ?)", amenityID)
	}
	err := q.
		Preload("Owner").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("is_primary DESC, created_at ASC") }).
		Preload("Amenities").
		Preload("Reviews").
		Order("created_at DESC").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) Update(ctx context.Context, tx *gorm.DB, place *models.Place) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Save(place).Error
}

func (r *placeRepository) ReplaceAmenities(ctx context.Context, tx *gorm.DB, place *models.Place, amenities []models.Amenity) error {
	return tx.WithContext(ctx).Model(place).Association("Amenities").Replace(amenities)
}

// Delete removes the place; photos, reviews and bookings go with it through
// ON DELETE CASCADE.
func (r *placeRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	place := &models.Place{Base: models.Base{ID: id}}
	if err := tx.WithContext(ctx).Model(place).Association("Amenities").Clear(); err != nil {
		return err
	}
	res := tx.WithContext(ctx).Delete(&models.Place{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
