package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/hbnb-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error)
	FindByPlace(ctx context.Context, tx *gorm.DB, placeID string, statuses ...models.BookingStatus) ([]models.Booking, error)
	FindByTenant(ctx context.Context, tenantID string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, ids []string, status models.BookingStatus) error
	CompleteFinished(ctx context.Context, today time.Time) ([]models.Booking, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).Preload("Place").First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByPlace lists the bookings of a place ordered by check-in. With no
// statuses every booking is returned.
func (r *bookingRepository) FindByPlace(ctx context.Context, tx *gorm.DB, placeID string, statuses ...models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	q := tx.WithContext(ctx).Where("place_id = ?", placeID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.Order("check_in ASC, created_at ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByTenant(ctx context.Context, tenantID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Place").
		Where("tenant_id = ?", tenantID).
		Order("check_in DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, ids []string, status models.BookingStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}

// CompleteFinished moves confirmed bookings whose check-out is on or before
// today to completed and returns them.
func (r *bookingRepository) CompleteFinished(ctx context.Context, today time.Time) ([]models.Booking, error) {
	var done []models.Booking
	err := r.db.WithContext(ctx).
		Model(&done).
		Clauses(clause.Returning{}).
		Where("status = ? AND check_out <= ?", models.StatusConfirmed, today).
		Update("status", models.StatusCompleted).Error
	if err != nil {
		return nil, err
	}
	return done, nil
}
