package repository

import (
	"context"

	"github.com/Eursukkul/hbnb-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingEventRepository interface {
	// Record stores ev once; redelivered messages with the same id are ignored.
	Record(ctx context.Context, ev *models.BookingEvent) error
	FindByBooking(ctx context.Context, bookingID string) ([]models.BookingEvent, error)
}

type bookingEventRepository struct {
	db *gorm.DB
}

func NewBookingEventRepository(db *gorm.DB) BookingEventRepository {
	return &bookingEventRepository{db: db}
}

func (r *bookingEventRepository) Record(ctx context.Context, ev *models.BookingEvent) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(ev).Error
}

func (r *bookingEventRepository) FindByBooking(ctx context.Context, bookingID string) ([]models.BookingEvent, error) {
	var events []models.BookingEvent
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("occurred_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
