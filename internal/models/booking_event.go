package models

import "time"

const (
	EventBookingRequested = "requested"
	EventBookingConfirmed = "confirmed"
	EventBookingCancelled = "cancelled"
	EventBookingCompleted = "completed"
)

// RoutingKey is the topic a booking event of the given type is published under.
func RoutingKey(eventType string) string {
	return "booking." + eventType
}

// BookingEvent is one entry of a booking's history, written by the history consumer.
type BookingEvent struct {
	ID         string        `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID  string        `gorm:"type:uuid;not null;index" json:"booking_id"`
	PlaceID    string        `gorm:"type:uuid;not null" json:"place_id"`
	TenantID   string        `gorm:"type:uuid;not null" json:"tenant_id"`
	Type       string        `gorm:"size:40;not null" json:"type"`
	Status     BookingStatus `gorm:"type:varchar(20);not null" json:"status"`
	OccurredAt time.Time     `gorm:"not null" json:"occurred_at"`
	CreatedAt  time.Time     `json:"created_at"`
}

// NewBookingEvent snapshots b as an event of the given type.
func NewBookingEvent(id, eventType string, b *Booking, at time.Time) BookingEvent {
	return BookingEvent{
		ID:         id,
		BookingID:  b.ID,
		PlaceID:    b.PlaceID,
		TenantID:   b.TenantID,
		Type:       eventType,
		Status:     b.Status,
		OccurredAt: at,
	}
}
