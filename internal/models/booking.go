package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ActiveStatuses block a new booking request for the same dates.
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking occupies the nights [CheckIn, CheckOut) of a place.
type Booking struct {
	Base
	PlaceID  string        `gorm:"type:uuid;not null;index:idx_bookings_place_status" json:"place_id"`
	TenantID string        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CheckIn  time.Time     `gorm:"type:date;not null" json:"check_in"`
	CheckOut time.Time     `gorm:"type:date;not null" json:"check_out"`
	Guests   int           `gorm:"not null" json:"guests"`
	Message  string        `gorm:"type:text" json:"message,omitempty"`
	Status   BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_bookings_place_status" json:"status"`

	Place  *Place `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
	Tenant *User  `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"tenant,omitempty"`
}

// Nights is the length of the stay.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// TotalPrice is nights times the nightly price of place.
func (b *Booking) TotalPrice(place *Place) int {
	if place == nil {
		return 0
	}
	return b.Nights() * place.PricePerNight
}
