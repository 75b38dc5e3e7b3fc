package models

type Place struct {
	Base
	Name              string   `gorm:"size:128;not null" json:"name"`
	Description       string   `gorm:"type:text;not null" json:"description"`
	Address           string   `gorm:"size:255;not null" json:"address"`
	City              string   `gorm:"size:64;not null;index" json:"city"`
	Country           string   `gorm:"size:64;not null" json:"country"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	PricePerNight     int      `gorm:"not null" json:"price_per_night"`
	MaxGuests         int      `gorm:"not null" json:"max_guests"`
	NumberOfRooms     int      `gorm:"not null" json:"number_of_rooms"`
	NumberOfBathrooms int      `gorm:"not null" json:"number_of_bathrooms"`
	OwnerID           string   `gorm:"type:uuid;not null;index" json:"owner_id"`

	Owner     *User        `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Photos    []PlacePhoto `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
	Reviews   []Review     `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Bookings  []Booking    `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"-"`
	Amenities []Amenity    `gorm:"many2many:place_amenities;constraint:OnDelete:CASCADE" json:"amenities,omitempty"`
}

// IsOwnedBy reports whether userID owns the place.
func (p *Place) IsOwnedBy(userID string) bool {
	return p.OwnerID == userID
}

// PlaceFilter narrows place listings. Zero values mean "no filter".
type PlaceFilter struct {
	City       string
	MinPrice   int
	MaxPrice   int
	AmenityIDs []string
}
