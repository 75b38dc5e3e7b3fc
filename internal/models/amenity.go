package models

type Amenity struct {
	Base
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

// DefaultAmenities are seeded on first start.
var DefaultAmenities = []string{
	"WiFi", "Air conditioning", "Heating", "Kitchen",
	"TV", "Free parking", "Washing machine", "Swimming pool",
	"Hot tub", "Gym",
}
