package models

type PlacePhoto struct {
	Base
	Filename  string `gorm:"size:255;not null" json:"filename"`
	URL       string `gorm:"size:255;not null" json:"url"`
	Caption   string `gorm:"size:255" json:"caption,omitempty"`
	IsPrimary bool   `gorm:"not null;default:false" json:"is_primary"`
	PlaceID   string `gorm:"type:uuid;not null;index" json:"place_id"`
}
