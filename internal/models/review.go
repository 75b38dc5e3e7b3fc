package models

type Review struct {
	Base
	Text    string `gorm:"type:text;not null" json:"text"`
	Rating  int    `gorm:"not null" json:"rating"`
	UserID  string `gorm:"type:uuid;not null;index" json:"user_id"`
	PlaceID string `gorm:"type:uuid;not null;index" json:"place_id"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// AverageRating rounds to one decimal, 0 when there are no reviews.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	avg := float64(total) / float64(len(reviews))
	return float64(int(avg*10+0.5)) / 10
}
