package models

import "time"

// TattooService is a bookable service shown on the public site.
type TattooService struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title" binding:"required"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	PriceFrom   *float64  `bson:"price_from,omitempty" json:"price_from,omitempty" binding:"omitempty,gte=0"`
	DurationMin *int      `bson:"duration_min,omitempty" json:"duration_min,omitempty" binding:"omitempty,gte=0"`
	IsActive    *bool     `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Active defaults to true when the flag was omitted.
func (s TattooService) Active() bool {
	return s.IsActive == nil || *s.IsActive
}

// PortfolioItem is a finished piece shown in the gallery.
type PortfolioItem struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title" binding:"required"`
	ImageURL    string    `bson:"image_url" json:"image_url" binding:"required,url"`
	Style       string    `bson:"style,omitempty" json:"style,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Featured    bool      `bson:"featured" json:"featured"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
