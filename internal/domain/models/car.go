package models

import "time"

// CarCategory is the closed set of vehicle classes offered.
type CarCategory string

const (
	CategorySedan   CarCategory = "sedan"
	CategorySUV     CarCategory = "suv"
	CategoryLuxury  CarCategory = "luxury"
	CategoryVintage CarCategory = "vintage"
	CategoryOther   CarCategory = "other"
)

func (c CarCategory) Valid() bool {
	switch c {
	case CategorySedan, CategorySUV, CategoryLuxury, CategoryVintage, CategoryOther:
		return true
	}
	return false
}

// Car is a rentable vehicle offering.
type Car struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Category  CarCategory `json:"category"`
	BasePrice int64       `json:"base_price"`
	PerKm     int64       `json:"per_km"`
	ImageURL  *string     `json:"image_url"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
}

// CarSummary is the customer-facing subset echoed with an estimate.
type CarSummary struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Category  CarCategory `json:"category"`
	BasePrice int64       `json:"base_price"`
	PerKm     int64       `json:"per_km"`
	ImageURL  *string     `json:"image_url"`
}

func (c Car) Summary() CarSummary {
	return CarSummary{
		ID:        c.ID,
		Name:      c.Name,
		Category:  c.Category,
		BasePrice: c.BasePrice,
		PerKm:     c.PerKm,
		ImageURL:  c.ImageURL,
	}
}
