package model

import "github.com/shopspring/decimal"

// Property is a row of the properties table. CostPerNight is in cents.
type Property struct {
	ID                int64   `json:"id" db:"id"`
	OwnerID           int64   `json:"owner_id" db:"owner_id"`
	Title             string  `json:"title" db:"title"`
	Description       *string `json:"description" db:"description"`
	ThumbnailPhotoURL string  `json:"thumbnail_photo_url" db:"thumbnail_photo_url"`
	CoverPhotoURL     string  `json:"cover_photo_url" db:"cover_photo_url"`
	CostPerNight      int64   `json:"cost_per_night" db:"cost_per_night"`
	ParkingSpaces     int32   `json:"parking_spaces" db:"parking_spaces"`
	NumberOfBathrooms int32   `json:"number_of_bathrooms" db:"number_of_bathrooms"`
	NumberOfBedrooms  int32   `json:"number_of_bedrooms" db:"number_of_bedrooms"`
	Country           string  `json:"country" db:"country"`
	Street            string  `json:"street" db:"street"`
	City              string  `json:"city" db:"city"`
	Province          string  `json:"province" db:"province"`
	PostCode          string  `json:"post_code" db:"post_code"`
	Active            bool    `json:"active" db:"active"`
}

// PropertyListing is a property together with the mean of its review ratings.
type PropertyListing struct {
	Property
	AverageRating decimal.Decimal `json:"average_rating" db:"average_rating"`
}

// NewProperty is the input for listing a new property.
type NewProperty struct {
	OwnerID           int64
	Title             string
	Description       string
	ThumbnailPhotoURL string
	CoverPhotoURL     string
	CostPerNight      int64
	ParkingSpaces     int32
	NumberOfBathrooms int32
	NumberOfBedrooms  int32
	Country           string
	Street            string
	City              string
	Province          string
	PostCode          string
}
