package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/repository/propertysearch"

	"github.com/jackc/pgx/v5"
)

var insertProperty = prepare(`INSERT INTO properties (
  owner_id, title, description, thumbnail_photo_url, cover_photo_url, cost_per_night,
  parking_spaces, number_of_bathrooms, number_of_bedrooms,
  country, street, city, province, post_code
)
VALUES (
  :owner_id, :title, :description, :thumbnail_photo_url, :cover_photo_url, :cost_per_night,
  :parking_spaces, :number_of_bathrooms, :number_of_bedrooms,
  :country, :street, :city, :province, :post_code
)
RETURNING ` + propertysearch.PropertyColumns)

type PropertyRepository struct {
	db Querier
}

func NewPropertyRepository(db Querier) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// Search returns the properties matching c, cheapest first, at most limit of them.
func (r *PropertyRepository) Search(ctx context.Context, c propertysearch.Criteria, limit int) ([]model.PropertyListing, error) {
	q := propertysearch.Build(c, limit)

	rows, err := r.db.Query(ctx, q.Text, q.Params...)
	if err != nil {
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}

	listings, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.PropertyListing])
	if err != nil {
		return nil, fmt.Errorf("failed to collect properties: %w", err)
	}

	return listings, nil
}

// Create inserts p and returns the stored row.
func (r *PropertyRepository) Create(ctx context.Context, p model.NewProperty) (*model.Property, error) {
	rows, err := insertProperty.query(ctx, r.db, Args{
		"owner_id":            p.OwnerID,
		"title":               p.Title,
		"description":         p.Description,
		"thumbnail_photo_url": p.ThumbnailPhotoURL,
		"cover_photo_url":     p.CoverPhotoURL,
		"cost_per_night":      p.CostPerNight,
		"parking_spaces":      p.ParkingSpaces,
		"number_of_bathrooms": p.NumberOfBathrooms,
		"number_of_bedrooms":  p.NumberOfBedrooms,
		"country":             p.Country,
		"street":              p.Street,
		"city":                p.City,
		"province":            p.Province,
		"post_code":           p.PostCode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert property: %w", err)
	}

	property, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Property])
	if err != nil {
		return nil, fmt.Errorf("failed to collect inserted property: %w", err)
	}

	return &property, nil
}
