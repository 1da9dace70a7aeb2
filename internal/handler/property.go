package handler

import (
	"context"
	"strconv"

	"github.com/deppfellow/lightbnb/internal/middleware"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/repository/propertysearch"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type propertyService interface {
	Search(ctx context.Context, c propertysearch.Criteria, limit int) ([]model.PropertyListing, error)
	Create(ctx context.Context, ownerID int64, in model.NewProperty) (*model.Property, error)
}

type PropertyHandler struct {
	Handler
	properties propertyService
}

func NewPropertyHandler(s *server.Server, properties propertyService) *PropertyHandler {
	return &PropertyHandler{
		Handler:    NewHandler(s),
		properties: properties,
	}
}

// SearchPropertiesRequest is the query string of GET /properties.
// Prices are whole currency units; only a pair of bounds filters by price.
type SearchPropertiesRequest struct {
	City                 string `query:"city" validate:"max=255"`
	OwnerID              string `query:"owner_id" validate:"omitempty,numeric"`
	MinimumPricePerNight string `query:"minimum_price_per_night" validate:"omitempty,decimal"`
	MaximumPricePerNight string `query:"maximum_price_per_night" validate:"omitempty,decimal"`
	MinimumRating        string `query:"minimum_rating" validate:"omitempty,decimal"`
	Limit                int    `query:"limit" validate:"gte=0"`
}

func (r *SearchPropertiesRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	_, err := r.Criteria()
	return err
}

// Criteria converts the query string into search criteria. Empty parameters
// are left unset.
func (r *SearchPropertiesRequest) Criteria() (propertysearch.Criteria, error) {
	var c propertysearch.Criteria
	var problems validation.CustomValidationErrors

	if r.City != "" {
		city := r.City
		c.City = &city
	}

	if r.OwnerID != "" {
		ownerID, err := strconv.ParseInt(r.OwnerID, 10, 64)
		if err != nil {
			problems = append(problems, validation.CustomValidationError{Field: "owner_id", Message: "must be an integer"})
		} else {
			c.OwnerID = &ownerID
		}
	}

	decimals := []struct {
		field string
		raw   string
		dst   **decimal.Decimal
	}{
		{"minimum_price_per_night", r.MinimumPricePerNight, &c.MinimumPricePerNight},
		{"maximum_price_per_night", r.MaximumPricePerNight, &c.MaximumPricePerNight},
		{"minimum_rating", r.MinimumRating, &c.MinimumRating},
	}
	for _, d := range decimals {
		if d.raw == "" {
			continue
		}
		v, err := decimal.NewFromString(d.raw)
		if err != nil {
			problems = append(problems, validation.CustomValidationError{Field: d.field, Message: "must be a decimal number"})
			continue
		}
		*d.dst = &v
	}

	if len(problems) > 0 {
		return propertysearch.Criteria{}, problems
	}
	return c, nil
}

type PropertiesResponse struct {
	Properties []model.PropertyListing `json:"properties"`
}

// SearchProperties serves GET /properties.
func (h *PropertyHandler) SearchProperties(c echo.Context, req *SearchPropertiesRequest) (*PropertiesResponse, error) {
	criteria, err := req.Criteria()
	if err != nil {
		return nil, err
	}

	listings, err := h.properties.Search(c.Request().Context(), criteria, req.Limit)
	if err != nil {
		return nil, err
	}

	return &PropertiesResponse{Properties: listings}, nil
}

// CreatePropertyRequest is the body of POST /properties. CostPerNight is in
// currency units and may carry at most two decimal places.
type CreatePropertyRequest struct {
	Title             string          `json:"title" validate:"required,max=255"`
	Description       string          `json:"description"`
	ThumbnailPhotoURL string          `json:"thumbnail_photo_url" validate:"required,url,max=255"`
	CoverPhotoURL     string          `json:"cover_photo_url" validate:"required,url,max=255"`
	CostPerNight      decimal.Decimal `json:"cost_per_night" validate:"gt=0"`
	ParkingSpaces     int32           `json:"parking_spaces" validate:"gte=0"`
	NumberOfBathrooms int32           `json:"number_of_bathrooms" validate:"gte=0"`
	NumberOfBedrooms  int32           `json:"number_of_bedrooms" validate:"gte=0"`
	Country           string          `json:"country" validate:"required,max=255"`
	Street            string          `json:"street" validate:"required,max=255"`
	City              string          `json:"city" validate:"required,max=255"`
	Province          string          `json:"province" validate:"required,max=255"`
	PostCode          string          `json:"post_code" validate:"required,max=255"`
}

var priceScale = decimal.NewFromInt(propertysearch.PriceScale)

func (r *CreatePropertyRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	if !r.CostPerNight.Mul(priceScale).IsInteger() {
		return validation.CustomValidationErrors{
			{Field: "cost_per_night", Message: "must have at most two decimal places"},
		}
	}

	return nil
}

func (r *CreatePropertyRequest) toModel() model.NewProperty {
	return model.NewProperty{
		Title:             r.Title,
		Description:       r.Description,
		ThumbnailPhotoURL: r.ThumbnailPhotoURL,
		CoverPhotoURL:     r.CoverPhotoURL,
		CostPerNight:      r.CostPerNight.Mul(priceScale).IntPart(),
		ParkingSpaces:     r.ParkingSpaces,
		NumberOfBathrooms: r.NumberOfBathrooms,
		NumberOfBedrooms:  r.NumberOfBedrooms,
		Country:           r.Country,
		Street:            r.Street,
		City:              r.City,
		Province:          r.Province,
		PostCode:          r.PostCode,
	}
}

// CreateProperty serves POST /properties. The authenticated user becomes the owner.
func (h *PropertyHandler) CreateProperty(c echo.Context, req *CreatePropertyRequest) (*model.Property, error) {
	ownerID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}

	return h.properties.Create(c.Request().Context(), ownerID, req.toModel())
}

func currentUserID(c echo.Context) (int64, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return 0, errUnauthenticated
	}
	return userID, nil
}
