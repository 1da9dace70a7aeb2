package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/repository/propertysearch"

	"github.com/rs/zerolog"
)

type propertyRepository interface {
	Search(ctx context.Context, c propertysearch.Criteria, limit int) ([]model.PropertyListing, error)
	Create(ctx context.Context, p model.NewProperty) (*model.Property, error)
}

type searchObserver interface {
	ObserveSearch(filters []string, results int)
}

type PropertyService struct {
	repo     propertyRepository
	limits   Limits
	observer searchObserver
	logger   *zerolog.Logger
}

func NewPropertyService(repo propertyRepository, limits Limits, observer searchObserver, logger *zerolog.Logger) *PropertyService {
	return &PropertyService{
		repo:     repo,
		limits:   limits,
		observer: observer,
		logger:   logger,
	}
}

// Search returns properties matching c, cheapest first. limit is resolved
// with the configured Limits before it reaches the query.
func (s *PropertyService) Search(ctx context.Context, c propertysearch.Criteria, limit int) ([]model.PropertyListing, error) {
	limit = s.limits.Apply(limit)

	listings, err := s.repo.Search(ctx, c, limit)
	if err != nil {
		return nil, err
	}

	filters := c.Filters()
	s.observer.ObserveSearch(filters, len(listings))

	s.logger.Debug().
		Strs("filters", filters).
		Int("limit", limit).
		Int("results", len(listings)).
		Msg("property search")

	if listings == nil {
		listings = []model.PropertyListing{}
	}
	return listings, nil
}

// Create lists a new property owned by ownerID.
func (s *PropertyService) Create(ctx context.Context, ownerID int64, in model.NewProperty) (*model.Property, error) {
	in.OwnerID = ownerID
	return s.repo.Create(ctx, in)
}
