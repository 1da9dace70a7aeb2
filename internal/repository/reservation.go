package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/repository/propertysearch"

	"github.com/jackc/pgx/v5"
)

var selectGuestReservations = prepare(`SELECT reservations.id AS reservation_id, reservations.start_date, reservations.end_date,
  ` + propertysearch.PropertyColumns + `,
  avg(property_reviews.rating) AS average_rating
FROM reservations
JOIN properties ON reservations.property_id = properties.id
JOIN property_reviews ON properties.id = property_reviews.property_id
WHERE reservations.guest_id = :guest_id
GROUP BY properties.id, reservations.id
ORDER BY reservations.start_date DESC
LIMIT :limit;`)

type ReservationRepository struct {
	db Querier
}

func NewReservationRepository(db Querier) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// ListForGuest returns up to limit reservations made by guestID, latest stay first.
// Only properties with at least one review are included.
func (r *ReservationRepository) ListForGuest(ctx context.Context, guestID int64, limit int) ([]model.GuestReservation, error) {
	rows, err := selectGuestReservations.query(ctx, r.db, Args{
		"guest_id": guestID,
		"limit":    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations for guest %d: %w", guestID, err)
	}

	reservations, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.GuestReservation])
	if err != nil {
		return nil, fmt.Errorf("failed to collect reservations: %w", err)
	}

	return reservations, nil
}
