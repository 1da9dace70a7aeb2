package model

import "time"

// GuestReservation is a reservation joined with the reserved property and its rating.
type GuestReservation struct {
	ReservationID int64     `json:"reservation_id" db:"reservation_id"`
	StartDate     time.Time `json:"start_date" db:"start_date"`
	EndDate       time.Time `json:"end_date" db:"end_date"`
	PropertyListing
}
