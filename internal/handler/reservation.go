package handler

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/validation"

	"github.com/labstack/echo/v4"
)

type reservationService interface {
	ListForGuest(ctx context.Context, guestID int64, limit int) ([]model.GuestReservation, error)
}

type ReservationHandler struct {
	Handler
	reservations reservationService
}

func NewReservationHandler(s *server.Server, reservations reservationService) *ReservationHandler {
	return &ReservationHandler{
		Handler:      NewHandler(s),
		reservations: reservations,
	}
}

type ListReservationsRequest struct {
	Limit int `query:"limit" validate:"gte=0"`
}

func (r *ListReservationsRequest) Validate() error {
	return validation.Struct(r)
}

type ReservationsResponse struct {
	Reservations []model.GuestReservation `json:"reservations"`
}

// ListReservations serves GET /reservations for the authenticated guest.
func (h *ReservationHandler) ListReservations(c echo.Context, req *ListReservationsRequest) (*ReservationsResponse, error) {
	guestID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}

	reservations, err := h.reservations.ListForGuest(c.Request().Context(), guestID, req.Limit)
	if err != nil {
		return nil, err
	}

	return &ReservationsResponse{Reservations: reservations}, nil
}
