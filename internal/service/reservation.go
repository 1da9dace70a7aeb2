package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
)

type reservationRepository interface {
	ListForGuest(ctx context.Context, guestID int64, limit int) ([]model.GuestReservation, error)
}

type ReservationService struct {
	repo   reservationRepository
	limits Limits
}

func NewReservationService(repo reservationRepository, limits Limits) *ReservationService {
	return &ReservationService{repo: repo, limits: limits}
}

// ListForGuest returns the guest's reservations, latest stay first.
func (s *ReservationService) ListForGuest(ctx context.Context, guestID int64, limit int) ([]model.GuestReservation, error) {
	reservations, err := s.repo.ListForGuest(ctx, guestID, s.limits.Apply(limit))
	if err != nil {
		return nil, err
	}
	if reservations == nil {
		reservations = []model.GuestReservation{}
	}
	return reservations, nil
}
