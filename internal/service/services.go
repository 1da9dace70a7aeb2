// Package service holds the business rules between HTTP handlers and repositories.
//
// Services receive validated input, enforce row limits and credentials, and
// call repositories through small interfaces so they can be tested without a database.
package service

import (
	"time"

	"github.com/deppfellow/lightbnb/internal/lib/job"
	"github.com/deppfellow/lightbnb/internal/repository"
	"github.com/deppfellow/lightbnb/internal/server"
)

type Services struct {
	Token       *TokenService
	User        *UserService
	Property    *PropertyService
	Reservation *ReservationService
	Job         *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	limits := Limits{
		Default: s.Config.Search.DefaultLimit,
		Max:     s.Config.Search.MaxLimit,
	}
	tokens := NewTokenService(s.Config.Auth.SecretKey, time.Duration(s.Config.Auth.TokenTTL)*time.Minute)

	return &Services{
		Token:       tokens,
		User:        NewUserService(repos.User, tokens, s.Job, s.Logger),
		Property:    NewPropertyService(repos.Property, limits, s.Metrics, s.Logger),
		Reservation: NewReservationService(repos.Reservation, limits),
		Job:         s.Job,
	}
}
