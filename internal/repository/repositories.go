package repository

import (
	"github.com/deppfellow/lightbnb/internal/server"
)

// Repositories holds every repository, all sharing the server's connection pool.
type Repositories struct {
	User        *UserRepository
	Property    *PropertyRepository
	Reservation *ReservationRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return newRepositories(s.DB.Pool)
}

func newRepositories(db Querier) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Property:    NewPropertyRepository(db),
		Reservation: NewReservationRepository(db),
	}
}
