// Package handler is the HTTP layer.
//
// Handlers bind and validate request DTOs through the typed Handle pipeline,
// call the service layer and return JSON. Errors are left to the global
// error handler.
package handler

import (
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/service"
)

// StaticDir holds openapi.html and openapi.json, relative to the working directory.
const StaticDir = "static"

type Handlers struct {
	Health      *HealthHandler
	OpenAPI     *OpenAPIHandler
	Property    *PropertyHandler
	Reservation *ReservationHandler
	User        *UserHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(s),
		OpenAPI:     NewOpenAPIHandler(s, StaticDir),
		Property:    NewPropertyHandler(s, services.Property),
		Reservation: NewReservationHandler(s, services.Reservation),
		User:        NewUserHandler(s, services.User),
	}
}
