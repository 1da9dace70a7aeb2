package handler

import (
	"context"
	"strings"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/service"
	"github.com/deppfellow/lightbnb/internal/validation"

	"github.com/labstack/echo/v4"
)

var errUnauthenticated = errs.NewUnauthorizedError("Unauthorized", false)

type userService interface {
	Register(ctx context.Context, in model.NewUser) (*service.Session, error)
	Authenticate(ctx context.Context, email, password string) (*service.Session, error)
	Get(ctx context.Context, id int64) (*model.User, error)
}

type UserHandler struct {
	Handler
	users userService
}

func NewUserHandler(s *server.Server, users userService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// bcrypt ignores password bytes past this limit.
const bcryptMaxBytes = 72

// RegisterRequest is the body of POST /users. The max=72 tag counts runes,
// so Validate also enforces the byte limit bcrypt imposes.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if err := validation.Struct(r); err != nil {
		return err
	}

	if len(r.Password) > bcryptMaxBytes {
		return validation.CustomValidationErrors{
			{Field: "password", Message: "must not exceed 72 bytes"},
		}
	}

	return nil
}

// Register serves POST /users and signs the new user in.
func (h *UserHandler) Register(c echo.Context, req *RegisterRequest) (*service.Session, error) {
	return h.users.Register(c.Request().Context(), model.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validation.Struct(r)
}

// Login serves POST /users/login.
func (h *UserHandler) Login(c echo.Context, req *LoginRequest) (*service.Session, error) {
	return h.users.Authenticate(c.Request().Context(), req.Email, req.Password)
}

type GetCurrentUserRequest struct{}

func (r *GetCurrentUserRequest) Validate() error {
	return nil
}

// GetCurrentUser serves GET /users/me.
func (h *UserHandler) GetCurrentUser(c echo.Context, _ *GetCurrentUserRequest) (*model.User, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}

	return h.users.Get(c.Request().Context(), userID)
}
