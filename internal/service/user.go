package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type userRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, u model.NewUser) (*model.User, error)
}

type welcomeMailer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name string) error
}

// Session is a user together with a freshly issued access token.
type Session struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type UserService struct {
	repo       userRepository
	tokens     *TokenService
	mailer     welcomeMailer
	logger     *zerolog.Logger
	bcryptCost int
}

func NewUserService(repo userRepository, tokens *TokenService, mailer welcomeMailer, logger *zerolog.Logger) *UserService {
	return &UserService{
		repo:       repo,
		tokens:     tokens,
		mailer:     mailer,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Register stores a new user with a hashed password and signs them in.
// A duplicate email surfaces as the repository's unique violation.
func (s *UserService) Register(ctx context.Context, in model.NewUser) (*Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	in.Password = string(hash)

	user, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	// Registration succeeds even when the queue is unavailable.
	if err := s.mailer.EnqueueWelcomeEmail(ctx, user.Email, user.Name); err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", user.ID).
			Msg("failed to enqueue welcome email")
	}

	return s.newSession(user)
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords produce the same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewInvalidCredentialsError()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errs.NewInvalidCredentialsError()
	}

	return s.newSession(user)
}

// Get returns the user with id.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) newSession(user *model.User) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
