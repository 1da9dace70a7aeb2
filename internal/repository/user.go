package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/sqlerr"

	"github.com/jackc/pgx/v5"
)

const usersTable = "users"

var (
	selectUserByEmail = prepare(`SELECT id, name, email, password
FROM users
WHERE email = :email`)

	selectUserByID = prepare(`SELECT id, name, email, password
FROM users
WHERE id = :id`)

	insertUser = prepare(`INSERT INTO users (name, email, password)
VALUES (:name, :email, :password)
RETURNING id, name, email, password`)
)

type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail returns the user registered with email. A missing user is an
// error matching pgx.ErrNoRows.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, selectUserByEmail, Args{"email": email})
}

// GetByID returns the user with id. A missing user is an error matching pgx.ErrNoRows.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, selectUserByID, Args{"id": id})
}

// Create inserts u and returns the stored row. u.Password must already be hashed.
func (r *UserRepository) Create(ctx context.Context, u model.NewUser) (*model.User, error) {
	rows, err := insertUser.query(ctx, r.db, Args{
		"name":     u.Name,
		"email":    u.Email,
		"password": u.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect inserted user: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) getOne(ctx context.Context, stmt statement, args Args) (*model.User, error) {
	rows, err := stmt.query(ctx, r.db, args)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.NoRows(usersTable, err)
		}
		return nil, fmt.Errorf("failed to collect user: %w", err)
	}

	return &user, nil
}
