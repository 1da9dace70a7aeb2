package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/repository/propertysearch"
	"github.com/deppfellow/lightbnb/internal/sqlerr"

	"github.com/jackc/pgx/v5"
)

type mockUserRepository struct {
	users map[int64]*model.User
	err   error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*model.User)}
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sqlerr.NoRows("users", pgx.ErrNoRows)
}

func (m *mockUserRepository) GetByID(_ context.Context, id int64) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, sqlerr.NoRows("users", pgx.ErrNoRows)
	}
	return u, nil
}

func (m *mockUserRepository) Create(_ context.Context, in model.NewUser) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == in.Email {
			return nil, fmt.Errorf("duplicate email %s", in.Email)
		}
	}
	u := &model.User{ID: int64(len(m.users) + 1), Name: in.Name, Email: in.Email, Password: in.Password}
	m.users[u.ID] = u
	return u, nil
}

type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) EnqueueWelcomeEmail(_ context.Context, to, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

type mockPropertyRepository struct {
	criteria propertysearch.Criteria
	limit    int
	listings []model.PropertyListing
	created  model.NewProperty
	err      error
}

func (m *mockPropertyRepository) Search(_ context.Context, c propertysearch.Criteria, limit int) ([]model.PropertyListing, error) {
	m.criteria, m.limit = c, limit
	return m.listings, m.err
}

func (m *mockPropertyRepository) Create(_ context.Context, p model.NewProperty) (*model.Property, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = p
	return &model.Property{ID: 1, OwnerID: p.OwnerID, Title: p.Title, CostPerNight: p.CostPerNight, Active: true}, nil
}

type mockObserver struct {
	filters []string
	results int
	calls   int
}

func (m *mockObserver) ObserveSearch(filters []string, results int) {
	m.filters, m.results = filters, results
	m.calls++
}

type mockReservationRepository struct {
	guestID int64
	limit   int
	rows    []model.GuestReservation
}

func (m *mockReservationRepository) ListForGuest(_ context.Context, guestID int64, limit int) ([]model.GuestReservation, error) {
	m.guestID, m.limit = guestID, limit
	return m.rows, nil
}
