package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepare_RewritesNamedPlaceholders(t *testing.T) {
	stmt := prepare(`SELECT * FROM reservations WHERE guest_id = :guest_id AND start_date > :since OR guest_id = :guest_id LIMIT :limit;`)

	assert.Equal(t, `SELECT * FROM reservations WHERE guest_id = $1 AND start_date > $2 OR guest_id = $1 LIMIT $3;`, stmt.sql)
	assert.Equal(t, []string{"guest_id", "since", "limit"}, stmt.names)
}

func TestPrepare_IgnoresCastsAndLiterals(t *testing.T) {
	stmt := prepare(`SELECT ':not_a_param', avg(rating)::numeric FROM property_reviews WHERE property_id = :id`)

	assert.Equal(t, `SELECT ':not_a_param', avg(rating)::numeric FROM property_reviews WHERE property_id = $1`, stmt.sql)
	assert.Equal(t, []string{"id"}, stmt.names)
}

func TestStatement_Bind(t *testing.T) {
	stmt := prepare(`INSERT INTO users (name, email, password) VALUES (:name, :email, :password)`)

	values, err := stmt.bind(Args{"password": "hash", "email": "a@b.c", "name": "Ann"})
	require.NoError(t, err)
	assert.Equal(t, []any{"Ann", "a@b.c", "hash"}, values)
}

func TestStatement_BindMissing(t *testing.T) {
	stmt := prepare(`SELECT * FROM users WHERE id = :id`)

	_, err := stmt.bind(Args{"email": "a@b.c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":id")
}

func TestStaticStatements(t *testing.T) {
	tests := []struct {
		name  string
		stmt  statement
		names []string
	}{
		{name: "user by email", stmt: selectUserByEmail, names: []string{"email"}},
		{name: "user by id", stmt: selectUserByID, names: []string{"id"}},
		{name: "insert user", stmt: insertUser, names: []string{"name", "email", "password"}},
		{name: "guest reservations", stmt: selectGuestReservations, names: []string{"guest_id", "limit"}},
		{name: "insert property", stmt: insertProperty, names: []string{
			"owner_id", "title", "description", "thumbnail_photo_url", "cover_photo_url", "cost_per_night",
			"parking_spaces", "number_of_bathrooms", "number_of_bedrooms",
			"country", "street", "city", "province", "post_code",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.names, tt.stmt.names)
			assert.NotContains(t, tt.stmt.sql, ":"+tt.names[0])
		})
	}
}

func TestNewRepositories(t *testing.T) {
	repos := newRepositories(&fakeQuerier{})

	assert.NotNil(t, repos.User)
	assert.NotNil(t, repos.Property)
	assert.NotNil(t, repos.Reservation)
}
