package model

// User is a row of the users table.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
}

// NewUser is the input for creating a user. Password must already be hashed.
type NewUser struct {
	Name     string
	Email    string
	Password string
}
