package users

import "time"

const (
	UserTypeUser  = "user"
	UserTypeAdmin = "admin"
)

// User is the identity record. PasswordHash is a one-way bcrypt hash; the
// plaintext never leaves the service layer. Version counts every mutation,
// including logins.
type User struct {
	ID           string
	Email        string
	Username     string
	Name         string
	PasswordHash string
	UserType     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  time.Time
	Version      int64
}
