package domain

import "time"

// Role is the authorization tier of a user. The admin check is an exact
// equality against RoleAdmin: any other value, present or future, is
// unauthorized.
type Role int

const (
	RoleStandard Role = 0
	RoleAdmin    Role = 1
)

// User is the domain model for shop customers and administrators.
// PasswordHash and AnswerHash are bcrypt digests and never leave the server.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	AnswerHash   string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
