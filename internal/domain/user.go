package domain

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is an account known to the identity provider.
type User struct {
	ID           string    `json:"uid"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"displayName,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
