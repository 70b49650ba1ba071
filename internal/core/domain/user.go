package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// User models an account managed through the admin panel. PasswordHash is a
// bcrypt hash of the SHA-256 digest submitted by the client; the plaintext
// password never reaches this service.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the two known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleClient
}
