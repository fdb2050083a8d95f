package domain

import "time"

// User is a registered storefront account. Username mirrors Email.
type User struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Address       string    `json:"address"`
	ContactNumber string    `json:"contactNumber"`
	IsAdmin       bool      `json:"isAdmin"`
	CreatedAt     time.Time `json:"createdAt"`
}
