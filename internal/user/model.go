package user

import "time"

// User represents a registered shopper. PasswordHash stays inside this
// package and the auth flow; it is never serialized into a response.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Address is the shipping address captured at registration.
type Address struct {
	ID         string
	UserID     string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}
