package models

// User is an operator allowed to edit programs and run the kiln.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
