package domain

import "time"

// User is either party of a booking. Phone is the login identity.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Village      string    `json:"village,omitempty"`
	District     string    `json:"district,omitempty"`
	State        string    `json:"state,omitempty"`
	Rating       float64   `json:"rating"`
	TotalRatings int32     `json:"total_ratings"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
