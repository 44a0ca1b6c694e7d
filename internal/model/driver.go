package model

import "time"

// Driver represents a member of the driver roster.
type Driver struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Licenses  []string  `json:"licenses,omitempty"`
	Active    bool      `json:"active"`
}

// Customer represents a serviced customer location.
type Customer struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
}
