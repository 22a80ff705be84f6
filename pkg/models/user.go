package models

import "time"

// Passenger is a rider identity. The core trusts the id as the join key for
// every lookup and never re-validates credentials.
type Passenger struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Contact    string    `json:"contact"`
	Email      string    `json:"email"`
	Credential string    `json:"credential"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p *Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}

type Vehicle struct {
	LicensePlate string `json:"license_plate"`
	Model        string `json:"model"`
	Color        string `json:"color"`
}
