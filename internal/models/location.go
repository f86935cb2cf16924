package models

// Location is the street address a property sits at.
type Location struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Address    string `gorm:"not null" json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}
