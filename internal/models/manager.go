package models

// Manager owns properties and decides on applications for them.
// CognitoID is the identity-provider subject and is treated as opaque.
type Manager struct {
	CognitoID   string `gorm:"primaryKey;size:128" json:"cognitoId"`
	Name        string `gorm:"not null" json:"name"`
	Email       string `gorm:"not null" json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}
