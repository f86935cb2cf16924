package models

import "time"

// Property represents a rentable listing owned by a manager.
type Property struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	Description      string    `json:"description"`
	PricePerMonth    float64   `gorm:"type:decimal(10,2);not null" json:"pricePerMonth"`
	SecurityDeposit  float64   `gorm:"type:decimal(10,2);not null" json:"securityDeposit"`
	ManagerCognitoID string    `gorm:"size:128;not null;index" json:"managerCognitoId"`
	Manager          *Manager  `gorm:"foreignKey:ManagerCognitoID;references:CognitoID" json:"manager,omitempty"`
	LocationID       uint      `gorm:"not null" json:"locationId"`
	Location         *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	PostedDate       time.Time `gorm:"autoCreateTime" json:"postedDate"`
}
