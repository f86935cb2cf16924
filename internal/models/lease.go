package models

import "time"

// Lease is a fixed one-year rental agreement. Rent and Deposit are copied
// from the property when the lease is created and never change afterwards.
type Lease struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	StartDate       time.Time `gorm:"not null" json:"startDate"`
	EndDate         time.Time `gorm:"not null" json:"endDate"`
	Rent            float64   `gorm:"type:decimal(10,2);not null" json:"rent"`
	Deposit         float64   `gorm:"type:decimal(10,2);not null" json:"deposit"`
	PropertyID      uint      `gorm:"not null;index" json:"propertyId"`
	Property        *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	TenantCognitoID string    `gorm:"size:128;not null" json:"tenantCognitoId"`
	Tenant          *Tenant   `gorm:"foreignKey:TenantCognitoID;references:CognitoID" json:"tenant,omitempty"`
}
