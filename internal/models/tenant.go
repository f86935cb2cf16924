package models

// Tenant represents a prospective or current renter.
type Tenant struct {
	CognitoID   string `gorm:"primaryKey;size:128" json:"cognitoId"`
	Name        string `gorm:"not null" json:"name"`
	Email       string `gorm:"not null" json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Tenancy links a tenant to a property they rent. The pair is the primary
// key, so a tenant is connected to a given property at most once.
type Tenancy struct {
	PropertyID      uint      `gorm:"primaryKey;autoIncrement:false" json:"propertyId"`
	TenantCognitoID string    `gorm:"primaryKey;size:128" json:"tenantCognitoId"`
	Property        *Property `gorm:"foreignKey:PropertyID" json:"-"`
	Tenant          *Tenant   `gorm:"foreignKey:TenantCognitoID;references:CognitoID" json:"-"`
}

func (Tenancy) TableName() string {
	return "property_tenants"
}
