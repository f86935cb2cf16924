package models

import (
	"fmt"
	"time"
)

// ApplicationStatus is the lifecycle state of a rental application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusApproved ApplicationStatus = "Approved"
	StatusDenied   ApplicationStatus = "Denied"
)

// ParseApplicationStatus converts the wire form ("Pending", "Approved",
// "Denied") to a status.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(s) {
	case StatusPending, StatusApproved, StatusDenied:
		return ApplicationStatus(s), nil
	default:
		return "", fmt.Errorf("invalid application status: %q", s)
	}
}

// Terminal reports whether no further status change is allowed.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusApproved || s == StatusDenied
}

// Application is a tenant's request to rent a property.
type Application struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	ApplicationDate time.Time         `gorm:"not null" json:"applicationDate"`
	Status          ApplicationStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	Name            string            `gorm:"not null" json:"name"`
	Email           string            `gorm:"not null" json:"email"`
	PhoneNumber     string            `gorm:"not null" json:"phoneNumber"`
	Message         string            `json:"message"`
	PropertyID      uint              `gorm:"not null;index" json:"propertyId"`
	Property        *Property         `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	TenantCognitoID string            `gorm:"size:128;not null;index" json:"tenantCognitoId"`
	Tenant          *Tenant           `gorm:"foreignKey:TenantCognitoID;references:CognitoID" json:"tenant,omitempty"`
	LeaseID         *uint             `gorm:"uniqueIndex" json:"leaseId"`
	Lease           *Lease            `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}
