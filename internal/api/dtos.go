package api

import "time"

// CreateApplicationRequest is the body of POST /applications. A missing
// applicationDate means now.
type CreateApplicationRequest struct {
	PropertyID      uint       `json:"propertyId"      validate:"required"`
	TenantCognitoID string     `json:"tenantCognitoId" validate:"required"`
	ApplicationDate *time.Time `json:"applicationDate"`
	Name            string     `json:"name"            validate:"required"`
	Email           string     `json:"email"           validate:"required,email"`
	PhoneNumber     string     `json:"phoneNumber"     validate:"required"`
	Message         string     `json:"message"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type HealthCheckResponse struct {
	Status string `json:"status"`
}
