// Package identity models who is asking. The identity provider is trusted:
// whatever the auth layer hands over is taken verbatim.
package identity

import (
	"strings"

	"rental-marketplace/internal/apperr"
)

// Role names as sent by clients.
const (
	RoleTenant  = "tenant"
	RoleManager = "manager"
)

// Requester is one of Tenant, Manager or Unauthenticated.
type Requester interface {
	requester()
	String() string
}

// Tenant is a requester acting as a renter.
type Tenant struct {
	ID string
}

// Manager is a requester acting as a property manager.
type Manager struct {
	ID string
}

// Unauthenticated carries no identity.
type Unauthenticated struct{}

func (Tenant) requester()          {}
func (Manager) requester()         {}
func (Unauthenticated) requester() {}

func (t Tenant) String() string        { return RoleTenant + ":" + t.ID }
func (m Manager) String() string       { return RoleManager + ":" + m.ID }
func (Unauthenticated) String() string { return "unauthenticated" }

// Parse builds a Requester from a user id and role. A missing id or role
// yields Unauthenticated; an unknown role is a validation error.
func Parse(userID, role string) (Requester, error) {
	userID = strings.TrimSpace(userID)
	role = strings.ToLower(strings.TrimSpace(role))
	if userID == "" || role == "" {
		return Unauthenticated{}, nil
	}

	switch role {
	case RoleTenant:
		return Tenant{ID: userID}, nil
	case RoleManager:
		return Manager{ID: userID}, nil
	default:
		return nil, apperr.Validation("parse requester", "unknown role "+role, nil)
	}
}
