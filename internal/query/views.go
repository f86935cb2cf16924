package query

import (
	"time"

	"rental-marketplace/internal/models"
)

// ApplicationView is an application as shown to its tenant or manager.
type ApplicationView struct {
	models.Application
	Property *PropertyView   `json:"property"`
	Manager  *models.Manager `json:"manager"`
	Lease    *LeaseView      `json:"lease"`
}

// PropertyView is a property with its street address lifted out of the
// location.
type PropertyView struct {
	models.Property
	Address string `json:"address"`
}

// LeaseView is the tenant's latest lease on the property together with the
// next date rent falls due.
type LeaseView struct {
	models.Lease
	NextPaymentDate time.Time `json:"nextPaymentDate"`
}

func newPropertyView(p *models.Property) *PropertyView {
	if p == nil {
		return nil
	}
	v := &PropertyView{Property: *p}
	if p.Location != nil {
		v.Address = p.Location.Address
	}
	return v
}
