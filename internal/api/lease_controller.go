package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"rental-marketplace/internal/apperr"
	"rental-marketplace/internal/metrics"
	"rental-marketplace/internal/query"
)

// LeaseLister lists the leases written for a property.
type LeaseLister interface {
	ListPropertyLeases(ctx context.Context, propertyID uint) ([]query.LeaseView, error)
}

type LeaseController struct {
	lister LeaseLister
	log    logrus.FieldLogger
}

func NewLeaseController(lister LeaseLister, log logrus.FieldLogger) *LeaseController {
	return &LeaseController{lister: lister, log: log}
}

// ListPropertyLeases handles GET /properties/{id}/leases.
func (c *LeaseController) ListPropertyLeases(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		HandleAppError(c.log, w, apperr.Validation("list property leases", "property id must be a positive integer", err))
		return
	}

	leases, err := c.lister.ListPropertyLeases(r.Context(), uint(id))
	if err != nil {
		metrics.RecordError("list_leases", apperr.KindOf(err).String())
		HandleAppError(c.log, w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, leases)
}
