package api

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
)

type HealthController struct {
	ping func(ctx context.Context) error
	log  logrus.FieldLogger
}

// NewHealthController reports healthy while ping succeeds.
func NewHealthController(ping func(ctx context.Context) error, log logrus.FieldLogger) *HealthController {
	return &HealthController{ping: ping, log: log}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.ping(r.Context()); err != nil {
		RespondErrorWithCode(c.log, w, http.StatusServiceUnavailable, ErrCodeInternal, "Database unreachable", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, HealthCheckResponse{Status: "OK"})
}
