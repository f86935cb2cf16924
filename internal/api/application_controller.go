package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"rental-marketplace/internal/apperr"
	"rental-marketplace/internal/identity"
	"rental-marketplace/internal/lifecycle"
	"rental-marketplace/internal/metrics"
	"rental-marketplace/internal/models"
	"rental-marketplace/internal/query"
)

var validate = validator.New()

// ApplicationWriter creates applications and records decisions.
type ApplicationWriter interface {
	CreateApplication(ctx context.Context, in lifecycle.CreateApplicationInput) (*models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id uint, status models.ApplicationStatus) (*models.Application, error)
}

// ApplicationLister lists applications for a requester.
type ApplicationLister interface {
	ListApplications(ctx context.Context, r identity.Requester) ([]query.ApplicationView, error)
}

type ApplicationController struct {
	writer ApplicationWriter
	lister ApplicationLister
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewApplicationController(writer ApplicationWriter, lister ApplicationLister, log logrus.FieldLogger) *ApplicationController {
	return &ApplicationController{writer: writer, lister: lister, log: log, now: time.Now}
}

// ListApplications handles GET /applications?userId=&userType=.
func (c *ApplicationController) ListApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	requester, err := identity.Parse(q.Get("userId"), q.Get("userType"))
	if err != nil {
		metrics.RecordError("list", apperr.KindOf(err).String())
		HandleAppError(c.log, w, err)
		return
	}
	if _, ok := requester.(identity.Unauthenticated); ok {
		c.log.WithField("remote", r.RemoteAddr).Warn("listing applications without a requester identity")
	}

	views, err := c.lister.ListApplications(r.Context(), requester)
	if err != nil {
		metrics.RecordError("list", apperr.KindOf(err).String())
		HandleAppError(c.log, w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, views)
}

// CreateApplication handles POST /applications.
func (c *ApplicationController) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var req CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondErrorWithCode(c.log, w, http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid payload", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		RespondErrorWithCode(c.log, w, http.StatusBadRequest, ErrCodeValidation, "Invalid application fields", err)
		return
	}

	appliedAt := c.now()
	if req.ApplicationDate != nil {
		appliedAt = *req.ApplicationDate
	}

	app, err := c.writer.CreateApplication(r.Context(), lifecycle.CreateApplicationInput{
		PropertyID:      req.PropertyID,
		TenantCognitoID: req.TenantCognitoID,
		ApplicationDate: appliedAt,
		Name:            req.Name,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Message:         req.Message,
	})
	if err != nil {
		metrics.RecordError("create", apperr.KindOf(err).String())
		HandleAppError(c.log, w, err)
		return
	}

	metrics.RecordApplicationCreated()
	c.log.WithFields(logrus.Fields{
		"application_id": app.ID,
		"property_id":    app.PropertyID,
	}).Info("application created")
	RespondWithJSON(w, http.StatusCreated, app)
}

// UpdateApplicationStatus handles PUT /applications/{id}/status.
func (c *ApplicationController) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		HandleAppError(c.log, w, apperr.Validation("update application status", "application id must be a positive integer", err))
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondErrorWithCode(c.log, w, http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid payload", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		RespondErrorWithCode(c.log, w, http.StatusBadRequest, ErrCodeValidation, "Status is required", err)
		return
	}
	status, err := models.ParseApplicationStatus(req.Status)
	if err != nil {
		HandleAppError(c.log, w, apperr.Validation("update application status", "unknown status", err))
		return
	}

	app, err := c.writer.UpdateApplicationStatus(r.Context(), uint(id), status)
	if err != nil {
		metrics.RecordError("update_status", apperr.KindOf(err).String())
		HandleAppError(c.log, w, err)
		return
	}

	metrics.RecordDecision(string(app.Status))
	c.log.WithFields(logrus.Fields{
		"application_id": app.ID,
		"status":         app.Status,
	}).Info("application status updated")
	RespondWithJSON(w, http.StatusOK, app)
}
