package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rental-marketplace/internal/api"
	"rental-marketplace/internal/apperr"
	"rental-marketplace/internal/lifecycle"
	"rental-marketplace/internal/models"
	"rental-marketplace/internal/query"
	"rental-marketplace/internal/store"
	"rental-marketplace/internal/testhelpers"
)

var fixedNow = time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)

const origin = "https://app.example"

func newServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()

	db := testhelpers.NewSeededDB(t)
	st := store.NewGormStore(db)
	clock := testhelpers.FixedClock(fixedNow)

	log := logrus.New()
	log.SetOutput(io.Discard)

	lister := query.NewService(st, query.WithClock(clock))
	handler := api.NewRouter(api.RouterConfig{
		Applications: api.NewApplicationController(
			lifecycle.NewService(st, lifecycle.WithClock(clock)),
			lister,
			log,
		),
		Leases:         api.NewLeaseController(lister, log),
		Health:         api.NewHealthController(func(context.Context) error { return nil }, log),
		AllowedOrigins: []string{origin},
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, db
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

const aliceBody = `{
	"propertyId": 1,
	"tenantCognitoId": "tenant-A",
	"applicationDate": "2024-01-10T00:00:00Z",
	"name": "Alice",
	"email": "a@x.com",
	"phoneNumber": "555",
	"message": "hi"
}`

func TestApplicationFlow(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/applications", aliceBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Application
	decode(t, resp, &created)
	assert.Equal(t, models.StatusPending, created.Status)
	require.NotNil(t, created.Lease)
	assert.Equal(t, 1500.0, created.Lease.Rent)

	resp = do(t, http.MethodPut, fmt.Sprintf("%s/applications/%d/status", srv.URL, created.ID), `{"status":"Approved"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var approved models.Application
	decode(t, resp, &approved)
	assert.Equal(t, models.StatusApproved, approved.Status)
	require.NotNil(t, approved.LeaseID)

	resp = do(t, http.MethodGet, srv.URL+"/applications?userId=mgr-1&userType=manager", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var views []map[string]interface{}
	decode(t, resp, &views)
	require.Len(t, views, 1)
	assert.Equal(t, "Approved", views[0]["status"])
	lease, ok := views[0]["lease"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2024-03-15T12:00:00Z", lease["nextPaymentDate"])
	manager, ok := views[0]["manager"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "mgr-1", manager["cognitoId"])

	// decisions are final
	resp = do(t, http.MethodPut, fmt.Sprintf("%s/applications/%d/status", srv.URL, created.ID), `{"status":"Denied"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var body api.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, api.ErrCodeInvalidTransition, body.Code)
}

func TestErrorResponses(t *testing.T) {
	srv, _ := newServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"missing application", http.MethodPut, "/applications/9999/status", `{"status":"Approved"}`, http.StatusNotFound, api.ErrCodeNotFound},
		{"non-numeric id", http.MethodPut, "/applications/abc/status", `{"status":"Approved"}`, http.StatusBadRequest, api.ErrCodeValidation},
		{"unknown status", http.MethodPut, "/applications/1/status", `{"status":"Archived"}`, http.StatusBadRequest, api.ErrCodeValidation},
		{"empty status", http.MethodPut, "/applications/1/status", `{}`, http.StatusBadRequest, api.ErrCodeValidation},
		{"broken json", http.MethodPost, "/applications", `{`, http.StatusBadRequest, api.ErrCodeInvalidPayload},
		{"bad email", http.MethodPost, "/applications", `{"propertyId":1,"tenantCognitoId":"tenant-A","name":"A","email":"nope","phoneNumber":"1"}`, http.StatusBadRequest, api.ErrCodeValidation},
		{"unknown property", http.MethodPost, "/applications", `{"propertyId":77,"tenantCognitoId":"tenant-A","name":"A","email":"a@x.com","phoneNumber":"1"}`, http.StatusNotFound, api.ErrCodeNotFound},
		{"leases of unknown property", http.MethodGet, "/properties/77/leases", "", http.StatusNotFound, api.ErrCodeNotFound},
		{"non-numeric property id", http.MethodGet, "/properties/abc/leases", "", http.StatusBadRequest, api.ErrCodeValidation},
		{"unknown role", http.MethodGet, "/applications?userId=x&userType=admin", "", http.StatusBadRequest, api.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, srv.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body api.ErrorResponse
			decode(t, resp, &body)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestListWithoutIdentityReturnsEverything(t *testing.T) {
	srv, db := newServer(t)
	testhelpers.InsertApplication(t, db, models.Application{
		Name: "Bob", Email: "b@x.com", PhoneNumber: "1", PropertyID: 3, TenantCognitoID: "tenant-B",
	})
	testhelpers.InsertApplication(t, db, models.Application{
		Name: "Alice", Email: "a@x.com", PhoneNumber: "1", PropertyID: 1, TenantCognitoID: "tenant-A",
	})

	resp := do(t, http.MethodGet, srv.URL+"/applications", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var views []map[string]interface{}
	decode(t, resp, &views)
	assert.Len(t, views, 2)
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health api.HealthCheckResponse
	decode(t, resp, &health)
	assert.Equal(t, "OK", health.Status)

	resp = do(t, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "rentals_http_requests_total")
}

func TestHealthReportsDatabaseDown(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := api.NewHealthController(func(context.Context) error { return errors.New("dial tcp: refused") }, log)

	rec := httptest.NewRecorder()
	h.HealthCheckHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/applications/1/status", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, origin, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperr.NotFound("op", "application", 1), http.StatusNotFound},
		{apperr.Validation("op", "bad", nil), http.StatusBadRequest},
		{apperr.InvalidTransition("op", 1, "Denied", "Approved"), http.StatusConflict},
		{apperr.Timeout("op", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{apperr.StoreFailure("op", errors.New("disk full")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		status, _ := api.StatusFor(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
	}
}

func TestInternalErrorsHideDetails(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	rec := httptest.NewRecorder()
	api.HandleAppError(log, rec, apperr.StoreFailure("create lease", errors.New("pq: password authentication failed")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestPropertyLeases(t *testing.T) {
	srv, db := newServer(t)
	testhelpers.InsertLease(t, db, models.Lease{
		StartDate: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Rent: 1500, Deposit: 1500, PropertyID: 1, TenantCognitoID: "tenant-A",
	})

	resp := do(t, http.MethodGet, srv.URL+"/properties/1/leases", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var leases []map[string]interface{}
	decode(t, resp, &leases)
	require.Len(t, leases, 1)
	assert.Equal(t, "2024-02-29T00:00:00Z", leases[0]["nextPaymentDate"])
	tenant, ok := leases[0]["tenant"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "tenant-A", tenant["cognitoId"])

	resp = do(t, http.MethodGet, srv.URL+"/properties/2/leases", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}
