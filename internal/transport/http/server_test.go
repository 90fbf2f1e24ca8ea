package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jobtracker/internal/bootstrap"
	"jobtracker/internal/config"
	"jobtracker/internal/model"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Application{}))

	app := &bootstrap.App{
		Config: &config.Config{
			App: config.AppConfig{
				Name:    "job-tracker-api",
				Env:     "test",
				GinMode: gin.TestMode,
			},
			Auth: config.AuthConfig{
				JWTSecret:       "test-secret",
				JWTExpireMinute: 60,
			},
			CORS: config.CORSConfig{
				AllowedOrigins: []string{"http://localhost:3000"},
			},
		},
		DB:        db,
		StartedAt: time.Now(),
	}
	return NewRouter(app)
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body), "body: %s", recorder.Body.String())
	return body
}

func dataField(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "data field missing or not an object: %v", body)
	return data
}

func createJob(t *testing.T, router *gin.Engine, payload gin.H, token string) map[string]interface{} {
	t.Helper()
	recorder := doRequest(t, router, nethttp.MethodPost, "/api/jobs/", payload, token)
	require.Equal(t, nethttp.StatusCreated, recorder.Code, "body: %s", recorder.Body.String())
	return dataField(t, decodeBody(t, recorder))
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	recorder := doRequest(t, router, nethttp.MethodPost, "/api/auth/register", gin.H{
		"email":    email,
		"password": "secret1",
	}, "")
	require.Equal(t, nethttp.StatusCreated, recorder.Code)

	recorder = doRequest(t, router, nethttp.MethodPost, "/api/auth/login", gin.H{
		"email":    email,
		"password": "secret1",
	}, "")
	require.Equal(t, nethttp.StatusOK, recorder.Code)

	token, ok := dataField(t, decodeBody(t, recorder))["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestHealthAndRoot(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(t, router, nethttp.MethodGet, "/health", nil, "")
	require.Equal(t, nethttp.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "job-tracker-api", body["service"])

	recorder = doRequest(t, router, nethttp.MethodGet, "/", nil, "")
	require.Equal(t, nethttp.StatusOK, recorder.Code)
	assert.Equal(t, "Job Application Tracker API", decodeBody(t, recorder)["message"])
}

func TestCreateAndGetApplication(t *testing.T) {
	router := newTestRouter(t)

	created := createJob(t, router, gin.H{
		"company_name":     "Acme Corp",
		"job_title":        "Backend Engineer",
		"currency":         "usd",
		"salary_min":       90000,
		"salary_max":       120000,
		"application_date": "2025-06-01",
	}, "")
	id := created["id"].(float64)
	assert.Equal(t, "USD", created["currency"])
	assert.Equal(t, "applied", created["status"])
	assert.NotNil(t, created["days_since_applied"])

	recorder := doRequest(t, router, nethttp.MethodGet, fmt.Sprintf("/api/jobs/%d", int(id)), nil, "")
	require.Equal(t, nethttp.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["timestamp"])
	got := dataField(t, body)
	assert.Equal(t, "Acme Corp", got["company_name"])
	assert.Equal(t, "Backend Engineer", got["job_title"])
	assert.Equal(t, "2025-06-01", got["application_date"])
}

func TestGetApplicationNotFound(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(t, router, nethttp.MethodGet, "/api/jobs/9999", nil, "")
	require.Equal(t, nethttp.StatusNotFound, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Application not found", body["message"])
}

func TestCreateApplicationValidationErrors(t *testing.T) {
	router := newTestRouter(t)

	// missing required fields
	recorder := doRequest(t, router, nethttp.MethodPost, "/api/jobs/", gin.H{}, "")
	assert.Equal(t, nethttp.StatusBadRequest, recorder.Code)

	// inverted salary range
	recorder = doRequest(t, router, nethttp.MethodPost, "/api/jobs/", gin.H{
		"company_name": "Acme",
		"job_title":    "Engineer",
		"salary_min":   100000,
		"salary_max":   90000,
	}, "")
	assert.Equal(t, nethttp.StatusBadRequest, recorder.Code)

	// malformed currency
	recorder = doRequest(t, router, nethttp.MethodPost, "/api/jobs/", gin.H{
		"company_name": "Acme",
		"job_title":    "Engineer",
		"currency":     "US",
	}, "")
	assert.Equal(t, nethttp.StatusBadRequest, recorder.Code)

	// empty application date must not slip through as a zero-value date
	recorder = doRequest(t, router, nethttp.MethodPost, "/api/jobs/", gin.H{
		"company_name":     "Acme",
		"job_title":        "Engineer",
		"application_date": "",
	}, "")
	assert.Equal(t, nethttp.StatusBadRequest, recorder.Code)
}

func TestUpdateApplication(t *testing.T) {
	router := newTestRouter(t)

	created := createJob(t, router, gin.H{
		"company_name": "Acme Corp",
		"job_title":    "Engineer",
		"location":     "Berlin",
	}, "")
	id := int(created["id"].(float64))

	recorder := doRequest(t, router, nethttp.MethodPut, fmt.Sprintf("/api/jobs/%d", id), gin.H{
		"status": "offer",
		"notes":  "they called back",
	}, "")
	require.Equal(t, nethttp.StatusOK, recorder.Code, "body: %s", recorder.Body.String())
	updated := dataField(t, decodeBody(t, recorder))
	assert.Equal(t, "offer", updated["status"])
	assert.Equal(t, "they called back", updated["notes"])
	assert.Equal(t, "Acme Corp", updated["company_name"], "untouched fields keep prior values")
	assert.Equal(t, "Berlin", updated["location"])

	// empty payload after filtering unset fields
	recorder = doRequest(t, router, nethttp.MethodPut, fmt.Sprintf("/api/jobs/%d", id), gin.H{}, "")
	assert.Equal(t, nethttp.StatusBadRequest, recorder.Code)

	recorder = doRequest(t, router, nethttp.MethodPut, "/api/jobs/9999", gin.H{"notes": "x"}, "")
	assert.Equal(t, nethttp.StatusNotFound, recorder.Code)
}

func TestDeleteApplication(t *testing.T) {
	router := newTestRouter(t)

	created := createJob(t, router, gin.H{"company_name": "Acme", "job_title": "Engineer"}, "")
	id := int(created["id"].(float64))

	recorder := doRequest(t, router, nethttp.MethodDelete, fmt.Sprintf("/api/jobs/%d", id), nil, "")
	require.Equal(t, nethttp.StatusOK, recorder.Code)
	deleted := dataField(t, decodeBody(t, recorder))
	assert.Equal(t, float64(id), deleted["deleted_id"])

	recorder = doRequest(t, router, nethttp.MethodDelete, fmt.Sprintf("/api/jobs/%d", id), nil, "")
	assert.Equal(t, nethttp.StatusNotFound, recorder.Code)

	recorder = doRequest(t, router, nethttp.MethodGet, fmt.Sprintf("/api/jobs/%d", id), nil, "")
	assert.Equal(t, nethttp.StatusNotFound, recorder.Code)
}

func TestListPaginationMetadata(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 25; i++ {
		createJob(t, router, gin.H{"company_name": "Acme", "job_title": "Engineer"}, "")
	}

	type pageExpect struct {
		page        int
		items       int
		hasNext     bool
		hasPrevious bool
	}
	for _, want := range []pageExpect{
		{page: 1, items: 10, hasNext: true, hasPrevious: false},
		{page: 2, items: 10, hasNext: true, hasPrevious: true},
		{page: 3, items: 5, hasNext: false, hasPrevious: true},
	} {
		recorder := doRequest(t, router, nethttp.MethodGet,
			fmt.Sprintf("/api/jobs/?page=%d&limit=10", want.page), nil, "")
		require.Equal(t, nethttp.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)

		items, ok := body["items"].([]interface{})
		require.True(t, ok)
		assert.Len(t, items, want.items, "page %d", want.page)
		assert.Equal(t, float64(25), body["total"])
		assert.Equal(t, float64(want.page), body["page"])
		assert.Equal(t, float64(10), body["limit"])
		assert.Equal(t, float64(3), body["pages"])
		assert.Equal(t, want.hasNext, body["has_next"], "page %d", want.page)
		assert.Equal(t, want.hasPrevious, body["has_previous"], "page %d", want.page)
	}
}

func TestListFiltersByCompanyAndStatus(t *testing.T) {
	router := newTestRouter(t)

	createJob(t, router, gin.H{"company_name": "Acme Corp", "job_title": "Engineer"}, "")
	createJob(t, router, gin.H{"company_name": "ACME Inc", "job_title": "Engineer", "status": "offer"}, "")
	createJob(t, router, gin.H{"company_name": "Globex", "job_title": "Engineer"}, "")

	recorder := doRequest(t, router, nethttp.MethodGet, "/api/jobs/?company_name=acme", nil, "")
	require.Equal(t, nethttp.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, float64(2), body["total"])

	recorder = doRequest(t, router, nethttp.MethodGet, "/api/jobs/?status=offer", nil, "")
	require.Equal(t, nethttp.StatusOK, recorder.Code)
	body = decodeBody(t, recorder)
	assert.Equal(t, float64(1), body["total"])
}

func TestListRejectsBadParameters(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/api/jobs/?page=0",
		"/api/jobs/?limit=0",
		"/api/jobs/?limit=101",
		"/api/jobs/?page=abc",
		"/api/jobs/?status=ghosted",
	} {
		recorder := doRequest(t, router, nethttp.MethodGet, path, nil, "")
		assert.Equal(t, nethttp.StatusBadRequest, recorder.Code, "path %s", path)
	}
}

func TestStatsSummary(t *testing.T) {
	router := newTestRouter(t)

	for _, status := range []string{"applied", "applied", "offer"} {
		createJob(t, router, gin.H{"company_name": "Acme", "job_title": "Engineer", "status": status}, "")
	}

	recorder := doRequest(t, router, nethttp.MethodGet, "/api/jobs/stats/summary", nil, "")
	require.Equal(t, nethttp.StatusOK, recorder.Code)
	data := dataField(t, decodeBody(t, recorder))
	assert.Equal(t, float64(3), data["total_applications"])

	byStatus, ok := data["applications_by_status"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), byStatus["applied"])
	assert.Equal(t, float64(1), byStatus["offer"])
	assert.Equal(t, float64(0), byStatus["rejected"])
	assert.Len(t, byStatus, 10, "one entry per status value")
}

func TestRegisterAndProfile(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(t, router, nethttp.MethodPost, "/api/auth/register", gin.H{
		"email":     "user@example.com",
		"password":  "secret1",
		"full_name": "Jane Doe",
	}, "")
	require.Equal(t, nethttp.StatusCreated, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "password", "password hash never leaves the API")
	user := dataField(t, decodeBody(t, recorder))
	assert.Equal(t, "user@example.com", user["email"])
	assert.Equal(t, "Jane Doe", user["full_name"])
	assert.Equal(t, true, user["is_active"])

	// duplicate registration
	recorder = doRequest(t, router, nethttp.MethodPost, "/api/auth/register", gin.H{
		"email":    "user@example.com",
		"password": "another1",
	}, "")
	require.Equal(t, nethttp.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Email already registered", decodeBody(t, recorder)["message"])

	// profile by query parameter
	id := int(user["id"].(float64))
	recorder = doRequest(t, router, nethttp.MethodGet, fmt.Sprintf("/api/auth/profile?user_id=%d", id), nil, "")
	require.Equal(t, nethttp.StatusOK, recorder.Code)
	assert.Equal(t, "user@example.com", dataField(t, decodeBody(t, recorder))["email"])

	recorder = doRequest(t, router, nethttp.MethodGet, "/api/auth/profile?user_id=9999", nil, "")
	assert.Equal(t, nethttp.StatusNotFound, recorder.Code)

	recorder = doRequest(t, router, nethttp.MethodGet, "/api/auth/profile", nil, "")
	assert.Equal(t, nethttp.StatusUnauthorized, recorder.Code)
}

func TestLoginFlow(t *testing.T) {
	router := newTestRouter(t)

	token := registerAndLogin(t, router, "user@example.com")
	require.NotEmpty(t, token)

	// profile via bearer token
	recorder := doRequest(t, router, nethttp.MethodGet, "/api/auth/profile", nil, token)
	require.Equal(t, nethttp.StatusOK, recorder.Code)
	assert.Equal(t, "user@example.com", dataField(t, decodeBody(t, recorder))["email"])

	// wrong password
	recorder = doRequest(t, router, nethttp.MethodPost, "/api/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, nethttp.StatusUnauthorized, recorder.Code)

	// unknown email gets the same message
	recorder = doRequest(t, router, nethttp.MethodPost, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "secret1",
	}, "")
	require.Equal(t, nethttp.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, recorder)["message"])
}

func TestOwnerScopingViaBearerToken(t *testing.T) {
	router := newTestRouter(t)

	tokenA := registerAndLogin(t, router, "alice@example.com")
	tokenB := registerAndLogin(t, router, "bob@example.com")

	created := createJob(t, router, gin.H{"company_name": "Acme", "job_title": "Engineer"}, tokenA)
	id := int(created["id"].(float64))
	assert.NotNil(t, created["user_id"], "authenticated create stamps the owner")

	// anonymous requests remain global
	recorder := doRequest(t, router, nethttp.MethodGet, fmt.Sprintf("/api/jobs/%d", id), nil, "")
	assert.Equal(t, nethttp.StatusOK, recorder.Code)

	// another user's token cannot see it
	recorder = doRequest(t, router, nethttp.MethodGet, fmt.Sprintf("/api/jobs/%d", id), nil, tokenB)
	assert.Equal(t, nethttp.StatusNotFound, recorder.Code)

	// the owner can
	recorder = doRequest(t, router, nethttp.MethodGet, fmt.Sprintf("/api/jobs/%d", id), nil, tokenA)
	assert.Equal(t, nethttp.StatusOK, recorder.Code)

	// a garbage token on an optional-auth route is still rejected
	recorder = doRequest(t, router, nethttp.MethodGet, fmt.Sprintf("/api/jobs/%d", id), nil, "garbage")
	assert.Equal(t, nethttp.StatusUnauthorized, recorder.Code)
}
