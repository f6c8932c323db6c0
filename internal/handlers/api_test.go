package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hirepro_backend/internal/app"
	"hirepro_backend/internal/config"
	"hirepro_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, app.AutoMigrate(db))

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Email.FromEmail = "no-reply@hirepro.test"
	cfg.App.FrontendBaseURL = "hirepro.test"
	cfg.App.ResetTokenTTLMinutes = 60

	return &testServer{
		router: app.SetupRouter(cfg, db, &app.MockEmailProvider{}),
		db:     db,
	}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
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
	req.Host = "hirepro.test"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	parsed := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &parsed)
	}
	return rec, parsed
}

func signupCompany(t *testing.T, ts *testServer, emailAddr, subdomain string) (token, companyID string) {
	t.Helper()

	rec, body := ts.request(t, http.MethodPost, "/api/v1/signup/company", "", map[string]interface{}{
		"email":        emailAddr,
		"password":     "password123",
		"first_name":   "Ada",
		"last_name":    "Admin",
		"company_name": "Co " + subdomain,
		"subdomain":    subdomain,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	token = body["token"].(string)
	companyID = body["company"].(map[string]interface{})["id"].(string)
	return token, companyID
}

func TestSignupLoginMe(t *testing.T) {
	ts := newTestServer(t)

	token, _ := signupCompany(t, ts, "ada@example.com", "adaco")

	rec, body := ts.request(t, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ada@example.com", body["email"])
	assert.Equal(t, "company_admin", body["user_type"])

	rec, body = ts.request(t, http.MethodPost, "/api/v1/login", "", map[string]interface{}{
		"login":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, token, body["token"])
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	rec, body := ts.request(t, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, body, "error")

	rec, _ = ts.request(t, http.MethodGet, "/api/v1/users/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInviteFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	adminToken, companyID := signupCompany(t, ts, "boss@example.com", "inviteco")

	rec, body := ts.request(t, http.MethodPost,
		fmt.Sprintf("/api/v1/companies/%s/users/invite", companyID), adminToken,
		map[string]interface{}{"email": "newbie@example.com", "role": "hr_recruiter"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	inviteToken := body["token"].(string)
	assert.Contains(t, body["dashboard_url"], "inviteco.hirepro.test/dashboard")
	assert.Contains(t, body["dashboard_url"], "setup=1")

	// The invitee validates the setup token from the link.
	rec, body = ts.request(t, http.MethodPost, "/api/v1/setup/validate-token", "",
		map[string]interface{}{"token": inviteToken})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["requires_setup"])

	// Completing setup rotates the token.
	rec, body = ts.request(t, http.MethodPost, "/api/v1/setup/complete", "",
		map[string]interface{}{
			"token":      inviteToken,
			"password":   "fresh-password",
			"first_name": "New",
			"last_name":  "Bie",
		})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	newToken := body["token"].(string)
	require.NotEqual(t, inviteToken, newToken)

	rec, _ = ts.request(t, http.MethodGet, "/api/v1/users/me", inviteToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body = ts.request(t, http.MethodGet, "/api/v1/users/me", newToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "newbie@example.com", body["email"])
}

func TestInviteRequiresAdmin(t *testing.T) {
	ts := newTestServer(t)

	adminToken, companyID := signupCompany(t, ts, "owner@example.com", "lockedco")

	rec, body := ts.request(t, http.MethodPost,
		fmt.Sprintf("/api/v1/companies/%s/users/invite", companyID), adminToken,
		map[string]interface{}{"email": "plain@example.com", "role": "hr_recruiter"})
	require.Equal(t, http.StatusCreated, rec.Code)
	memberSetupToken := body["token"].(string)

	rec, body = ts.request(t, http.MethodPost, "/api/v1/setup/complete", "",
		map[string]interface{}{
			"token":      memberSetupToken,
			"password":   "member-password",
			"first_name": "Plain",
			"last_name":  "Member",
		})
	require.Equal(t, http.StatusOK, rec.Code)
	memberToken := body["token"].(string)

	// A recruiter cannot invite.
	rec, _ = ts.request(t, http.MethodPost,
		fmt.Sprintf("/api/v1/companies/%s/users/invite", companyID), memberToken,
		map[string]interface{}{"email": "other@example.com", "role": "hr_recruiter"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// But can list members.
	rec, _ = ts.request(t, http.MethodGet,
		fmt.Sprintf("/api/v1/companies/%s/users", companyID), memberToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRemoveLastAdminOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	adminToken, companyID := signupCompany(t, ts, "lone@example.com", "loneco")

	var admin models.User
	require.NoError(t, ts.db.First(&admin, "email = ?", "lone@example.com").Error)

	rec, body := ts.request(t, http.MethodDelete,
		fmt.Sprintf("/api/v1/companies/%s/users/%s", companyID, admin.ID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "LAST_ADMIN", errObj["code"])
}

func TestCompanyStatusRequiresOperator(t *testing.T) {
	ts := newTestServer(t)

	adminToken, companyID := signupCompany(t, ts, "mere@example.com", "mereco")

	rec, _ := ts.request(t, http.MethodPut,
		fmt.Sprintf("/api/v1/companies/%s/status", companyID), adminToken,
		map[string]interface{}{"status": "active"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJobLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	adminToken, companyID := signupCompany(t, ts, "hiring@example.com", "jobsco")

	rec, body := ts.request(t, http.MethodPost,
		"/api/v1/jobs?company_id="+companyID, adminToken,
		map[string]interface{}{"title": "Backend Engineer", "employment_type": "FULL_TIME"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	jobID := body["id"].(string)
	assert.Equal(t, "DRAFT", body["status"])

	rec, body = ts.request(t, http.MethodPost,
		fmt.Sprintf("/api/v1/jobs/%s/publish", jobID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PUBLISHED", body["status"])

	rec, body = ts.request(t, http.MethodGet, "/api/v1/jobs", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	jobs := body["jobs"].([]interface{})
	assert.Len(t, jobs, 1)
}

func TestValidationErrorsPerField(t *testing.T) {
	ts := newTestServer(t)

	rec, body := ts.request(t, http.MethodPost, "/api/v1/signup/company", "",
		map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])

	// Failures come back as a field map keyed by the json names the
	// client sent, not as one flat string.
	details, ok := errObj["details"].(map[string]interface{})
	require.True(t, ok, "details should be a field map, got %T", errObj["details"])
	for _, field := range []string{"email", "password", "first_name", "last_name", "company_name", "subdomain"} {
		assert.Contains(t, details, field)
	}

	rec, body = ts.request(t, http.MethodPost, "/api/v1/signup/company", "",
		map[string]interface{}{
			"email":        "not-an-email",
			"password":     "short",
			"first_name":   "Ada",
			"last_name":    "Admin",
			"company_name": "Adaco",
			"subdomain":    "adaco",
		})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	details = body["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.NotContains(t, details, "subdomain")
}
