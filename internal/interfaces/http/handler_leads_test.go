package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"github.com/realmcrm/backend/internal/repository"
	"github.com/realmcrm/backend/internal/usecases"
)

// newTestAPI wires the full route table over a mocked database, the way main
// wires it over Postgres.
func newTestAPI(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	userRepo := repository.NewUserRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	auth := usecases.NewAuthUsecase(userRepo, tenantRepo, testSecret, time.Hour)

	h := NewHandler(auth,
		repository.NewLeadRepository(db),
		repository.NewActivityRepository(db),
		repository.NewDashboardRepository(db),
		userRepo)

	r := gin.New()
	SetupRoutes(r, h, NewMiddleware(testSecret))
	return r, mock
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func leadRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "tenant_id", "created_by", "assigned_to", "full_name", "phone",
		"email", "source", "interest_type", "status", "budget_min", "budget_max",
		"preferred_location", "notes", "next_followup_at", "created_at", "updated_at"}).
		AddRow(5, "t1", 7, 7, "A", "123", nil, "Manual", nil, "New", 0.0, 0.0, nil, nil, nil, now, now)
}

func TestProtectedRoutesRejectWithoutDataAccess(t *testing.T) {
	r, mock := newTestAPI(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/leads"},
		{http.MethodGet, "/api/leads/5"},
		{http.MethodPut, "/api/leads/5"},
		{http.MethodGet, "/api/leads/5/activities"},
		{http.MethodGet, "/api/dashboard/stats"},
		{http.MethodGet, "/api/auth/me"},
	} {
		w := doJSON(t, r, tc.method, tc.path, "", "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, w.Code)
		}
	}
	// no statement may have reached the store
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("data layer was touched: %v", err)
	}
}

func TestCreateLeadDefaultsStatusToNew(t *testing.T) {
	r, mock := newTestAPI(t)
	token := makeToken(t, testSecret, 7, "t1", "admin", time.Hour)

	mock.ExpectQuery(`INSERT INTO leads`).
		WithArgs("t1", 7, 7, "A", "123", nil, "Manual", nil, "New", 0.0, 0.0, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`FROM leads l WHERE l\.id = \$1 AND l\.tenant_id = \$2`).
		WithArgs(5, "t1").
		WillReturnRows(leadRow())

	w := doJSON(t, r, http.MethodPost, "/api/leads", token, `{"name":"A","phone":"123"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var lead map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &lead); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if lead["status"] != "New" {
		t.Fatalf("expected default status New, got %v", lead["status"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateLeadRequiresNameAndPhone(t *testing.T) {
	r, mock := newTestAPI(t)
	token := makeToken(t, testSecret, 7, "t1", "admin", time.Hour)

	w := doJSON(t, r, http.MethodPost, "/api/leads", token, `{"name":"A"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("validation failure must not reach the store: %v", err)
	}
}

func TestGetLeadFromOtherTenantReadsAsNotFound(t *testing.T) {
	r, mock := newTestAPI(t)
	token := makeToken(t, testSecret, 7, "t1", "admin", time.Hour)

	// lead 5 exists under tenant t2; the scoped query returns nothing
	mock.ExpectQuery(`FROM leads l WHERE l\.id = \$1 AND l\.tenant_id = \$2`).
		WithArgs(5, "t1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doJSON(t, r, http.MethodGet, "/api/leads/5", token, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Lead not found") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateLeadEmptyBodyReturnsRowUnchanged(t *testing.T) {
	r, mock := newTestAPI(t)
	token := makeToken(t, testSecret, 7, "t1", "admin", time.Hour)

	// ownership read only; no UPDATE statement is expected
	mock.ExpectQuery(`FROM leads l WHERE l\.id = \$1 AND l\.tenant_id = \$2`).
		WithArgs(5, "t1").
		WillReturnRows(leadRow())

	w := doJSON(t, r, http.MethodPut, "/api/leads/5", token, `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var lead map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &lead); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if lead["status"] != "New" || lead["full_name"] != "A" {
		t.Fatalf("row should come back unchanged: %v", lead)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("empty patch must not write: %v", err)
	}
}

func TestUpdateLeadPatchesPresentFieldsOnly(t *testing.T) {
	r, mock := newTestAPI(t)
	token := makeToken(t, testSecret, 7, "t1", "admin", time.Hour)

	mock.ExpectQuery(`FROM leads l WHERE l\.id = \$1 AND l\.tenant_id = \$2`).
		WithArgs(5, "t1").
		WillReturnRows(leadRow())
	mock.ExpectExec(`UPDATE leads SET status = \$1, updated_at = CURRENT_TIMESTAMP WHERE id = \$2 AND tenant_id = \$3`).
		WithArgs("Won", 5, "t1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM leads l WHERE l\.id = \$1 AND l\.tenant_id = \$2`).
		WithArgs(5, "t1").
		WillReturnRows(leadRow())

	w := doJSON(t, r, http.MethodPut, "/api/leads/5", token, `{"status":"Won"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
