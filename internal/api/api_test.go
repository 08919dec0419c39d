package api_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/account-compliance-api/internal/api"
	"github.com/account-compliance-api/internal/audit"
	"github.com/account-compliance-api/internal/config"
	"github.com/account-compliance-api/internal/mocks"
	"github.com/account-compliance-api/internal/models"
	"github.com/account-compliance-api/internal/repository"
	"github.com/account-compliance-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const sampleUpload = `[
  {"DisplayName": "Ana Ruiz", "EmailAddress": "ana@example.com", "Estado": "Bloqueado", "DiasDesdeCambioClave": 120, "UltimaFechaCambio": "2024-01-15"},
  {"DisplayName": "Leo Gomez", "EmailAddress": "leo@example.com", "Estado": "Activo", "DiasDesdeCambioClave": 10, "UltimaFechaCambio": "2025-06-01"},
  {"DisplayName": "Mariana Paz", "EmailAddress": "mariana@example.com", "Estado": "Activo", "DiasDesdeCambioClave": 95, "UltimaFechaCambio": "bad"}
]`

type testMocks struct {
	audit   *mocks.MockAuditService
	filter  *mocks.MockFilterService
	export  *mocks.MockExportService
	session *mocks.MockSessionService
}

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: "8080", Env: "test"},
		Session: config.SessionConfig{TTL: 30 * time.Minute, SweepInterval: time.Minute, MaxSessions: 10},
		Upload:  config.UploadConfig{MaxUploadSize: 1024 * 1024},
		Audit:   config.AuditConfig{PasswordMaxAgeDays: models.DefaultPasswordMaxAgeDays},
	}
}

func setupTestRouter() (*gin.Engine, testMocks) {
	gin.SetMode(gin.TestMode)

	m := testMocks{
		audit:   mocks.NewMockAuditService(),
		export:  mocks.NewMockExportService(),
		session: mocks.NewMockSessionService(),
	}
	m.filter = mocks.NewMockFilterService(m.audit)

	services := &service.Services{
		Audit:   m.audit,
		Filter:  m.filter,
		Export:  m.export,
		Session: m.session,
	}

	router := api.NewRouter(services, testConfig(), zerolog.Nop())
	return router, m
}

// setupLiveRouter wires the real services over an in-memory store
func setupLiveRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	services := service.NewServices(repository.New(cfg.Session.MaxSessions), cfg, zerolog.Nop())
	return api.NewRouter(services, cfg, zerolog.Nop())
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write([]byte(content))
	writer.Close()

	req := httptest.NewRequest("POST", "/v1/audits", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func filterRequest(id, payload string) *http.Request {
	req := httptest.NewRequest("POST", "/v1/audits/"+id+"/filter", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeReport(t *testing.T, w *httptest.ResponseRecorder) models.Report {
	t.Helper()
	var report models.Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("Failed to decode report: %v. Body: %s", err, w.Body.String())
	}
	return report
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "account-compliance-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, m := setupTestRouter()
	m.session.Active = 7

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	sessions := response["sessions"].(map[string]interface{})
	if sessions["active"].(float64) != 7 {
		t.Errorf("Expected 7 active sessions, got %v", sessions["active"])
	}
}

func TestCreateAudit(t *testing.T) {
	router, m := setupTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "cuentas.json", sampleUpload))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	report := decodeReport(t, w)
	if report.SessionID != "test-session-id" {
		t.Errorf("Expected session id from service, got %q", report.SessionID)
	}
	if len(m.audit.Uploaded) != 1 || m.audit.Uploaded[0] != "cuentas.json" {
		t.Errorf("Expected upload of cuentas.json, got %v", m.audit.Uploaded)
	}
	if string(m.audit.LastUploadRaw) != sampleUpload {
		t.Error("Expected the uploaded bytes to reach the service unchanged")
	}
}

func TestCreateAudit_Validation(t *testing.T) {
	router, m := setupTestRouter()

	tests := []struct {
		name           string
		filename       string
		content        string
		expectedStatus int
	}{
		{
			name:           "wrong extension",
			filename:       "cuentas.csv",
			content:        "a,b\n",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "too large",
			filename:       "cuentas.json",
			content:        strings.Repeat(" ", 1024*1024+1),
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:           "uppercase extension accepted",
			filename:       "CUENTAS.JSON",
			content:        "[]",
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, uploadRequest(t, tt.filename, tt.content))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	if len(m.audit.Uploaded) != 1 {
		t.Errorf("Expected only the valid upload to reach the service, got %v", m.audit.Uploaded)
	}
}

func TestCreateAudit_MissingFile(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("POST", "/v1/audits", strings.NewReader(`{"file":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestCreateAudit_InputError(t *testing.T) {
	router, m := setupTestRouter()
	m.audit.CreateFunc = func(ctx context.Context, r io.Reader, filename string) (*models.Report, error) {
		return nil, &audit.InputError{Reason: "Estado", Err: audit.ErrMissingRequiredField}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "cuentas.json", `[{"DisplayName":"x"}]`))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["error"] != "invalid input" {
		t.Errorf("Unexpected error: %v", response["error"])
	}
	if !strings.Contains(response["message"].(string), "Estado") {
		t.Errorf("Expected message to name the missing field, got %v", response["message"])
	}
}

func TestCreateAudit_SessionLimit(t *testing.T) {
	router, m := setupTestRouter()
	m.audit.CreateFunc = func(ctx context.Context, r io.Reader, filename string) (*models.Report, error) {
		return nil, repository.ErrSessionLimit
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "cuentas.json", sampleUpload))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestGetReport_NotFound(t *testing.T) {
	router, _ := setupTestRouter()

	for _, path := range []string{
		"/v1/audits/nonexistent",
		"/v1/audits/nonexistent/anomalies",
	} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected status 404, got %d", path, w.Code)
		}
	}
}

func TestDeleteAudit(t *testing.T) {
	router, m := setupTestRouter()
	m.audit.Reports["s1"] = &models.Report{SessionID: "s1"}

	req := httptest.NewRequest("DELETE", "/v1/audits/s1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}

	req = httptest.NewRequest("DELETE", "/v1/audits/s1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 on second delete, got %d", w.Code)
	}
}

func TestGetAnomalies(t *testing.T) {
	router, m := setupTestRouter()
	m.audit.Reports["s1"] = &models.Report{SessionID: "s1"}
	m.audit.Anomalies["s1"] = []models.Anomaly{
		{Index: 2, Field: models.FieldLastChange, Message: "unparsable date", Value: "bad"},
		{Index: 4, Field: models.FieldPasswordAge, Message: "password age is not numeric, defaulted to 0", Value: "n/a"},
	}

	req := httptest.NewRequest("GET", "/v1/audits/s1/anomalies", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["anomaly_count"].(float64) != 2 {
		t.Errorf("Expected 2 anomalies, got %v", response["anomaly_count"])
	}
}

func TestGetAnomalies_CSV(t *testing.T) {
	router, m := setupTestRouter()
	m.audit.Reports["s1"] = &models.Report{SessionID: "s1"}
	m.audit.Anomalies["s1"] = []models.Anomaly{
		{Index: 2, Field: models.FieldLastChange, Message: "unparsable date", Value: "bad"},
	}

	req := httptest.NewRequest("GET", "/v1/audits/s1/anomalies?format=csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if !strings.HasPrefix(contentType, "text/csv") {
		t.Errorf("Expected text/csv, got %s", contentType)
	}

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header plus 1 row, got %d", len(records))
	}
	if records[1][0] != "2" || records[1][3] != "bad" {
		t.Errorf("Unexpected row: %v", records[1])
	}
}

func TestApplyFilter(t *testing.T) {
	router, m := setupTestRouter()
	m.audit.Reports["s1"] = &models.Report{SessionID: "s1"}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, filterRequest("s1", `{"action":"select_category","category":"expired"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	report := decodeReport(t, w)
	if report.Filter.Category != models.CategoryExpired {
		t.Errorf("Expected expired category, got %q", report.Filter.Category)
	}
	if report.Title != models.CategoryExpired.Title() {
		t.Errorf("Expected title %q, got %q", models.CategoryExpired.Title(), report.Title)
	}
}

func TestApplyFilter_Validation(t *testing.T) {
	router, m := setupTestRouter()
	m.audit.Reports["s1"] = &models.Report{SessionID: "s1"}

	tests := []struct {
		name           string
		payload        string
		expectedStatus int
	}{
		{
			name:           "malformed json",
			payload:        `{"action":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing action",
			payload:        `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown category",
			payload:        `{"action":"select_category","category":"locked"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "select without category",
			payload:        `{"action":"select_category"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, filterRequest("s1", tt.payload))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	if len(m.filter.Events) != 0 {
		t.Errorf("Expected invalid events to be rejected before the service, got %v", m.filter.Events)
	}
}

func TestApplyFilter_NotFound(t *testing.T) {
	router, _ := setupTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, filterRequest("missing", `{"action":"clear_all"}`))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestExport(t *testing.T) {
	router, m := setupTestRouter()
	m.export.ExportFunc = func(ctx context.Context, id string, w io.Writer, format string) error {
		if id != "s1" {
			return repository.ErrSessionNotFound
		}
		_, err := io.WriteString(w, "Nombre,Correo\n")
		return err
	}

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedType   string
	}{
		{
			name:           "default csv",
			path:           "/v1/audits/s1/export",
			expectedStatus: http.StatusOK,
			expectedType:   "text/csv; charset=utf-8",
		},
		{
			name:           "xlsx",
			path:           "/v1/audits/s1/export?format=xlsx",
			expectedStatus: http.StatusOK,
			expectedType:   audit.ContentType(audit.FormatXLSX),
		},
		{
			name:           "unsupported format",
			path:           "/v1/audits/s1/export?format=pdf",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown session",
			path:           "/v1/audits/other/export",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedType != "" {
				if got := w.Header().Get("Content-Type"); got != tt.expectedType {
					t.Errorf("Expected content type %s, got %s", tt.expectedType, got)
				}
				if !strings.HasPrefix(w.Header().Get("Content-Disposition"), "attachment;") {
					t.Error("Expected attachment disposition")
				}
			}
		})
	}
}

func TestCORSHeaders(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("OPTIONS", "/v1/audits", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204 for OPTIONS, got %d", w.Code)
	}

	allowOrigin := w.Header().Get("Access-Control-Allow-Origin")
	if allowOrigin != "*" {
		t.Errorf("Expected Access-Control-Allow-Origin '*', got '%s'", allowOrigin)
	}

	allowMethods := w.Header().Get("Access-Control-Allow-Methods")
	if !strings.Contains(allowMethods, "DELETE") {
		t.Errorf("Expected DELETE in allowed methods, got '%s'", allowMethods)
	}
}

func TestAuditFlow(t *testing.T) {
	router := setupLiveRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "cuentas.json", sampleUpload))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	report := decodeReport(t, w)
	want := models.Summary{Total: 3, Blocked: 1, Disabled: 0, Expired: 2, Compliant: 1, Anomalies: 1}
	if report.Summary != want {
		t.Errorf("Summary = %+v, want %+v", report.Summary, want)
	}
	if report.Title != models.CategoryNone.Title() {
		t.Errorf("Expected initial title %q, got %q", models.CategoryNone.Title(), report.Title)
	}
	id := report.SessionID

	w = httptest.NewRecorder()
	router.ServeHTTP(w, filterRequest(id, `{"action":"select_category","category":"expired"}`))
	report = decodeReport(t, w)
	if len(report.Table.Rows) != 2 {
		t.Fatalf("Expected 2 expired rows, got %d", len(report.Table.Rows))
	}
	if report.Table.Rows[0].Name != "Ana Ruiz" || report.Table.Rows[1].Name != "Mariana Paz" {
		t.Errorf("Expected rows sorted by age descending, got %+v", report.Table.Rows)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, filterRequest(id, `{"action":"set_search","search":"  MARIANA "}`))
	report = decodeReport(t, w)
	if len(report.Table.Rows) != 1 || report.Table.Rows[0].Name != "Mariana Paz" {
		t.Errorf("Expected only Mariana Paz, got %+v", report.Table.Rows)
	}

	req := httptest.NewRequest("GET", "/v1/audits/"+id+"/export?format=csv", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header plus 1 row, got %d", len(records))
	}
	if records[1][0] != "Mariana Paz" || records[1][4] != "" {
		t.Errorf("Unexpected export row: %v", records[1])
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, filterRequest(id, `{"action":"clear_all"}`))
	report = decodeReport(t, w)
	if len(report.Table.Rows) != 3 {
		t.Errorf("Expected all 3 rows after clear_all, got %d", len(report.Table.Rows))
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "otro.json", `{"DisplayName":"x"}`))
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422 for a non-array upload, got %d", w.Code)
	}
}
