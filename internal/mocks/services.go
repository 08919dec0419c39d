package mocks

import (
	"context"
	"io"

	"github.com/account-compliance-api/internal/audit"
	"github.com/account-compliance-api/internal/models"
	"github.com/account-compliance-api/internal/repository"
	"github.com/account-compliance-api/internal/service"
)

// MockAuditService is a mock implementation of AuditService
type MockAuditService struct {
	CreateFunc    func(ctx context.Context, r io.Reader, filename string) (*models.Report, error)
	Reports       map[string]*models.Report
	Anomalies     map[string][]models.Anomaly
	Uploaded      []string
	DeletedIDs    []string
	LastUploadRaw []byte
}

// Verify interface compliance
var _ service.AuditService = (*MockAuditService)(nil)

func NewMockAuditService() *MockAuditService {
	return &MockAuditService{
		Reports:   make(map[string]*models.Report),
		Anomalies: make(map[string][]models.Anomaly),
	}
}

func (m *MockAuditService) CreateSession(ctx context.Context, r io.Reader, filename string) (*models.Report, error) {
	m.Uploaded = append(m.Uploaded, filename)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r, filename)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.LastUploadRaw = data
	report := &models.Report{SessionID: "test-session-id", Filename: filename, Title: models.CategoryNone.Title()}
	m.Reports[report.SessionID] = report
	return report, nil
}

func (m *MockAuditService) GetReport(ctx context.Context, id string) (*models.Report, error) {
	if report, ok := m.Reports[id]; ok {
		return report, nil
	}
	return nil, repository.ErrSessionNotFound
}

func (m *MockAuditService) GetAnomalies(ctx context.Context, id string) ([]models.Anomaly, error) {
	if _, ok := m.Reports[id]; !ok {
		return nil, repository.ErrSessionNotFound
	}
	return m.Anomalies[id], nil
}

func (m *MockAuditService) DeleteSession(ctx context.Context, id string) error {
	if _, ok := m.Reports[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(m.Reports, id)
	m.DeletedIDs = append(m.DeletedIDs, id)
	return nil
}

// MockFilterService is a mock implementation of FilterService backed by
// the real state transitions
type MockFilterService struct {
	Audit  *MockAuditService
	Events []models.FilterEvent
}

// Verify interface compliance
var _ service.FilterService = (*MockFilterService)(nil)

func NewMockFilterService(auditSvc *MockAuditService) *MockFilterService {
	return &MockFilterService{Audit: auditSvc}
}

func (m *MockFilterService) ApplyEvent(ctx context.Context, id string, event models.FilterEvent) (*models.Report, error) {
	m.Events = append(m.Events, event)
	report, err := m.Audit.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := audit.Apply(report.Filter, event)
	if err != nil {
		return nil, err
	}
	report.Filter = next
	report.Title = next.Category.Title()
	return report, nil
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	ExportFunc func(ctx context.Context, id string, w io.Writer, format string) error
	Calls      []string
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{}
}

func (m *MockExportService) Export(ctx context.Context, id string, w io.Writer, format string) error {
	m.Calls = append(m.Calls, id+":"+format)
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, id, w, format)
	}
	return nil
}

// MockSessionService is a mock implementation of SessionService
type MockSessionService struct {
	Active  int
	Started bool
	Stopped bool
}

// Verify interface compliance
var _ service.SessionService = (*MockSessionService)(nil)

func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

func (m *MockSessionService) StartJanitor(ctx context.Context) {
	m.Started = true
}

func (m *MockSessionService) StopJanitor() {
	m.Stopped = true
}

func (m *MockSessionService) Count(ctx context.Context) (int, error) {
	return m.Active, nil
}
