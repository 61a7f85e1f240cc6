package mcp

import (
	"context"

	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driving"
)

// mockIntakeService is a mock implementation of driving.IntakeService.
type mockIntakeService struct {
	record   *domain.DataRecord
	err      error
	received int
	previews int
}

func (m *mockIntakeService) Receive(_ context.Context, _ *domain.RawMessage) (*domain.DataRecord, error) {
	m.received++
	return m.record, m.err
}

func (m *mockIntakeService) Preview(_ context.Context, _ *domain.RawMessage) (*domain.DataRecord, error) {
	m.previews++
	return m.record, m.err
}

func (m *mockIntakeService) GetRecord(_ context.Context, _ string) (*domain.DataRecord, error) {
	return m.record, m.err
}

// mockContactService is a mock implementation of driving.ContactService.
type mockContactService struct {
	result   *domain.SaveResult
	contact  *domain.Contact
	list     []driving.ContactSummary
	err      error
	lastSub  domain.ContactSubmission
	lastID   string
	lastType string
}

func (m *mockContactService) Save(
	_ context.Context,
	sub domain.ContactSubmission,
	docID, contactType string,
) (*domain.SaveResult, error) {
	m.lastSub, m.lastID, m.lastType = sub, docID, contactType
	return m.result, m.err
}

func (m *mockContactService) Get(_ context.Context, _ string) (*domain.Contact, error) {
	return m.contact, m.err
}

func (m *mockContactService) ListSorted(_ context.Context) ([]driving.ContactSummary, error) {
	return m.list, m.err
}

// mockForms is a mock implementation of driven.FormSchemaSource.
type mockForms struct {
	schemas map[string]*domain.FormSchema
}

func (m *mockForms) Schema(code string) (*domain.FormSchema, bool) {
	s, ok := m.schemas[code]
	return s, ok
}

func (m *mockForms) Codes() []string {
	codes := make([]string, 0, len(m.schemas))
	for code := range m.schemas {
		codes = append(codes, code)
	}
	return codes
}
