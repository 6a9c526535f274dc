package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ismobla/portfolio-api/internal/model"
	"github.com/ismobla/portfolio-api/internal/service"
)

// ---------------------------------------------------------------------------
// Mock ContactService
// ---------------------------------------------------------------------------

type mockContactService struct {
	submitFunc func(ctx context.Context, in service.SubmitInput) error
	listFunc   func(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactSubmission, error)
}

func (m *mockContactService) Submit(ctx context.Context, in service.SubmitInput) error {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, in)
	}
	return nil
}

func (m *mockContactService) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactSubmission, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func postContact(h *ContactHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

// ---------------------------------------------------------------------------
// POST /api/contact tests
// ---------------------------------------------------------------------------

func TestContactHandler_Submit_Success(t *testing.T) {
	var captured service.SubmitInput
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in service.SubmitInput) error {
			captured = in
			return nil
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(h, `{"email":"test@example.com","message":"Hi","lang":"en"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp["success"] {
		t.Error("expected success=true in response")
	}
	if captured.Email != "test@example.com" || captured.Lang != "en" || captured.Message != "Hi" {
		t.Errorf("unexpected input forwarded to service: %+v", captured)
	}
}

func TestContactHandler_Submit_HoneypotForwarded(t *testing.T) {
	var captured service.SubmitInput
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in service.SubmitInput) error {
			captured = in
			return nil
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(h, `{"email":"bot@spam.com","lang":"en","honeypot":"filled"}`)

	// Honeypot path still returns plain success to the caller.
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 on honeypot path, got %d", rec.Code)
	}
	if captured.Honeypot != "filled" {
		t.Errorf("expected honeypot forwarded, got %q", captured.Honeypot)
	}
}

func TestContactHandler_Submit_ClientIPFromXFF(t *testing.T) {
	var captured service.SubmitInput
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in service.SubmitInput) error {
			captured = in
			return nil
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"email":"a@b.com","lang":"en"}`))
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if captured.ClientIP != "203.0.113.7" {
		t.Errorf("expected leftmost XFF entry, got %q", captured.ClientIP)
	}
}

func TestContactHandler_Submit_ClientIPFromRemoteAddr(t *testing.T) {
	var captured service.SubmitInput
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in service.SubmitInput) error {
			captured = in
			return nil
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"email":"a@b.com","lang":"en"}`))
	req.RemoteAddr = "198.51.100.4:54321"
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if captured.ClientIP != "198.51.100.4" {
		t.Errorf("expected host from RemoteAddr, got %q", captured.ClientIP)
	}
}

func TestContactHandler_Submit_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid email", service.ErrInvalidEmail, http.StatusBadRequest, "invalid_email"},
		{"invalid lang", service.ErrInvalidLang, http.StatusBadRequest, "invalid_lang"},
		{"rate limited", service.ErrRateLimited, http.StatusTooManyRequests, "rate_limit"},
		{"storage", service.ErrStorage, http.StatusInternalServerError, "db_error"},
		{"wrapped storage", errors.Join(service.ErrStorage, errors.New("insert: boom")), http.StatusInternalServerError, "db_error"},
		{"send", service.ErrSend, http.StatusInternalServerError, "server_error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "server_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockContactService{
				submitFunc: func(context.Context, service.SubmitInput) error { return tc.err },
			}
			h := NewContactHandler(mock)

			rec := postContact(h, `{"email":"a@b.com","lang":"en"}`)

			if rec.Code != tc.wantStatus {
				t.Errorf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			var resp map[string]string
			_ = json.NewDecoder(rec.Body).Decode(&resp)
			if resp["error"] != tc.wantCode {
				t.Errorf("expected error=%s, got %q", tc.wantCode, resp["error"])
			}
		})
	}
}

func TestContactHandler_Submit_MalformedJSON(t *testing.T) {
	mock := &mockContactService{
		submitFunc: func(context.Context, service.SubmitInput) error {
			t.Error("service must not be called for malformed JSON")
			return nil
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(h, "{bad json")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for malformed JSON, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp["error"] != "server_error" {
		t.Errorf("expected error=server_error, got %q", resp["error"])
	}
}

func TestContactHandler_Submit_ContentTypeJSON(t *testing.T) {
	h := NewContactHandler(&mockContactService{})
	rec := postContact(h, `{"email":"a@b.com","lang":"en"}`)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %q", ct)
	}
}

// ---------------------------------------------------------------------------
// GET /api/admin/contacts tests
// ---------------------------------------------------------------------------

func TestAdminList_Success(t *testing.T) {
	now := time.Now()
	subs := []*model.ContactSubmission{
		{ID: "1", Email: "a@b.com", Lang: "en", IPHash: "deadbeef", CreatedAt: now},
		{ID: "2", Email: "c@d.com", Lang: "es", Message: "hola", IPHash: "cafe", CreatedAt: now},
	}
	mock := &mockContactService{
		listFunc: func(context.Context, model.ContactListOptions) ([]*model.ContactSubmission, error) {
			return subs, nil
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "deadbeef") {
		t.Error("ip_hash must never be serialized")
	}

	var resp adminListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Contacts) != 2 {
		t.Errorf("expected 2 contacts, got %d", len(resp.Contacts))
	}
}

func TestAdminList_ForwardsFilters(t *testing.T) {
	var captured model.ContactListOptions
	mock := &mockContactService{
		listFunc: func(_ context.Context, opts model.ContactListOptions) ([]*model.ContactSubmission, error) {
			captured = opts
			return nil, nil
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contacts?lang=ca&limit=10&offset=20", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	if captured.Lang != "ca" || captured.Limit != 10 || captured.Offset != 20 {
		t.Errorf("expected lang=ca limit=10 offset=20 forwarded, got %+v", captured)
	}
}

func TestAdminList_DefaultPagination(t *testing.T) {
	var captured model.ContactListOptions
	mock := &mockContactService{
		listFunc: func(_ context.Context, opts model.ContactListOptions) ([]*model.ContactSubmission, error) {
			captured = opts
			return nil, nil
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contacts?limit=9999", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	if captured.Limit != 20 {
		t.Errorf("expected out-of-range limit to fall back to 20, got %d", captured.Limit)
	}
	if captured.Offset != 0 {
		t.Errorf("expected default offset=0, got %d", captured.Offset)
	}
}

func TestAdminList_EmptyList(t *testing.T) {
	mock := &mockContactService{}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"contacts":[]`) {
		t.Errorf("expected empty array, not null — body: %s", rec.Body.String())
	}
}

func TestAdminList_ServiceError(t *testing.T) {
	mock := &mockContactService{
		listFunc: func(context.Context, model.ContactListOptions) ([]*model.ContactSubmission, error) {
			return nil, errors.New("database error")
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on service error, got %d", rec.Code)
	}
}
