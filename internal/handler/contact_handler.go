package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/ismobla/portfolio-api/internal/model"
	"github.com/ismobla/portfolio-api/internal/service"
)

// ContactHandler handles contact form submission and the admin listing.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitRequest is the expected JSON body for POST /api/contact.
// honeypot is a hidden form field that only bots populate.
type submitRequest struct {
	Email    string `json:"email"`
	Message  string `json:"message"`
	Lang     string `json:"lang"`
	Honeypot string `json:"honeypot"`
}

// Submit handles POST /api/contact. Accepted submissions and tripped
// honeypots are indistinguishable on the wire: both return {"success":true}.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	in := service.SubmitInput{
		Email:    req.Email,
		Message:  req.Message,
		Lang:     req.Lang,
		Honeypot: req.Honeypot,
		ClientIP: clientIP(r),
	}

	err := h.contactService.Submit(r.Context(), in)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	case errors.Is(err, service.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "invalid_email")
	case errors.Is(err, service.ErrInvalidLang):
		writeError(w, http.StatusBadRequest, "invalid_lang")
	case errors.Is(err, service.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate_limit")
	case errors.Is(err, service.ErrStorage):
		slog.Error("contact submission storage failure", "error", err)
		writeError(w, http.StatusInternalServerError, "db_error")
	default:
		slog.Error("contact submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}

// adminListResponse is the JSON response for GET /api/admin/contacts.
type adminListResponse struct {
	Contacts []*model.ContactSubmission `json:"contacts"`
}

// AdminList handles GET /api/admin/contacts (operator token required, enforced
// by middleware). Supports query params: lang, limit, offset.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	opts := model.ContactListOptions{
		Lang:   r.URL.Query().Get("lang"),
		Limit:  20,
		Offset: 0,
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			opts.Limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	contacts, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		slog.Error("admin contact list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	// Return [] not null for empty lists
	if contacts == nil {
		contacts = []*model.ContactSubmission{}
	}

	writeJSON(w, http.StatusOK, adminListResponse{Contacts: contacts})
}

// clientIP extracts the requester's source IP. The deployment sits behind a
// trusted edge, so the leftmost X-Forwarded-For entry wins; direct
// connections fall back to RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
