package service

import (
	"context"
	"errors"

	"github.com/ismobla/portfolio-api/internal/model"
)

// Submission outcomes surfaced to the handler. Storage and send failures
// wrap the underlying cause; the handler maps each to the wire error enum.
var (
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidLang  = errors.New("unsupported lang")
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrStorage      = errors.New("storage failure")
	ErrSend         = errors.New("email send failure")
)

// SubmitInput is one contact-form submission as received from the handler.
// ClientIP is the requester's source IP; it is hashed before any use and
// never persisted in clear.
type SubmitInput struct {
	Email    string
	Message  string
	Lang     string
	Honeypot string
	ClientIP string
}

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit runs the full intake pipeline: honeypot check, validation,
	// rate limiting, persistence, and the two outbound emails. A tripped
	// honeypot returns nil with no side effects.
	Submit(ctx context.Context, in SubmitInput) error

	// List returns persisted submissions for the admin view.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactSubmission, error)
}
