package model

import "time"

// ContactSubmission represents a lead captured via the contact form.
// Records are immutable: once inserted they are never updated or deleted
// by this service.
type ContactSubmission struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Message string `json:"message,omitempty"`
	Lang    string `json:"lang"`
	// IPHash is a salted SHA-256 digest of the requester's source IP,
	// used only for rate limiting. It is never serialized.
	IPHash    string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// supportedLangs is the fixed set of locales the site ships templates for.
var supportedLangs = map[string]bool{
	"es": true,
	"en": true,
	"ca": true,
	"gl": true,
}

// SupportedLang reports whether lang is one of the supported locale codes.
func SupportedLang(lang string) bool {
	return supportedLangs[lang]
}

// ContactListOptions carries filter and pagination parameters for the
// admin listing of submissions.
type ContactListOptions struct {
	// Lang filters by locale code. Empty string returns all submissions.
	Lang   string
	Limit  int
	Offset int
}
