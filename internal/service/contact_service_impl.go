package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/ismobla/portfolio-api/internal/mail"
	"github.com/ismobla/portfolio-api/internal/model"
	"github.com/ismobla/portfolio-api/internal/repository"
	"github.com/ismobla/portfolio-api/pkg/resend"
)

// emailPattern is a deliberately loose local@domain.tld shape check; real
// validation happens when the visitor email bounces or not.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// cvFilename is the attachment name shown to the visitor.
const cvFilename = "CV_Ismael_Morejon.pdf"

// Options carries the deployment-specific knobs for the contact service.
type Options struct {
	IPSalt      string
	MailFrom    string
	NotifyFrom  string
	NotifyEmail string
	CVURL       string // optional; empty sends the visitor email without attachment

	RateLimitMax    int
	RateLimitWindow time.Duration
}

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo   repository.ContactRepository
	mailer resend.Client
	opts   Options
}

// NewContactService creates a ContactService backed by the given repository
// and mailer.
func NewContactService(repo repository.ContactRepository, mailer resend.Client, opts Options) ContactService {
	return &contactServiceImpl{repo: repo, mailer: mailer, opts: opts}
}

// Submit runs the intake pipeline in a fixed order. Validation and the rate
// check happen before any side effect; the two sends happen after the record
// is durable and do not roll it back on failure.
func (s *contactServiceImpl) Submit(ctx context.Context, in SubmitInput) error {
	// Bots fill the hidden field. Report success without any side effect so
	// the caller cannot tell it was classified as spam.
	if in.Honeypot != "" {
		slog.Info("honeypot tripped, dropping submission")
		return nil
	}

	if !emailPattern.MatchString(in.Email) {
		return ErrInvalidEmail
	}
	if !model.SupportedLang(in.Lang) {
		return ErrInvalidLang
	}

	ipHash := hashIP(in.ClientIP, s.opts.IPSalt)

	ok, err := s.repo.WithinRateLimit(ctx, in.Email, ipHash, s.opts.RateLimitWindow, s.opts.RateLimitMax)
	if err != nil {
		return fmt.Errorf("%w: rate check: %v", ErrStorage, err)
	}
	if !ok {
		return ErrRateLimited
	}

	sub := &model.ContactSubmission{
		Email:   in.Email,
		Message: in.Message,
		Lang:    in.Lang,
		IPHash:  ipHash,
	}
	if err := s.repo.Save(ctx, sub); err != nil {
		return fmt.Errorf("%w: insert: %v", ErrStorage, err)
	}

	if err := s.sendVisitorEmail(ctx, sub); err != nil {
		return fmt.Errorf("%w: visitor email: %v", ErrSend, err)
	}
	if err := s.sendNotification(ctx, sub); err != nil {
		return fmt.Errorf("%w: notification email: %v", ErrSend, err)
	}

	slog.Info("contact submission accepted", "lang", sub.Lang, "id", sub.ID)
	return nil
}

// sendVisitorEmail sends the localized reply to the visitor, attaching the
// CV when a URL is configured.
func (s *contactServiceImpl) sendVisitorEmail(ctx context.Context, sub *model.ContactSubmission) error {
	tmpl, ok := mail.TemplateFor(sub.Lang)
	if !ok {
		// Lang was validated above; reaching here means the template table
		// and the supported-locale set drifted apart.
		return fmt.Errorf("no template for lang %q", sub.Lang)
	}

	params := resend.SendParams{
		From:    s.opts.MailFrom,
		To:      []string{sub.Email},
		Subject: tmpl.Subject,
		HTML:    mail.RenderBody(tmpl.Body),
	}
	if s.opts.CVURL != "" {
		params.Attachments = []resend.Attachment{{Filename: cvFilename, Path: s.opts.CVURL}}
	}

	_, err := s.mailer.Send(ctx, params)
	return err
}

// sendNotification sends the fixed-format new-lead summary to the operator.
func (s *contactServiceImpl) sendNotification(ctx context.Context, sub *model.ContactSubmission) error {
	_, err := s.mailer.Send(ctx, resend.SendParams{
		From:    s.opts.NotifyFrom,
		To:      []string{s.opts.NotifyEmail},
		Subject: mail.NotificationSubject(sub.Email),
		HTML:    mail.RenderNotification(sub.Email, sub.Lang, sub.Message, sub.CreatedAt),
	})
	return err
}

// List returns persisted submissions for the admin view.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactSubmission, error) {
	return s.repo.List(ctx, opts)
}

// hashIP returns the hex SHA-256 of ip+salt. One-way by construction: the
// clear IP never leaves this function.
func hashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])
}
