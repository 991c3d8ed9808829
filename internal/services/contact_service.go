package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/BradenHooton/portfolio/internal/models"
	pkglogger "github.com/BradenHooton/portfolio/pkg/logger"
)

const defaultContactSubject = "New message from your portfolio"

var contactHTML = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2>{{.Subject}}</h2>
    <p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
    <div style="white-space: pre-wrap; border-left: 4px solid #0066cc; padding-left: 12px;">{{.Message}}</div>
</body>
</html>
`))

// ContactService forwards contact form submissions to the site owner.
type ContactService struct {
	mailer    Mailer
	toAddress string
	logger    *slog.Logger
}

// NewContactService creates a contact service. A nil mailer disables
// submissions with models.ErrMailDisabled.
func NewContactService(mailer Mailer, toAddress string, logger *slog.Logger) *ContactService {
	return &ContactService{
		mailer:    mailer,
		toAddress: toAddress,
		logger:    logger,
	}
}

// Submit sends one contact message. The request is expected to have passed
// struct validation already.
func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest) error {
	if s.mailer == nil {
		return models.ErrMailDisabled
	}

	// Honeypot filled in: pretend success so bots learn nothing.
	if strings.TrimSpace(req.Website) != "" {
		s.logger.WarnContext(ctx, "contact submission dropped by honeypot",
			slog.String("email", pkglogger.SanitizedEmail(req.Email)))
		return nil
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if req.Subject == "" {
		req.Subject = defaultContactSubject
	}

	var html bytes.Buffer
	if err := contactHTML.Execute(&html, req); err != nil {
		return fmt.Errorf("render contact email: %w", err)
	}

	email := Email{
		To:       s.toAddress,
		ReplyTo:  req.Email,
		Subject:  req.Subject,
		TextBody: fmt.Sprintf("From: %s <%s>\n\n%s\n", req.Name, req.Email, req.Message),
		HTMLBody: html.String(),
	}

	if err := s.mailer.Send(ctx, email); err != nil {
		s.logger.ErrorContext(ctx, "failed to deliver contact message", slog.Any("error", err))
		return models.ErrUpstreamUnavailable
	}

	s.logger.InfoContext(ctx, "contact message delivered",
		slog.String("email", pkglogger.SanitizedEmail(req.Email)))
	return nil
}
