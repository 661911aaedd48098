package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/seasonwork/seasonwork-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendVerificationApproved(to, name string) error
	SendVerificationRejected(to, name, reviewNote string) error
	SendCreditsGranted(to string, credits int) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type verificationEmailData struct {
	Name       string
	ReviewNote string
}

// SendVerificationApproved notifies a worker that their identity
// document was approved.
func (s *emailServiceImpl) SendVerificationApproved(to, name string) error {
	data := verificationEmailData{Name: name}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "verification_approved.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Your identity verification was approved", body.String())
}

// SendVerificationRejected notifies a worker that their identity
// document was rejected, including the reviewer's note when present.
func (s *emailServiceImpl) SendVerificationRejected(to, name, reviewNote string) error {
	data := verificationEmailData{Name: name, ReviewNote: reviewNote}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "verification_rejected.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Your identity verification was not approved", body.String())
}

type creditsEmailData struct {
	Credits int
}

// SendCreditsGranted confirms a listing credit purchase.
func (s *emailServiceImpl) SendCreditsGranted(to string, credits int) error {
	data := creditsEmailData{Credits: credits}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "credits_granted.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Listing credits added to your account", body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.FromEmail

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
