package mail

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	portssvc "github.com/hardiknj/auth_session_app/internal/core/ports/services"
	"github.com/hardiknj/auth_session_app/internal/platform/config"
)

// smtpMailer sends transactional emails over SMTP.
type smtpMailer struct {
	dialer    *gomail.Dialer
	from      string
	clientURL string
}

// logMailer is the fallback when SMTP is not configured: it logs the mail it would
// have sent. Keeps local development working without a mail server.
type logMailer struct {
	logger    *slog.Logger
	clientURL string
}

// NewMailer creates a MailerSvc. Without an SMTP host configured it degrades to a
// logging mailer.
func NewMailer(cfg *config.Config, logger *slog.Logger) portssvc.MailerSvc {
	if cfg.SMTPHost == "" {
		return &logMailer{logger: logger, clientURL: cfg.ClientURL}
	}
	return &smtpMailer{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:      cfg.MailFrom,
		clientURL: cfg.ClientURL,
	}
}

func verificationLink(clientURL, token string) string {
	return fmt.Sprintf("%s/verify/%s", clientURL, token)
}

func resetLink(clientURL, token string) string {
	return fmt.Sprintf("%s/reset-password/%s", clientURL, token)
}

func (m *smtpMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (m *smtpMailer) SendVerificationEmail(ctx context.Context, toEmail, fullname, token string) error {
	link := verificationLink(m.clientURL, token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Please verify your email address by clicking the link below:</p><p><a href=%q>%s</a></p><p>The link expires in 24 hours.</p>",
		fullname, link, link,
	)
	return m.send(toEmail, "Verify your email address", body)
}

func (m *smtpMailer) SendPasswordResetEmail(ctx context.Context, toEmail, fullname, token string) error {
	link := resetLink(m.clientURL, token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>We received a request to reset your password. Click the link below to choose a new one:</p><p><a href=%q>%s</a></p><p>If you did not request this, you can safely ignore this email.</p>",
		fullname, link, link,
	)
	return m.send(toEmail, "Reset your password", body)
}

func (m *logMailer) SendVerificationEmail(ctx context.Context, toEmail, fullname, token string) error {
	m.logger.Info("verification email (SMTP not configured)",
		slog.String("to", toEmail), slog.String("link", verificationLink(m.clientURL, token)))
	return nil
}

func (m *logMailer) SendPasswordResetEmail(ctx context.Context, toEmail, fullname, token string) error {
	m.logger.Info("password reset email (SMTP not configured)",
		slog.String("to", toEmail), slog.String("link", resetLink(m.clientURL, token)))
	return nil
}
