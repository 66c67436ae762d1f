package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"
)

// Sender dispatches transactional email. The credential core never calls
// it; the request handlers do, after the core has done its part.
type Sender interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// MailgunSender delivers through the Mailgun API. Used in production.
type MailgunSender struct {
	client *mailgun.MailgunImpl
	domain string
	logger *zap.Logger
}

func NewMailgunSender(domain, apiKey string, logger *zap.Logger) *MailgunSender {
	return &MailgunSender{
		client: mailgun.NewMailgun(domain, apiKey),
		domain: domain,
		logger: logger,
	}
}

func (s *MailgunSender) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	msg := s.client.NewMessage(fmt.Sprintf("Blog Post API <noreply@%s>", s.domain), subject, "", to)
	msg.SetHtml(htmlBody)

	_, _, err := s.client.Send(ctx, msg)
	if err != nil {
		s.logger.Error("failed to send email via mailgun", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("mailgun send: %w", err)
	}

	s.logger.Info("email sent via mailgun", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// SMTPSender delivers through a plain SMTP relay, MailHog in
// development.
type SMTPSender struct {
	addr   string
	auth   smtp.Auth
	logger *zap.Logger
}

func NewSMTPSender(host, port, user, pass string, logger *zap.Logger) *SMTPSender {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	return &SMTPSender{
		addr:   fmt.Sprintf("%s:%s", host, port),
		auth:   auth,
		logger: logger,
	}
}

func (s *SMTPSender) SendEmail(_ context.Context, to, subject, htmlBody string) error {
	from := "noreply@localhost"
	msg := buildMessage(from, to, subject, htmlBody)

	if err := smtp.SendMail(s.addr, s.auth, from, []string{to}, msg); err != nil {
		s.logger.Error("failed to send email via smtp", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("smtp send: %w", err)
	}

	s.logger.Info("email sent via smtp", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: Blog Post API <%s>\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
