// Package mailer formats and delivers price alert emails.
package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/presyo/backend/internal/config"
)

// EmailSender defines the interface for handing a rendered message to a
// transport. The alert runner only depends on the error outcome.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

// SMTPSender delivers mail over plain SMTP.
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPSender creates a sender from mail configuration.
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
	}
}

// Send delivers one HTML message.
func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	msg := []byte("From: " + s.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		htmlBody + "\r\n")

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// LogSender is the sandbox transport: it logs the would-be send and reports
// success. Used in development and as the test double.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sandbox sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the message instead of delivering it.
func (s *LogSender) Send(to, subject, htmlBody string) error {
	s.logger.Info("sandbox mail (not delivered)",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("body_bytes", len(htmlBody)),
	)
	return nil
}

// NewSender returns the transport matching the configuration: LogSender in
// sandbox mode, SMTP otherwise.
func NewSender(cfg config.MailConfig, logger *slog.Logger) EmailSender {
	if cfg.Sandbox {
		return NewLogSender(logger)
	}
	return NewSMTPSender(cfg)
}
