package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"net/textproto"
	"time"

	"portal_creditos/internal/config"
	"portal_creditos/internal/middleware"
	"portal_creditos/internal/model"
)

// Mailer envía un correo con cuerpo HTML y alternativa de texto plano.
// Reintentar un envío con el mismo enlace es inofensivo; no hay deduplicación.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// --- LogMailer ---

// LogMailer solo registra el correo; se usa en desarrollo y en tests.
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Email (LogMailer) ---", "to", to, "subject", subject, "body", textBody)
	return nil
}

// --- SMTPMailer ---

type SMTPMailer struct {
	cfg *config.SMTPConfig
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	logger := middleware.GetLogger(ctx)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	logger.Debug("Attempting to send email via SMTP",
		"smtp_addr", addr,
		"from", m.cfg.From,
		"to", to,
	)

	// Explicit dial timeout so a stuck server never holds a request hostage.
	conn, err := net.DialTimeout("tcp", addr, m.cfg.SendTimeout)
	if err != nil {
		logger.Error("Failed to connect to SMTP server", "error", err, "addr", addr)
		return classifySMTPError(err)
	}
	conn.SetDeadline(deadlineFrom(ctx, m.cfg.SendTimeout))

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		logger.Error("Failed to start SMTP session", "error", err, "addr", addr)
		return classifySMTPError(err)
	}
	defer c.Close()

	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err = c.Auth(auth); err != nil {
			logger.Error("SMTP authentication failed", "error", err)
			return classifySMTPError(err)
		}
	}

	if err = c.Mail(m.cfg.From); err != nil {
		logger.Error("Failed to set MAIL FROM", "error", err, "from", m.cfg.From)
		return classifySMTPError(err)
	}
	if err = c.Rcpt(to); err != nil {
		logger.Error("Failed to set RCPT TO", "error", err, "to", to)
		return classifySMTPError(err)
	}

	wc, err := c.Data()
	if err != nil {
		logger.Error("Failed to open data writer", "error", err)
		return classifySMTPError(err)
	}
	defer wc.Close()

	msg := buildMIMEMessage(m.cfg.From, to, subject, htmlBody, textBody)
	if _, err = wc.Write([]byte(msg)); err != nil {
		logger.Error("Failed to write email data", "error", err)
		return classifySMTPError(err)
	}

	logger.Info("Email sent successfully via SMTP", "to", to, "subject", subject)
	return nil
}

// buildMIMEMessage arma un multipart/alternative con parte de texto y HTML.
func buildMIMEMessage(from, to, subject, htmlBody, textBody string) string {
	const boundary = "portal-creditos-alt"
	return "From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: multipart/alternative; boundary=" + boundary + "\r\n" +
		"\r\n" +
		"--" + boundary + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		textBody + "\r\n" +
		"--" + boundary + "\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		htmlBody + "\r\n" +
		"--" + boundary + "--\r\n"
}

// deadlineFrom toma el deadline del contexto si existe y es más cercano que
// el timeout configurado.
func deadlineFrom(ctx context.Context, timeout time.Duration) time.Time {
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		return d
	}
	return deadline
}

// classifySMTPError agrupa el error de transporte en una categoría para el
// mensaje al cliente. El error crudo ya quedó en los logs.
func classifySMTPError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.NewMailError(model.MailErrTimeout, err)
	}

	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 530, 534, 535:
			return model.NewMailError(model.MailErrAuth, err)
		case 550, 551, 553:
			return model.NewMailError(model.MailErrSenderRejected, err)
		case 421, 450, 452:
			return model.NewMailError(model.MailErrRateLimited, err)
		}
	}
	return model.NewMailError(model.MailErrUnknown, err)
}

// --- NewMailer factory ---

func NewMailer(cfg *config.Config) Mailer {
	logger := slog.Default()
	switch cfg.Mailer.Type {
	case "smtp":
		logger.Info("Initializing SMTP mailer...")
		return &SMTPMailer{cfg: &cfg.SMTP}
	case "ses":
		logger.Info("Initializing SES mailer...")
		return NewSESMailer(cfg)
	case "log":
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}
	default:
		logger.Warn("Unknown mailer type, defaulting to LogMailer", "type", cfg.Mailer.Type)
		return &LogMailer{}
	}
}
