// Package mailer delivers transactional email over SMTP. Port 465 uses
// implicit TLS, anything else upgrades via STARTTLS.
package mailer

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"time"

	"github.com/isodigm/blogcms/internal/config"
	"github.com/isodigm/blogcms/internal/errors"
	"github.com/isodigm/blogcms/internal/logger"
)

type Mailer struct {
	config  *config.Smtp
	auth    smtp.Auth
	baseURL string
}

func New(cfg *config.Smtp, baseURL string) *Mailer {
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Server)
	return &Mailer{
		config:  cfg,
		auth:    auth,
		baseURL: baseURL,
	}
}

func (m *Mailer) IsCorrect(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.BadRequest("Invalid email format")
	}
	return nil
}

// SendVerificationEmail sends the confirmation link for a freshly issued
// verification token. Callers treat failure as non-fatal: the token stays
// valid and the user can request a resend.
func (m *Mailer) SendVerificationEmail(toAddress, displayName, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.baseURL, token)

	subject := "Email Verification Required - Blog CMS"
	body := fmt.Sprintf(`Hello %s,

Thank you for registering. Please visit the following link to verify your email address:

%s

This link will expire in 24 hours.

If you did not create an account, please ignore this email.

Best regards,
Blog CMS Team
`, displayName, link)

	return m.Send(toAddress, subject, body)
}

func (m *Mailer) Send(recipientEmail, subject, body string) error {
	msg := m.buildMessage(recipientEmail, subject, body)
	address := fmt.Sprintf("%s:%d", m.config.Server, m.config.Port)

	// Port 465 = implicit TLS, otherwise STARTTLS
	if m.config.Port == 465 {
		return m.sendImplicitTLS(address, recipientEmail, msg)
	}
	return m.sendSTARTTLS(address, recipientEmail, msg)
}

func (m *Mailer) buildMessage(recipientEmail, subject, body string) []byte {
	from := m.config.From
	if from == "" {
		from = m.config.Username
	}
	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nDate: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n",
		from, recipientEmail, subject, time.Now().Format(time.RFC1123Z))
	return []byte(headers + body)
}

func (m *Mailer) timeout() time.Duration {
	timeout := time.Duration(m.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return timeout
}

// sendImplicitTLS sends email over a connection that is TLS from the start (port 465).
func (m *Mailer) sendImplicitTLS(address, recipientEmail string, msg []byte) error {
	tlsConfig := &tls.Config{ServerName: m.config.Server}

	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: m.timeout()}, "tcp", address, tlsConfig)
	if err != nil {
		logger.Log.Error("failed to connect to SMTP server (implicit TLS)", "address", address, "error", err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.config.Server)
	if err != nil {
		logger.Log.Error("failed to create SMTP client", "error", err)
		return err
	}
	defer client.Close()

	return m.sendViaClient(client, recipientEmail, msg)
}

// sendSTARTTLS sends email by upgrading a plain connection to TLS (port 587).
func (m *Mailer) sendSTARTTLS(address, recipientEmail string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", address, m.timeout())
	if err != nil {
		logger.Log.Error("failed to connect to SMTP server", "address", address, "error", err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.config.Server)
	if err != nil {
		logger.Log.Error("failed to create SMTP client", "error", err)
		return err
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: m.config.Server}
	if err = client.StartTLS(tlsConfig); err != nil {
		logger.Log.Error("failed to start TLS", "error", err)
		return err
	}

	return m.sendViaClient(client, recipientEmail, msg)
}

// sendViaClient performs auth, sets sender/recipient, and sends the message body.
func (m *Mailer) sendViaClient(client *smtp.Client, recipientEmail string, msg []byte) error {
	if err := client.Auth(m.auth); err != nil {
		logger.Log.Error("SMTP authentication failed", "error", err)
		return err
	}

	if err := client.Mail(m.config.Username); err != nil {
		logger.Log.Error("failed to set sender", "error", err)
		return err
	}

	if err := client.Rcpt(recipientEmail); err != nil {
		logger.Log.Error("failed to set recipient", "recipient", recipientEmail, "error", err)
		return err
	}

	w, err := client.Data()
	if err != nil {
		logger.Log.Error("failed to open message body", "error", err)
		return err
	}
	if _, err := w.Write(msg); err != nil {
		logger.Log.Error("failed to write message body", "error", err)
		return err
	}
	if err := w.Close(); err != nil {
		logger.Log.Error("failed to close message body", "error", err)
		return err
	}

	return client.Quit()
}
