// Package notify renders and delivers order/account emails. Delivery is
// always best-effort: failures are logged and never surfaced to the request
// that triggered them.
package notify

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

var ErrNotConfigured = errors.New("smtp not configured")

type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer delivers over a plain SMTP relay. Port 465 uses implicit TLS,
// everything else goes through smtp.SendMail (STARTTLS when offered).
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func (m *SMTPMailer) Configured() bool {
	return m.Host != "" && m.Username != ""
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	if !m.Configured() {
		return ErrNotConfigured
	}

	addr := m.Host + ":" + m.Port
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	raw := buildRaw(m.From, to, subject, htmlBody)

	if m.Port == "465" {
		return m.sendTLS(addr, auth, to, raw)
	}
	return smtp.SendMail(addr, auth, m.From, []string{to}, raw)
}

func (m *SMTPMailer) sendTLS(addr string, auth smtp.Auth, to string, raw []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.Host})
	if err != nil {
		return fmt.Errorf("notify: TLS dial: %w", err)
	}
	client, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(m.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	defer w.Close()
	_, err = w.Write(raw)
	return err
}

func buildRaw(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
