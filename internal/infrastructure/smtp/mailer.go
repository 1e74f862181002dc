package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/carzilla/auth-api/internal/config"
)

// Mailer sends emails.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	fromName string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		fromName: cfg.AppName,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) SendEmail(to, subject, body string) error {
	headers := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n",
		m.fromName, m.from, to, subject)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(headers+body))
}

// OTPEmailBody renders the sign-in code email. Kept deliberately small: the
// code, the expiry window, and a do-not-share notice.
func OTPEmailBody(appName, otp string, ttlMinutes int) string {
	return fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #333;">
<h2>%s — Your Sign-In Code</h2>
<p>Use this code to complete your sign-in:</p>
<div style="font-size: 36px; font-weight: bold; letter-spacing: 8px;">%s</div>
<p>This code will expire in <strong>%d minutes</strong>.</p>
<p style="font-size: 13px; color: #999;">Never share this code with anyone. If you didn't request it, ignore this email.</p>
</body></html>`, appName, otp, ttlMinutes)
}
