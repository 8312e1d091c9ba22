package utils

import (
	"crypto/rand"
	"fmt"
	"net/smtp"
)

// GenerateOTP generates a numeric OTP of n digits (cryptographically random).
func GenerateOTP(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%0*d", n, 0)
	}
	otp := make([]byte, n)
	for i := 0; i < n; i++ {
		otp[i] = '0' + (bytes[i] % 10)
	}
	return string(otp)
}

// Mailer sends plain-text mail over SMTP. The zero value is "not
// configured" and Send returns an error.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
}

func (m Mailer) configured() bool {
	return m.Host != "" && m.Port != "" && m.Username != "" && m.Password != ""
}

// Send delivers a plain-text email to a single recipient.
func (m Mailer) Send(to, subject, body string) error {
	if !m.configured() {
		return fmt.Errorf("smtp not configured")
	}

	addr := m.Host + ":" + m.Port
	from := m.Username

	msg := "From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}
