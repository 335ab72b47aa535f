// Package mailer sends transactional email. It sits outside the registration
// transaction: callers fire it after the commit and only log failures.
package mailer

import (
	"fmt"
	"net/smtp"
)

type Mailer interface {
	SendWelcome(to, name string) error
}

// SMTPMailer delivers through a plain SMTP relay with AUTH PLAIN.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{
		addr: host + ":" + port,
		auth: smtp.PlainAuth("", user, pass, host),
		from: from,
	}
}

func (m *SMTPMailer) SendWelcome(to, name string) error {
	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Welcome to OlaTube\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n"+
		"Hi %s,\r\n\r\nYour sign-up was successful. Thanks for registering, we are excited to have you on board.\r\n\r\nThe OlaTube Team\r\n",
		m.from, to, name)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(body)); err != nil {
		return fmt.Errorf("sending welcome mail to %s: %w", to, err)
	}
	return nil
}

// Nop drops all mail. Used when SMTP is not configured, and in tests.
type Nop struct{}

func (Nop) SendWelcome(string, string) error { return nil }
