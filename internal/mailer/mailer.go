package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email over SMTP. Delivery is best effort: the
// auth flows log failures and carry on, so errors here are never fatal to a
// request.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New creates a mailer for the given SMTP endpoint
func New(host string, port int, user, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

// SendPasswordReset emails the reset link to the user
func (m *Mailer) SendPasswordReset(to, link string, validFor time.Duration) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your password")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Use this link to reset your password (valid %d minutes):\n\n%s",
		int(validFor.Minutes()), link,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}
