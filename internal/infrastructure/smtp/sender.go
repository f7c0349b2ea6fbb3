// Package smtp implements the outbound mail transport over SMTP.
package smtp

import (
	"crypto/tls"
	"fmt"

	mail "github.com/go-mail/mail"
	"github.com/rs/zerolog/log"

	"vn.io.arda/taskmail/internal/config"
	"vn.io.arda/taskmail/internal/domain"
)

// Sender implements domain.Mailer using an SMTP server.
type Sender struct {
	host     string
	port     int
	user     string
	password string
	from     string
	fromName string
	// tlsMode is "auto", "starttls", "ssl" or "none".
	tlsMode string
}

// New creates a Sender from the SMTP configuration.
func New(cfg config.SMTPConfig) *Sender {
	tlsMode := cfg.TLSMode
	if tlsMode == "" {
		tlsMode = "auto"
	}
	return &Sender{
		host:     cfg.Host,
		port:     cfg.Port,
		user:     cfg.User,
		password: cfg.Password,
		from:     cfg.From,
		fromName: cfg.FromName,
		tlsMode:  tlsMode,
	}
}

// Send delivers one HTML message. Transport failures are classified as
// domain.ErrDelivery for per-recipient isolation in the dispatch loop.
func (s *Sender) Send(toEmail, toName, subject, body string) error {
	m := mail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetAddressHeader("To", toEmail, toName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(s.host, s.port, s.user, s.password)
	d.TLSConfig = &tls.Config{ServerName: s.host}

	switch s.tlsMode {
	case "ssl":
		d.SSL = true
	case "none":
		d.TLSConfig = nil
	default:
		// "auto"/"starttls": go-mail negotiates STARTTLS when offered.
	}

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: smtp send to %s: %v", domain.ErrDelivery, toEmail, err)
	}

	log.Debug().Str("to", toEmail).Str("subject", subject).Msg("email sent")
	return nil
}
