package mail

import (
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/almadepapel/storefront/internal/config"
)

// Sender relays a composed message to the mail provider.
type Sender interface {
	Send(from, replyTo, subject, body string) error
}

// SMTPSender dials the relay per message; the storefront's contact volume
// does not justify a held connection.
type SMTPSender struct {
	Host string
	Port int
	User string
	Pass string
	To   string
}

func NewSMTPSender(cfg *config.Config) (*SMTPSender, error) {
	port, err := strconv.Atoi(cfg.SMTP_PORT)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", cfg.SMTP_PORT, err)
	}
	return &SMTPSender{
		Host: cfg.SMTP_HOST,
		Port: port,
		User: cfg.SMTP_USER,
		Pass: cfg.SMTP_PASSWORD,
		To:   cfg.CONTACT_TO,
	}, nil
}

func (s *SMTPSender) Send(from, replyTo, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.User)
	m.SetHeader("To", s.To)
	m.SetHeader("Reply-To", replyTo)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", fmt.Sprintf("De: %s <%s>\n\n%s", from, replyTo, body))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	return d.DialAndSend(m)
}
