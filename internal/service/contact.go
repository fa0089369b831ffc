package service

import (
	"context"
	"fmt"

	"github.com/almadepapel/storefront/internal/logging"
	"github.com/almadepapel/storefront/internal/mail"
	"github.com/almadepapel/storefront/internal/transport"
)

type ContactService struct {
	Sender mail.Sender
}

// Relay dispatches the contact form to the fixed destination address.
// Relay failures are not retried.
func (s *ContactService) Relay(ctx context.Context, req transport.ContactRequest) error {
	l := logging.FromContext(ctx).With("svc", "contact.relay")

	if err := req.Validate(); err != nil {
		return ErrValidation
	}

	subject := fmt.Sprintf("[Contato] %s", req.Subject)
	if err := s.Sender.Send(req.Name, req.Email, subject, req.Message); err != nil {
		l.Error("contact_relay_error", "error", err)
		return fmt.Errorf("mail relay: %w", err)
	}
	return nil
}
