// Package contact handles contact form submissions: validation, storage and
// delivery by email.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/store"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid message")

const (
	maxName  = 100
	maxEmail = 254
	maxBody  = 5000
)

// Message is a contact form submission.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Normalize trims surrounding whitespace from every field.
func (m Message) Normalize() Message {
	return Message{
		Name:  strings.TrimSpace(m.Name),
		Email: strings.TrimSpace(m.Email),
		Body:  strings.TrimSpace(m.Body),
	}
}

// Validate checks required fields, lengths and the address. The error text
// is safe to show to the visitor.
func (m Message) Validate() error {
	switch {
	case m.Name == "":
		return fmt.Errorf("%w: please tell me your name", ErrInvalid)
	case utf8.RuneCountInString(m.Name) > maxName:
		return fmt.Errorf("%w: name is too long", ErrInvalid)
	case m.Email == "":
		return fmt.Errorf("%w: please include your email address", ErrInvalid)
	case len(m.Email) > maxEmail:
		return fmt.Errorf("%w: email address is too long", ErrInvalid)
	case m.Body == "":
		return fmt.Errorf("%w: the message is empty", ErrInvalid)
	case utf8.RuneCountInString(m.Body) > maxBody:
		return fmt.Errorf("%w: the message is too long", ErrInvalid)
	}
	// Bare addresses only; a display name could smuggle extra headers.
	addr, err := mail.ParseAddress(m.Email)
	if err != nil || addr.Address != m.Email {
		return fmt.Errorf("%w: that email address does not look right", ErrInvalid)
	}
	if strings.ContainsAny(m.Name, "\r\n") {
		return fmt.Errorf("%w: name must be a single line", ErrInvalid)
	}
	return nil
}

// Reason returns the visitor-facing part of a validation error.
func Reason(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalid.Error()+": ")
}

// Saver persists submissions.
type Saver interface {
	SaveMessage(ctx context.Context, name, email, body string) (store.Message, error)
}

// Service stores submissions and forwards them to the site owner.
type Service struct {
	saver  Saver
	mailer Mailer
	logger *zap.Logger
}

// NewService returns a Service.
func NewService(saver Saver, mailer Mailer, logger *zap.Logger) *Service {
	return &Service{saver: saver, mailer: mailer, logger: logger}
}

// Submit validates m, stores it and emails it. Once stored the submission
// has succeeded: a failed email is only logged, and the message stays in the
// admin inbox.
func (s *Service) Submit(ctx context.Context, m Message) error {
	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return err
	}

	saved, err := s.saver.SaveMessage(ctx, m.Name, m.Email, m.Body)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	if err := s.mailer.Send(ctx, m); err != nil {
		s.logger.Error("sending contact email", zap.Int64("message_id", saved.ID), zap.Error(err))
		return nil
	}

	s.logger.Info("contact message received", zap.Int64("message_id", saved.ID))
	return nil
}
