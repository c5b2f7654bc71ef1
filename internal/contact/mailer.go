package contact

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Mailer delivers a submission to the site owner.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// SMTPMailer sends mail through an authenticated SMTP relay.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// send is smtp.SendMail outside tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer returns a mailer for host:port authenticating as user.
func NewSMTPMailer(host, port, user, pass, to string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Pass: pass, To: to, send: smtp.SendMail}
}

// Send composes the notification and hands it to the relay. smtp.SendMail
// does not take a context, so ctx is only checked before dialing.
func (s *SMTPMailer) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	addr := net.JoinHostPort(s.Host, s.Port)
	if err := s.send(addr, auth, s.User, []string{s.To}, s.compose(m)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (s *SMTPMailer) compose(m Message) []byte {
	var b strings.Builder
	b.WriteString("To: " + s.To + "\r\n")
	b.WriteString("From: " + s.User + "\r\n")
	b.WriteString("Reply-To: " + m.Email + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", "Portfolio Contact: "+m.Name) + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("New contact form submission from your portfolio:\r\n\r\n")
	b.WriteString("Name: " + m.Name + "\r\n")
	b.WriteString("Email: " + m.Email + "\r\n")
	b.WriteString("Message:\r\n")
	b.WriteString(crlf(m.Body) + "\r\n")
	b.WriteString("\r\n---\r\nSent from your portfolio contact form\r\n")
	return []byte(b.String())
}

// crlf rewrites CRLF, bare CR and bare LF line breaks as CRLF. Browsers
// submit textarea breaks as CRLF already.
func crlf(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")
	return strings.ReplaceAll(body, "\n", "\r\n")
}

// LogMailer stands in when SMTP is not configured: submissions are only
// stored and logged.
type LogMailer struct {
	Logger *zap.Logger
}

func (l LogMailer) Send(_ context.Context, m Message) error {
	l.Logger.Warn("SMTP not configured, contact message not emailed",
		zap.String("name", m.Name))
	return nil
}
