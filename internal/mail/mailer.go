package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends workspace invitation mails. Delivery is best-effort: callers
// log failures and carry on.
type Mailer interface {
	SendInvitation(ctx context.Context, to, invitationLink string) error
}

// NoopMailer is used when mail is disabled in config.
type NoopMailer struct{}

func (NoopMailer) SendInvitation(context.Context, string, string) error { return nil }

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendInvitation(_ context.Context, to, invitationLink string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Workspace Invitation")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>You have been invited to join the workspace. Click <a href="%s">here</a> to join.</p>`,
		invitationLink))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send invitation mail: %w", err)
	}
	return nil
}

var _ Mailer = (*SMTPMailer)(nil)
var _ Mailer = NoopMailer{}
