package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPOptions configures an SMTPSender.
type SMTPOptions struct {
	Host      string
	Port      int
	Secure    bool
	Username  string
	Password  string
	FromName  string
	FromEmail string
	Location  *time.Location
}

// SMTPSender implements the Sender interface using a direct SMTP connection via go-mail.
type SMTPSender struct {
	opts SMTPOptions
	loc  *time.Location
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(opts SMTPOptions) *SMTPSender {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &SMTPSender{opts: opts, loc: loc}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.opts.FromName, s.opts.FromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	clientOpts := []gomail.Option{
		gomail.WithPort(s.opts.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.opts.Username),
		gomail.WithPassword(s.opts.Password),
		gomail.WithTimeout(15 * time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	}
	if s.opts.Secure {
		clientOpts = append(clientOpts, gomail.WithSSL())
	} else {
		clientOpts = append(clientOpts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(s.opts.Host, clientOpts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendAppointmentConfirmation(ctx context.Context, msg Confirmation) error {
	subject, content, err := renderConfirmation(msg, s.loc)
	if err != nil {
		return err
	}
	return s.send(ctx, msg.ToEmail, subject, content)
}

func (s *SMTPSender) SendOrganizerNotification(ctx context.Context, msg OrganizerNotification) error {
	if msg.ToEmail == "" {
		return ErrNoOrganizer
	}
	subject, content, err := renderOrganizerNotification(msg, s.loc)
	if err != nil {
		return err
	}
	return s.send(ctx, msg.ToEmail, subject, content)
}

func (s *SMTPSender) SendAppointmentReminder(ctx context.Context, msg Reminder) error {
	subject, content, err := renderReminder(msg, s.loc)
	if err != nil {
		return err
	}
	return s.send(ctx, msg.ToEmail, subject, content)
}
