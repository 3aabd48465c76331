package services

import (
	"context"
	"io"
	"strings"

	"travelagency/internal/utils"

	"gopkg.in/gomail.v2"
)

type Attachment struct {
	Name string
	Data []byte
}

type Mail struct {
	To          []string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Mailer delivers one message.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// SMTPMailer sends through an SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s SMTPMailer) Send(ctx context.Context, m Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.From)
	msg.SetHeader("To", m.To...)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)
	for _, a := range m.Attachments {
		data := a.Data
		msg.Attach(a.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}
	return gomail.NewDialer(s.Host, s.Port, s.Username, s.Password).DialAndSend(msg)
}

// LogMailer only logs; used when SMTP is not configured.
type LogMailer struct {
	RequestID string
}

func (l LogMailer) Send(_ context.Context, m Mail) error {
	names := make([]string, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		names = append(names, a.Name)
	}
	utils.LogEventf(l.RequestID, "mail", "send", "to=%s subject=%q attachments=%s", strings.Join(m.To, ","), m.Subject, strings.Join(names, ","))
	return nil
}
