// Package mail delivers one message with all selected activity files
// attached, and maps transport failures onto the run's error categories.
package mail

import (
	"fmt"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"garmail/internal/config"
	apperr "garmail/internal/errors"
)

type Sender struct {
	Conf config.Mailer
}

// Subject derives the subject line from the attachment count and the date.
func Subject(count int, now time.Time) string {
	if count <= 1 {
		return fmt.Sprintf("Garmin FIT %s", now.Format("2006-01-02"))
	}
	return fmt.Sprintf("Garmin FIT activities (%d files) – %s", count, now.Format("2006-01-02"))
}

// Send delivers one message to recipient with every attachment as a generic
// binary part carrying its original filename. Port 465 uses implicit TLS,
// 587 mandatory STARTTLS; other ports were rejected at config load.
func (s Sender) Send(recipient string, attachments []string, body string, now time.Time) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.Conf.From()); err != nil {
		return apperr.Wrap(apperr.MailFailure, "send", "", err)
	}
	if err := msg.To(recipient); err != nil {
		return apperr.Wrap(apperr.MailFailure, "send", "", err)
	}
	msg.Subject(Subject(len(attachments), now))
	if body == "" {
		body = "Attached is the latest Garmin FIT file(s)."
	}
	msg.SetBodyString(gomail.TypeTextPlain, body)
	for _, path := range attachments {
		msg.AttachFile(path, gomail.WithFileContentType(gomail.TypeAppOctetStream))
	}

	opts := []gomail.Option{
		gomail.WithPort(s.Conf.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.Conf.Username),
		gomail.WithPassword(s.Conf.Password),
	}
	if s.Conf.SMTPPort == 465 {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}

	client, err := gomail.NewClient(s.Conf.SMTPServer, opts...)
	if err != nil {
		return apperr.Wrap(apperr.MailFailure, "send", "", err)
	}
	if err := client.DialAndSend(msg); err != nil {
		return apperr.Wrap(Classify(err), "send", "", err)
	}
	return nil
}

// Classify buckets a delivery error into the three categories the run
// surfaces: authentication rejected, transport/certificate trouble, other.
// SMTP servers reject bad credentials with a 535 reply, which survives in
// the wrapped error text.
func Classify(err error) apperr.Kind {
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "535") || strings.Contains(text, "auth"):
		return apperr.MailAuth
	case strings.Contains(text, "tls") || strings.Contains(text, "certificate") || strings.Contains(text, "x509"):
		return apperr.MailTransport
	default:
		return apperr.MailFailure
	}
}
