package services

import (
	"server/config"
	"server/internal/logger"

	"gopkg.in/gomail.v2"
)

// Mailer delivers outbound notification mail. Delivery failures are
// non-fatal to the enclosing write; callers log and continue.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	sender string
	log    logger.Logger
}

type disabledMailer struct {
	log logger.Logger
}

// NewMailer returns an SMTP mailer, or a no-op one when no SMTP host is
// configured so local environments run without a mail relay.
func NewMailer(config config.Config) Mailer {
	log := logger.New("Mailer")

	if config.SMTPHost == "" {
		log.Warn("no SMTP host configured, mail delivery disabled")
		return &disabledMailer{log: log}
	}

	return &smtpMailer{
		dialer: gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword),
		sender: config.ContactSender,
		log:    log,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	log := m.log.Function("Send")

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return log.Err("failed to send mail", err, "to", to, "subject", subject)
	}

	log.Info("mail sent", "to", to, "subject", subject)
	return nil
}

func (m *disabledMailer) Send(to, subject, body string) error {
	m.log.Function("Send").Warn("mail delivery disabled, dropping message", "to", to, "subject", subject)
	return nil
}
