package notify

import (
	"log"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends email over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer for the given SMTP server.
func NewSMTPMailer(host, port, user, password, from string) *SMTPMailer {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		portNum = 587
	}

	return &SMTPMailer{
		dialer: gomail.NewDialer(host, portNum, user, password),
		from:   from,
	}
}

// Send delivers the email via SMTP.
func (m *SMTPMailer) Send(email Email) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/html", email.HTML)

	return m.dialer.DialAndSend(msg)
}

// LogMailer writes emails to the log instead of sending them. Used in
// development when no SMTP server is configured.
type LogMailer struct {
	From string
}

// Send logs the email.
func (m *LogMailer) Send(email Email) error {
	log.Println("--------------------------------")
	log.Println("Email sending simulation:")
	log.Printf("From: %s", m.From)
	log.Printf("To: %s", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Println("Body:")
	log.Println(email.HTML)
	log.Println("--------------------------------")
	return nil
}
