// Package notify delivers best-effort notifications. Delivery failure is
// logged and swallowed; it never propagates to the workflow that triggered
// it and never rolls back a persisted state change.
package notify

import (
	"log"
)

// Email is a single outbound message.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer sends one email. Implementations may fail; the Dispatcher absorbs it.
type Mailer interface {
	Send(email Email) error
}

// CallAnnouncement is the payload for the channel announcement posted when a
// research call opens.
type CallAnnouncement struct {
	Title   string
	Summary string
	URL     string
}

// Announcer posts a call announcement to an external channel.
type Announcer interface {
	Announce(announcement CallAnnouncement) error
}

// Dispatcher wraps a Mailer and an Announcer with the at-most-once,
// non-blocking contract: its methods never return an error.
type Dispatcher struct {
	mailer    Mailer
	announcer Announcer
}

// NewDispatcher creates a Dispatcher. Either collaborator may be nil, in
// which case the corresponding notifications are skipped.
func NewDispatcher(mailer Mailer, announcer Announcer) *Dispatcher {
	return &Dispatcher{
		mailer:    mailer,
		announcer: announcer,
	}
}

// SendEmail delivers the email at most once. Failures are logged.
func (d *Dispatcher) SendEmail(email Email) {
	if d == nil || d.mailer == nil {
		return
	}
	if err := d.mailer.Send(email); err != nil {
		log.Printf("notify: failed to send email to %s: %v", email.To, err)
	}
}

// AnnounceCall posts the announcement at most once. Failures are logged.
func (d *Dispatcher) AnnounceCall(announcement CallAnnouncement) {
	if d == nil || d.announcer == nil {
		return
	}
	if err := d.announcer.Announce(announcement); err != nil {
		log.Printf("notify: failed to announce call %q: %v", announcement.Title, err)
	}
}
