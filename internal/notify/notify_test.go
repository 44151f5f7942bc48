package notify

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

type failingMailer struct {
	calls int
}

func (m *failingMailer) Send(Email) error {
	m.calls++
	return errors.New("smtp down")
}

type failingAnnouncer struct {
	calls int
}

func (a *failingAnnouncer) Announce(CallAnnouncement) error {
	a.calls++
	return errors.New("channel unreachable")
}

func TestDispatcher_AbsorbsDeliveryFailures(t *testing.T) {
	mailer := &failingMailer{}
	announcer := &failingAnnouncer{}
	d := NewDispatcher(mailer, announcer)

	// Neither call may panic or surface the error
	d.SendEmail(Email{To: "lead@example.org", Subject: "s", HTML: "<p>x</p>"})
	d.AnnounceCall(CallAnnouncement{Title: "t", Summary: "s", URL: "u"})

	require.Equal(t, 1, mailer.calls)
	require.Equal(t, 1, announcer.calls)
}

func TestDispatcher_NilCollaboratorsAreSkipped(t *testing.T) {
	d := NewDispatcher(nil, nil)

	d.SendEmail(Email{To: "x@example.org"})
	d.AnnounceCall(CallAnnouncement{Title: "t"})
}

func TestTruncateSummary(t *testing.T) {
	short := "a brief summary"
	require.Equal(t, short, truncateSummary(short))

	long := strings.Repeat("x", announcementMaxSummary+50)
	truncated := truncateSummary(long)
	require.Equal(t, announcementMaxSummary, len([]rune(truncated)))
	require.True(t, strings.HasSuffix(truncated, "..."))

	// A multi-byte rune sitting on the cut must not be split into
	// invalid UTF-8.
	accented := strings.Repeat("é", announcementMaxSummary+10)
	truncated = truncateSummary(accented)
	require.True(t, utf8.ValidString(truncated))
	require.Equal(t, announcementMaxSummary, len([]rune(truncated)))
	require.True(t, strings.HasSuffix(truncated, "..."))
}
