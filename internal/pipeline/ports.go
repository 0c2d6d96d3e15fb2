package pipeline

import (
	"time"

	"garmail/internal/domain"
)

type Detector interface {
	// WaitForSingle blocks until exactly one qualifying volume is present
	// or the timeout elapses.
	WaitForSingle(timeout time.Duration, tick func(secondsLeft int)) (domain.Volume, bool)
	// Current reports a volume only when exactly one qualifies right now.
	Current() (domain.Volume, bool)
}

type Locator interface {
	Locate(vol domain.Volume) []domain.ActivityFile
}

type Ejector interface {
	Eject(vol domain.Volume) bool
}

type MailSender interface {
	Send(recipient string, attachments []string, body string, now time.Time) error
}

// TimeReader yields the internal recording timestamp of an activity file.
// A failure carries no detail; the caller falls back to the mtime.
type TimeReader interface {
	RecordedAt(path string) (time.Time, error)
}
