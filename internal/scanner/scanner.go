// Package scanner detects mounted Garmin volumes by polling candidate mount
// roots for the marker directory.
package scanner

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"garmail/internal/domain"
)

const pollInterval = 250 * time.Millisecond

type Scanner struct {
	FS    afero.Fs
	Clock clockwork.Clock
	// Roots yields the candidate mount roots for the current platform. It
	// is re-evaluated on every poll so volumes that appear mid-wait are
	// picked up.
	Roots func() []string
}

func New(fsys afero.Fs, clock clockwork.Clock) *Scanner {
	s := &Scanner{FS: fsys, Clock: clock}
	s.Roots = func() []string { return platformRoots(fsys) }
	return s
}

// Scan returns every candidate root that currently qualifies. Unreadable
// candidates are treated as not present, never as a failure.
func (s *Scanner) Scan() []domain.Volume {
	var vols []domain.Volume
	for _, root := range s.Roots() {
		if s.qualifies(root) {
			vols = append(vols, domain.Volume{Root: root})
		}
	}
	return vols
}

// Current is the instant check used for archive-mode auto-start: it returns
// a volume only when exactly one qualifies at this moment.
func (s *Scanner) Current() (domain.Volume, bool) {
	vols := s.Scan()
	if len(vols) != 1 {
		return domain.Volume{}, false
	}
	return vols[0], true
}

// WaitForSingle polls until the deadline and returns the qualifying volume
// as soon as exactly one is present. While more than one qualifies it keeps
// waiting rather than guessing; two watches are never disambiguated
// automatically. tick is invoked whenever the whole-seconds-remaining value
// changes, and with 0 on timeout.
func (s *Scanner) WaitForSingle(timeout time.Duration, tick func(secondsLeft int)) (domain.Volume, bool) {
	deadline := s.Clock.Now().Add(timeout)
	lastLeft := -1

	for s.Clock.Now().Before(deadline) {
		left := int(deadline.Sub(s.Clock.Now()).Seconds())
		if left < 0 {
			left = 0
		}
		if left != lastLeft {
			lastLeft = left
			if tick != nil {
				tick(left)
			}
		}

		if vols := s.Scan(); len(vols) == 1 {
			return vols[0], true
		}
		s.Clock.Sleep(pollInterval)
	}

	if tick != nil {
		tick(0)
	}
	return domain.Volume{}, false
}

func (s *Scanner) qualifies(root string) bool {
	if ok, err := afero.DirExists(s.FS, root); err != nil || !ok {
		return false
	}
	marker := join(root, domain.MarkerDir)
	ok, err := afero.DirExists(s.FS, marker)
	return err == nil && ok
}
