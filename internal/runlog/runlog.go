// Package runlog appends the human-readable per-file records written at the
// end of every completed run. The file is append-only and opened per write;
// write failures degrade bookkeeping but never fail a run.
package runlog

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"

	"garmail/internal/domain"
)

type Logger struct {
	FS   afero.Fs
	Path string
}

// Entry is one copied file. Fields render in fixed order.
type Entry struct {
	Label    string
	Name     string
	Email    string
	Dest     string
	Src      string
	DeviceID string
	Model    string
	Elapsed  time.Duration
	Mode     domain.Mode
}

func (e Entry) line() string {
	if e.Mode == domain.ModeArchive {
		return fmt.Sprintf("COPIED  label=%s  file=%s  src=%s  device_id=%s  model=%s  duration=%ds  mode=%s",
			e.Label, e.Dest, e.Src, e.DeviceID, e.Model, int(e.Elapsed.Seconds()), e.Mode.Tag())
	}
	return fmt.Sprintf("SENT  label=%s  name=%s  email=%s  file=%s  src=%s  device_id=%s  model=%s  duration=%ds  mode=%s",
		e.Label, e.Name, e.Email, e.Dest, e.Src, e.DeviceID, e.Model, int(e.Elapsed.Seconds()), e.Mode.Tag())
}

// Append writes one timestamped line per entry.
func (l Logger) Append(now time.Time, entries ...Entry) error {
	f, err := l.FS.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	for _, e := range entries {
		line := fmt.Sprintf("%s  %s\n", now.Format("2006-01-02 15:04:05"), e.line())
		if _, err := f.WriteString(line); err != nil {
			return err
		}
	}
	return nil
}
