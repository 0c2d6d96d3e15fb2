// Package pipeline drives one acquisition run: wait for a single watch,
// identify it, locate and select activity files, copy them under generated
// names, eject, then finalize by sending mail or archiving.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"garmail/internal/config"
	"garmail/internal/device"
	"garmail/internal/domain"
	apperr "garmail/internal/errors"
	infrafs "garmail/internal/infra/fs"
	"garmail/internal/labels"
	"garmail/internal/logging"
	"garmail/internal/mail"
	"garmail/internal/naming"
	"garmail/internal/runlog"
	"garmail/internal/selection"
)

// Params carries the operator inputs for one run. Name and Email are empty
// in archive mode.
type Params struct {
	Mode    domain.Mode
	Name    string
	Email   string
	Unmount bool
}

type Pipeline struct {
	FS    afero.Fs
	Clock clockwork.Clock
	Log   zerolog.Logger
	Cfg   config.Config

	Detector Detector
	Identify func(vol domain.Volume) domain.Identity
	Locator  Locator
	Ejector  Ejector
	FitTime  TimeReader
	// MailFactory builds the sender for a send-mode run; loading the
	// mailer config lazily keeps archive mode working without one.
	MailFactory func() (MailSender, error)
}

// runContext is the mutable state of exactly one run. It is owned by the
// worker goroutine and discarded at run end.
type runContext struct {
	id       uuid.UUID
	start    time.Time
	params   Params
	cancel   *atomic.Bool
	setState func(State)
	post     func(Event)
}

func (rc *runContext) fail(err error) {
	rc.setState(StateErrored)
	rc.post(Error{Message: apperr.UserMessage(err), Kind: apperr.KindOf(err)})
}

// cancelled is the cooperative gate checked at stage boundaries. It never
// interrupts an in-flight blocking call; a copy that already started will
// finish before the next check observes the flag.
func (rc *runContext) cancelled() bool {
	if !rc.cancel.Load() {
		return false
	}
	rc.setState(StateCancelled)
	rc.post(Error{Message: apperr.UserMessage(apperr.New(apperr.Cancelled, "run")), Kind: apperr.Cancelled})
	return true
}

func (p *Pipeline) execute(rc *runContext) {
	log := p.Log.With().Stringer("run_id", rc.id).Stringer("mode", rc.params.Mode).Logger()
	stop := logging.Measure(log, "run finished")
	defer stop()

	if err := config.EnsureFirstRun(p.FS, p.Cfg); err != nil {
		log.Warn().Err(err).Msg("first-run setup failed")
	}
	labelMap := labels.Load(p.FS, p.Cfg.LabelsPath())

	var sender MailSender
	if rc.params.Mode == domain.ModeSend {
		var err error
		if sender, err = p.MailFactory(); err != nil {
			rc.fail(apperr.Wrap(apperr.InvalidConfig, "config", p.Cfg.MailerConfPath(), err))
			return
		}
	}

	// Detecting
	if rc.cancelled() {
		return
	}
	rc.setState(StateDetecting)
	rc.post(Step{Text: "Detecting Garmin watch...", Indeterminate: true})
	rc.post(Countdown{SecondsLeft: int(config.DetectTimeout.Seconds())})

	vol, found := p.Detector.WaitForSingle(config.DetectTimeout, func(left int) {
		rc.post(Countdown{SecondsLeft: left})
	})
	if rc.cancelled() {
		return
	}
	if !found {
		rc.post(Step{Text: "Detection timed out."})
		rc.post(Countdown{Hidden: true})
		rc.fail(apperr.New(apperr.DetectionTimeout, "detect"))
		return
	}
	log.Debug().Str("volume", vol.Root).Msg("volume detected")

	// Identifying: failures yield an empty identity, never an error.
	rc.setState(StateIdentifying)
	id := p.Identify(vol)
	label := labelMap.Lookup(id.DeviceID)
	human := "Garmin watch"
	if label != "" {
		human = "Garmin watch " + label
	}
	rc.post(Step{Text: human + " found"})
	rc.post(Countdown{Hidden: true})
	log.Debug().Str("device_id", id.DeviceID).Str("model", id.Model).Str("label", label).Msg("identified")

	// Locating
	rc.setState(StateLocating)
	files := p.Locator.Locate(vol)
	if len(files) == 0 {
		// The watch should not stay mounted on a dead-end run.
		if rc.params.Unmount {
			p.Ejector.Eject(vol)
		}
		rc.fail(apperr.New(apperr.NoFilesFound, "locate"))
		return
	}

	// Selecting
	rc.setState(StateSelecting)
	now := p.Clock.Now()
	var candidates []domain.ActivityFile
	var preselect bool
	var err error
	if rc.params.Mode == domain.ModeSend {
		candidates, preselect, err = selection.ForSend(files, now, p.Cfg.FallbackLatest)
	} else {
		candidates, err = selection.ForArchive(files)
	}
	if err != nil {
		if rc.params.Mode == domain.ModeArchive && rc.params.Unmount {
			p.Ejector.Eject(vol)
		}
		rc.fail(err)
		return
	}

	chosen, err := p.askSelection(rc, candidates, preselect)
	if err != nil {
		rc.fail(err)
		return
	}
	if rc.cancelled() {
		return
	}

	// Copying: a per-file failure aborts the rest; copies already written
	// stay in place.
	rc.setState(StateCopying)
	sentDay := filepath.Join(p.Cfg.SentRoot(), naming.DayStamp(now))
	destDir := sentDay
	if rc.params.Mode == domain.ModeArchive {
		destDir = p.Cfg.ArchiveRoot()
	}

	dests := make([]string, 0, len(chosen))
	entries := make([]runlog.Entry, 0, len(chosen))
	for i, f := range chosen {
		rc.post(Step{
			Text:    fmt.Sprintf("Copying %d/%d...", i+1, len(chosen)),
			Percent: 10 + 60*i/len(chosen),
		})

		var dst string
		if rc.params.Mode == domain.ModeSend {
			dst = filepath.Join(sentDay, naming.SendFileName(now, label, rc.params.Name, rc.params.Email, f.Name))
		} else {
			day := p.activityDay(f)
			dst = filepath.Join(p.Cfg.ArchiveRoot(), naming.DayStamp(day), naming.ArchiveFileName(day, label, f.Name))
		}

		if err := infrafs.CopyFile(p.FS, f.Path, dst); err != nil {
			kind := apperr.CopyFailure
			if errors.Is(err, os.ErrPermission) {
				kind = apperr.CopyPermission
			}
			rc.fail(apperr.Wrap(kind, "copy", f.Path, err))
			return
		}
		log.Debug().Str("src", f.Path).Str("dst", dst).Msg("copied")

		dests = append(dests, dst)
		entries = append(entries, runlog.Entry{
			Label: label, Name: rc.params.Name, Email: rc.params.Email,
			Dest: dst, Src: f.Name,
			DeviceID: id.DeviceID, Model: id.Model, Mode: rc.params.Mode,
		})
	}

	// Ejecting: archive mode always ejects, send mode only when the
	// unmount option is on. Failure is reported, not fatal.
	rc.setState(StateEjecting)
	ejected := false
	if rc.params.Mode == domain.ModeArchive || rc.params.Unmount {
		if ejected = p.Ejector.Eject(vol); !ejected {
			log.Warn().Str("volume", vol.Root).Msg("eject failed")
		}
	}

	// Finalizing
	rc.setState(StateFinalizing)
	if rc.params.Mode == domain.ModeSend {
		if rc.cancelled() {
			return
		}
		body := mail.Body(p.FS, p.Cfg.TemplatePath(), rc.params.Name)
		rc.post(Step{Text: fmt.Sprintf("Sending email... (%d attachment(s))", len(dests)), Percent: 90})
		if err := sender.Send(rc.params.Email, dests, body, now); err != nil {
			rc.fail(err)
			return
		}
	}

	p.writeRecords(log, id, dests, entries, rc)

	message := "Email sent."
	if rc.params.Mode == domain.ModeArchive {
		if ejected {
			message = "Eject successful, please attach the next watch to the USB cable."
		} else {
			message = "Copy complete. Please attach the next watch."
		}
	}
	rc.setState(StateDone)
	rc.post(Done{Message: message, Percent: 100, DestDir: destDir, Mode: rc.params.Mode})
}

// askSelection posts the one bidirectional exchange and waits, bounded, for
// the operator's choice. Timeout and an explicit empty reply both end the
// run as a selection failure, not a cancellation.
func (p *Pipeline) askSelection(rc *runContext, candidates []domain.ActivityFile, preselect bool) ([]domain.ActivityFile, error) {
	reply := make(chan []domain.ActivityFile, 1)
	rc.post(AskSelection{Candidates: candidates, Preselect: preselect, Reply: reply})

	select {
	case chosen := <-reply:
		if len(chosen) == 0 {
			return nil, apperr.New(apperr.NoSelection, "select")
		}
		return chosen, nil
	case <-p.Clock.After(config.SelectionTimeout):
		return nil, apperr.New(apperr.NoSelection, "select")
	}
}

// activityDay prefers the FIT recording timestamp and falls back to the
// file's modification date.
func (p *Pipeline) activityDay(f domain.ActivityFile) time.Time {
	if p.FitTime != nil {
		if ts, err := p.FitTime.RecordedAt(f.Path); err == nil {
			return ts
		}
	}
	return f.ModTime
}

// writeRecords persists the per-device profile and appends the run log
// lines. Both are best-effort bookkeeping.
func (p *Pipeline) writeRecords(log zerolog.Logger, id domain.Identity, dests []string, entries []runlog.Entry, rc *runContext) {
	now := p.Clock.Now()
	elapsed := now.Sub(rc.start)

	names := make([]string, 0, len(dests))
	for _, d := range dests {
		names = append(names, filepath.Base(d))
	}
	profile := domain.Profile{
		DeviceID:   id.DeviceID,
		Model:      id.Model,
		LastFiles:  names,
		LastAction: rc.params.Mode.String(),
		LastTime:   now.Format("2006-01-02T15:04:05"),
	}
	if err := device.SaveProfile(p.FS, p.Cfg.DevicesDir(), id, profile); err != nil {
		log.Warn().Err(err).Msg("profile write failed")
	}

	for i := range entries {
		entries[i].Elapsed = elapsed
	}
	rl := runlog.Logger{FS: p.FS, Path: p.Cfg.RunLogPath()}
	if err := rl.Append(now, entries...); err != nil {
		log.Warn().Err(err).Msg("run log write failed")
	}
}
