// Package selection decides which located activity files are offered to the
// operator for the current run.
package selection

import (
	"sort"
	"time"

	"garmail/internal/domain"
	apperr "garmail/internal/errors"
)

// ArchiveLimit caps the archive-mode candidate set to the most recent files.
const ArchiveLimit = 5

// ForSend filters to files whose modification date is today. With zero
// matches the run fails unless the latest-file fallback is enabled, in which
// case the single most recently modified file is offered instead. The
// preselect hint is set when exactly one candidate remains; the operator
// still confirms through the picker either way.
func ForSend(files []domain.ActivityFile, now time.Time, fallbackLatest bool) ([]domain.ActivityFile, bool, error) {
	if len(files) == 0 {
		return nil, false, apperr.New(apperr.NoFilesFound, "select")
	}

	var todays []domain.ActivityFile
	for _, f := range files {
		if sameDay(f.ModTime, now) {
			todays = append(todays, f)
		}
	}

	if len(todays) == 0 {
		if !fallbackLatest {
			return nil, false, apperr.New(apperr.NoTodayFiles, "select")
		}
		latest := files[0]
		for _, f := range files[1:] {
			if f.ModTime.After(latest.ModTime) {
				latest = f
			}
		}
		return []domain.ActivityFile{latest}, true, nil
	}

	sortByModTimeAsc(todays)
	return todays, len(todays) == 1, nil
}

// ForArchive returns at most the ArchiveLimit most recent files, newest
// first. Archive mode never auto-picks, so no preselect hint exists here.
func ForArchive(files []domain.ActivityFile) ([]domain.ActivityFile, error) {
	if len(files) == 0 {
		return nil, apperr.New(apperr.NoFilesFound, "select")
	}
	recent := make([]domain.ActivityFile, len(files))
	copy(recent, files)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ModTime.After(recent[j].ModTime)
	})
	if len(recent) > ArchiveLimit {
		recent = recent[:ArchiveLimit]
	}
	return recent, nil
}

func sortByModTimeAsc(files []domain.ActivityFile) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
