// Package fit extracts the internal recording timestamp from FIT activity
// files. Archive-mode names prefer this over the filesystem mtime.
package fit

import (
	"errors"
	"time"

	"github.com/spf13/afero"
	fitlib "github.com/tormoder/fit"
)

type Reader struct {
	FS afero.Fs
}

// RecordedAt decodes the file header and returns the FileId creation time.
// Any decode problem is reported as a plain error with no further detail;
// callers fall back to the mtime.
func (r Reader) RecordedAt(path string) (time.Time, error) {
	f, err := r.FS.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer func() { _ = f.Close() }()

	decoded, err := fitlib.Decode(f)
	if err != nil {
		return time.Time{}, err
	}
	created := decoded.FileId.TimeCreated
	if created.IsZero() {
		return time.Time{}, errors.New("fit file has no creation time")
	}
	return created.Local(), nil
}
