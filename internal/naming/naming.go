// Package naming produces deterministic destination names for copied
// activity files. Identical inputs always yield the identical name; a rerun
// of the same selection on the same day overwrites the earlier copy.
package naming

import (
	"regexp"
	"strings"
	"time"
)

var (
	disallowed = regexp.MustCompile(`[^A-Za-z0-9._-]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// DayStamp formats the date component used in names and directories.
func DayStamp(t time.Time) string {
	return t.Format("20060102")
}

// SanitizeName removes internal whitespace and strips every character
// outside letters, digits, dot, underscore and hyphen.
func SanitizeName(name string) string {
	noSpace := whitespace.ReplaceAllString(strings.TrimSpace(name), "")
	return disallowed.ReplaceAllString(noSpace, "")
}

// SanitizeEmailToken derives a filename token from an address. The @ is
// replaced with an underscore before the disallowed characters are stripped.
func SanitizeEmailToken(email string) string {
	tok := strings.ReplaceAll(strings.TrimSpace(email), "@", "_")
	return disallowed.ReplaceAllString(tok, "")
}

// SendFileName builds {YYYYMMDD}_{label?}_{name}_{emailToken}_{basename}.
// The label and its separator are omitted when the device has no mapping.
func SendFileName(runDay time.Time, label, name, email, basename string) string {
	parts := []string{DayStamp(runDay)}
	if label != "" {
		parts = append(parts, label)
	}
	parts = append(parts, SanitizeName(name), SanitizeEmailToken(email), basename)
	return strings.Join(parts, "_")
}

// ArchiveFileName builds {activityDate}_{label?}_{basename}.
func ArchiveFileName(activityDay time.Time, label, basename string) string {
	parts := []string{DayStamp(activityDay)}
	if label != "" {
		parts = append(parts, label)
	}
	parts = append(parts, basename)
	return strings.Join(parts, "_")
}
