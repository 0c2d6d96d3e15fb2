package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ActivityFile is a single recorded-workout file found on a mounted watch.
// It is re-enumerated on every run and never cached.
type ActivityFile struct {
	Path    string
	Name    string
	ModTime time.Time
	Size    int64
}

func NewActivityFile(path string, modTime time.Time, size int64) ActivityFile {
	return ActivityFile{
		Path:    path,
		Name:    filepath.Base(path),
		ModTime: modTime,
		Size:    size,
	}
}

// IsActivityName reports whether a directory entry name looks like a FIT
// activity file. Hidden and editor temp files are excluded.
func IsActivityName(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".fit")
}

// FormatSize renders a byte count the way the picker displays it.
func FormatSize(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.0f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
