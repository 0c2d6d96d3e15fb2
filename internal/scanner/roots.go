package scanner

import (
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
)

// platformRoots enumerates the mount namespace for the current platform:
// /Volumes entries on macOS, drive-letter roots on Windows, and the
// per-user media directories on Linux.
func platformRoots(fsys afero.Fs) []string {
	switch runtime.GOOS {
	case "darwin":
		return listChildren(fsys, "/Volumes")
	case "windows":
		roots := make([]string, 0, 26)
		for c := 'A'; c <= 'Z'; c++ {
			roots = append(roots, string(c)+`:\`)
		}
		return roots
	default:
		var roots []string
		for _, base := range []string{"/media", "/run/media"} {
			for _, child := range listChildren(fsys, base) {
				// /media/<label> on some distros, /media/<user>/<label>
				// on others. Offer both levels as candidates.
				roots = append(roots, child)
				roots = append(roots, listChildren(fsys, child)...)
			}
		}
		return roots
	}
}

// listChildren returns the direct subdirectory paths of dir, skipping
// anything unreadable.
func listChildren(fsys afero.Fs, dir string) []string {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil
	}
	var children []string
	for _, e := range entries {
		if e.IsDir() {
			children = append(children, join(dir, e.Name()))
		}
	}
	return children
}

func join(parts ...string) string {
	return filepath.Join(parts...)
}
