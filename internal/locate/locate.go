// Package locate enumerates candidate activity files on a detected volume.
package locate

import (
	"path/filepath"

	"github.com/spf13/afero"

	"garmail/internal/domain"
)

type Locator struct {
	FS afero.Fs
	// Resolve canonicalizes a path for deduplication. When it fails (for
	// example on a broken symlink) the raw path string is used instead.
	Resolve func(string) (string, error)
}

func New(fsys afero.Fs) *Locator {
	return &Locator{FS: fsys, Resolve: filepath.EvalSymlinks}
}

// Locate lists the activity files under the volume's two candidate
// directories, in fixed priority order: GARMIN/Activity first, then
// Activity. The result preserves insertion order; callers sort when order
// matters. Unreadable directories are skipped, not fatal.
func (l *Locator) Locate(vol domain.Volume) []domain.ActivityFile {
	candidates := []string{
		filepath.Join(vol.Root, domain.MarkerDir, "Activity"),
		filepath.Join(vol.Root, "Activity"),
	}

	var files []domain.ActivityFile
	seen := map[string]bool{}
	for _, dir := range candidates {
		entries, err := afero.ReadDir(l.FS, dir)
		if err != nil {
			continue
		}
		for _, info := range entries {
			if info.IsDir() || !info.Mode().IsRegular() {
				continue
			}
			if !domain.IsActivityName(info.Name()) {
				continue
			}
			path := filepath.Join(dir, info.Name())
			key := l.dedupKey(path)
			if seen[key] {
				continue
			}
			seen[key] = true
			files = append(files, domain.NewActivityFile(path, info.ModTime(), info.Size()))
		}
	}
	return files
}

func (l *Locator) dedupKey(path string) string {
	if l.Resolve != nil {
		if resolved, err := l.Resolve(path); err == nil {
			return resolved
		}
	}
	return path
}
