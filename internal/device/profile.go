package device

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"

	"garmail/internal/domain"
)

// SaveProfile overwrites Devices/<id>/profile.json wholesale. The caller
// treats failures as a degradation of bookkeeping, not a run failure.
func SaveProfile(fsys afero.Fs, devicesDir string, id domain.Identity, p domain.Profile) error {
	dir := filepath.Join(devicesDir, id.FSID())
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(fsys, filepath.Join(dir, "profile.json"), data, 0o644)
}
