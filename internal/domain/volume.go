package domain

// MarkerDir is the fixed-name subdirectory whose presence identifies a
// mounted volume as a Garmin mass-storage device.
const MarkerDir = "GARMIN"

// Volume is an ephemeral handle to a detected removable filesystem root.
// It is recomputed on every poll and lives only within one pipeline run.
type Volume struct {
	Root string
}

// Identity holds the best-effort metadata read from the on-volume device
// descriptor. Either field may be empty; the run proceeds regardless.
type Identity struct {
	DeviceID string
	Model    string
}

// FSID returns the token used for per-device filesystem bookkeeping when the
// descriptor did not yield an identifier.
func (id Identity) FSID() string {
	if id.DeviceID == "" {
		return "unknown"
	}
	return id.DeviceID
}
