package domain

// Profile is the small per-device record persisted under
// Devices/<device_id>/profile.json. It is overwritten wholesale on every
// completed run, never merged.
type Profile struct {
	DeviceID   string   `json:"device_id"`
	Model      string   `json:"model"`
	LastFiles  []string `json:"last_files"`
	LastAction string   `json:"last_action"`
	LastTime   string   `json:"last_time"`
}
