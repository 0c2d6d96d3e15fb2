// Package labels loads the operator-maintained mapping from Garmin device
// identifiers to short workshop labels (watch-labels.csv).
package labels

import (
	"encoding/csv"
	"strings"

	"github.com/spf13/afero"
)

// Map is read once per run and is read-only to the pipeline.
type Map map[string]string

// Load parses the two-column label file. Comment lines and the optional
// "device_id,label" header are ignored, as are rows with missing fields.
// A missing or unreadable file yields an empty map, never an error: labels
// are an enrichment, not a requirement.
func Load(fsys afero.Fs, path string) Map {
	m := Map{}

	f, err := fsys.Open(path)
	if err != nil {
		return m
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return m
	}
	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		id := strings.TrimSpace(rec[0])
		label := strings.TrimSpace(rec[1])
		if id == "" || label == "" || strings.EqualFold(id, "device_id") {
			continue
		}
		m[id] = label
	}
	return m
}

// Lookup returns the label for a device id, or "" when unmapped.
func (m Map) Lookup(deviceID string) string {
	if deviceID == "" {
		return ""
	}
	return m[deviceID]
}
