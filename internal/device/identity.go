// Package device reads the on-volume Garmin descriptor and persists the
// small per-device profile records.
package device

import (
	"encoding/xml"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"garmail/internal/domain"
)

const descriptorName = "GarminDevice.xml"

const garminNS = "http://www.garmin.com/xmlschemas/GarminDevice/v2"

type descriptor struct {
	XMLName xml.Name `xml:"Device"`
	ID      string   `xml:"http://www.garmin.com/xmlschemas/GarminDevice/v2 Id"`
	Model   struct {
		Description string `xml:"http://www.garmin.com/xmlschemas/GarminDevice/v2 Description"`
	} `xml:"http://www.garmin.com/xmlschemas/GarminDevice/v2 Model"`
}

// Identify extracts the device id and model string from the descriptor under
// the volume's marker directory. This is best-effort metadata: a missing
// file, a parse failure or missing elements all yield an empty Identity and
// never an error.
func Identify(fsys afero.Fs, vol domain.Volume) domain.Identity {
	path := filepath.Join(vol.Root, domain.MarkerDir, descriptorName)
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return domain.Identity{}
	}

	var d descriptor
	if err := xml.Unmarshal(data, &d); err != nil {
		return domain.Identity{}
	}
	if d.XMLName.Space != garminNS {
		return domain.Identity{}
	}
	return domain.Identity{
		DeviceID: strings.TrimSpace(d.ID),
		Model:    strings.TrimSpace(d.Model.Description),
	}
}
