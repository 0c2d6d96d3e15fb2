package device

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garmail/internal/domain"
)

const sampleDescriptor = `<?xml version="1.0" encoding="UTF-8"?>
<Device xmlns="http://www.garmin.com/xmlschemas/GarminDevice/v2">
  <Model>
    <PartNumber>006-B3589-00</PartNumber>
    <SoftwareVersion>12.20</SoftwareVersion>
    <Description>Forerunner 245</Description>
  </Model>
  <Id>3907654321</Id>
</Device>`

func TestIdentify(t *testing.T) {
	fsys := afero.NewMemMapFs()
	vol := domain.Volume{Root: "/Volumes/WATCH"}
	require.NoError(t, afero.WriteFile(fsys,
		"/Volumes/WATCH/GARMIN/GarminDevice.xml", []byte(sampleDescriptor), 0o644))

	id := Identify(fsys, vol)

	assert.Equal(t, "3907654321", id.DeviceID)
	assert.Equal(t, "Forerunner 245", id.Model)
	assert.Equal(t, "3907654321", id.FSID())
}

func TestIdentifyToleratesMissingOrBrokenDescriptor(t *testing.T) {
	fsys := afero.NewMemMapFs()
	vol := domain.Volume{Root: "/Volumes/WATCH"}

	assert.Equal(t, domain.Identity{}, Identify(fsys, vol), "missing file")

	require.NoError(t, afero.WriteFile(fsys,
		"/Volumes/WATCH/GARMIN/GarminDevice.xml", []byte("<not-xml"), 0o644))
	assert.Equal(t, domain.Identity{}, Identify(fsys, vol), "malformed xml")

	require.NoError(t, afero.WriteFile(fsys,
		"/Volumes/WATCH/GARMIN/GarminDevice.xml",
		[]byte(`<Device><Id>123</Id></Device>`), 0o644))
	assert.Equal(t, domain.Identity{}, Identify(fsys, vol), "wrong namespace")
}

func TestIdentityFallbackToken(t *testing.T) {
	assert.Equal(t, "unknown", domain.Identity{}.FSID())
}

func TestSaveProfileOverwritesWholesale(t *testing.T) {
	fsys := afero.NewMemMapFs()
	id := domain.Identity{DeviceID: "ABC123"}

	first := domain.Profile{DeviceID: "ABC123", Model: "Forerunner 245",
		LastFiles: []string{"a.fit", "b.fit"}, LastAction: "archive", LastTime: "2026-08-28T10:00:00"}
	require.NoError(t, SaveProfile(fsys, "/base/Devices", id, first))

	second := domain.Profile{DeviceID: "ABC123", Model: "Forerunner 245",
		LastFiles: []string{"c.fit"}, LastAction: "email", LastTime: "2026-08-29T09:30:00"}
	require.NoError(t, SaveProfile(fsys, "/base/Devices", id, second))

	data, err := afero.ReadFile(fsys, "/base/Devices/ABC123/profile.json")
	require.NoError(t, err)
	var got domain.Profile
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, second, got)
}
