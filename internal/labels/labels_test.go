package labels

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := "# watch-labels.csv\n" +
		"# Format: device_id,label\n" +
		"device_id,label\n" +
		"A1B2C3D4,21\n" +
		"E7F8G9H0, 7\n" +
		"broken-line\n" +
		",empty-id\n"
	require.NoError(t, afero.WriteFile(fsys, "/base/watch-labels.csv", []byte(content), 0o644))

	m := Load(fsys, "/base/watch-labels.csv")

	assert.Len(t, m, 2)
	assert.Equal(t, "21", m.Lookup("A1B2C3D4"))
	assert.Equal(t, "7", m.Lookup("E7F8G9H0"))
	assert.Equal(t, "", m.Lookup("unknown"))
	assert.Equal(t, "", m.Lookup(""))
}

func TestLoadMissingFile(t *testing.T) {
	m := Load(afero.NewMemMapFs(), "/nowhere/watch-labels.csv")
	assert.Empty(t, m)
}
