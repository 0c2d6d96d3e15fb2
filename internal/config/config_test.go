package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{BaseDir: "/tmp/gm", Unmount: true}
	cfg.ApplyDefaults()

	assert.Equal(t, "/tmp/gm", cfg.BaseDir)
	assert.True(t, cfg.Unmount)
	assert.False(t, cfg.Archive)
	assert.False(t, cfg.FallbackLatest)
	assert.Equal(t, "/tmp/gm/sent", cfg.SentRoot())
	assert.Equal(t, "/tmp/gm/archive", cfg.ArchiveRoot())
	assert.Equal(t, "/tmp/gm/watch-labels.csv", cfg.LabelsPath())
}

func TestApplyDefaultsReadsEnvironment(t *testing.T) {
	t.Setenv("GARMAIL_BASE_DIR", "/srv/garmin")
	t.Setenv("GARMAIL_VERBOSE", "yes")

	var cfg Config
	cfg.ApplyDefaults()
	assert.Equal(t, "/srv/garmin", cfg.BaseDir)
	assert.True(t, cfg.Verbose)
}

func TestReadMailer(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := "/base/mailer.conf.json"

	_, err := ReadMailer(fsys, path)
	assert.ErrorContains(t, err, "config not found")

	require.NoError(t, afero.WriteFile(fsys, path,
		[]byte(`{"smtp_server":"smtp.gmail.com","smtp_port":465,"username":"u@example.com","password":"pw"}`), 0o644))
	m, err := ReadMailer(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, "smtp.gmail.com", m.SMTPServer)
	assert.Equal(t, "u@example.com", m.From())

	require.NoError(t, afero.WriteFile(fsys, path,
		[]byte(`{"smtp_server":"s","smtp_port":465,"username":"u"}`), 0o644))
	_, err = ReadMailer(fsys, path)
	assert.ErrorContains(t, err, "missing key: password")

	require.NoError(t, afero.WriteFile(fsys, path,
		[]byte(`{"smtp_server":"s","smtp_port":25,"username":"u","password":"p"}`), 0o644))
	_, err = ReadMailer(fsys, path)
	assert.ErrorContains(t, err, "must be 465 or 587")
}

func TestEnsureFirstRun(t *testing.T) {
	fsys := afero.NewMemMapFs()
	cfg := Config{BaseDir: "/base"}

	require.NoError(t, EnsureFirstRun(fsys, cfg))

	for _, dir := range []string{"/base/sent", "/base/archive", "/base/Devices"} {
		ok, err := afero.DirExists(fsys, dir)
		require.NoError(t, err)
		assert.True(t, ok, dir)
	}

	tmpl, err := afero.ReadFile(fsys, cfg.TemplatePath())
	require.NoError(t, err)
	assert.Contains(t, string(tmpl), "{name}")

	// A second call must not clobber operator edits.
	require.NoError(t, afero.WriteFile(fsys, cfg.LabelsPath(), []byte("A1,7\n"), 0o644))
	require.NoError(t, EnsureFirstRun(fsys, cfg))
	labels, err := afero.ReadFile(fsys, cfg.LabelsPath())
	require.NoError(t, err)
	assert.Equal(t, "A1,7\n", string(labels))
}
