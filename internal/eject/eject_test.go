package eject

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"garmail/internal/domain"
)

func TestEjectReportsCommandResult(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("eject is a no-op on windows")
	}

	var gotName string
	var gotArgs []string
	e := &Ejector{Run: func(name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	}}
	assert.True(t, e.Eject(domain.Volume{Root: "/Volumes/WATCH"}))
	if runtime.GOOS == "darwin" {
		assert.Equal(t, "diskutil", gotName)
		assert.Equal(t, []string{"unmount", "/Volumes/WATCH"}, gotArgs)
	} else {
		assert.Equal(t, "umount", gotName)
		assert.Equal(t, []string{"/Volumes/WATCH"}, gotArgs)
	}

	e.Run = func(string, ...string) error { return errors.New("busy") }
	assert.False(t, e.Eject(domain.Volume{Root: "/Volumes/WATCH"}))
}
