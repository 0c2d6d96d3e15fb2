package scanner

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garmail/internal/domain"
)

func newTestScanner(t *testing.T) (*Scanner, *clockwork.FakeClock, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	clock := clockwork.NewFakeClock()
	return New(fsys, clock), clock, fsys
}

func mountWatch(t *testing.T, fsys afero.Fs, root string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(root+"/"+domain.MarkerDir, 0o755))
}

// driveClock advances the fake clock whenever the scanner sleeps, until the
// test cancels the context.
func driveClock(ctx context.Context, clock *clockwork.FakeClock) {
	for {
		if err := clock.BlockUntilContext(ctx, 1); err != nil {
			return
		}
		clock.Advance(pollInterval)
	}
}

func waitForSingle(t *testing.T, s *Scanner, clock *clockwork.FakeClock, timeout time.Duration, tick func(int)) (domain.Volume, bool) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go driveClock(ctx, clock)

	type result struct {
		vol domain.Volume
		ok  bool
	}
	done := make(chan result, 1)
	go func() {
		vol, ok := s.WaitForSingle(timeout, tick)
		done <- result{vol, ok}
	}()

	select {
	case res := <-done:
		return res.vol, res.ok
	case <-time.After(10 * time.Second):
		t.Fatal("detection did not finish")
		return domain.Volume{}, false
	}
}

func TestWaitForSingleFindsVolumeThatAppearsLate(t *testing.T) {
	s, clock, fsys := newTestScanner(t)
	mountWatch(t, fsys, "/Volumes/WATCH")
	start := clock.Now()
	s.Roots = func() []string {
		if clock.Now().Sub(start) >= 5*time.Second {
			return []string{"/Volumes/WATCH"}
		}
		return nil
	}

	vol, ok := waitForSingle(t, s, clock, 30*time.Second, nil)

	require.True(t, ok)
	assert.Equal(t, "/Volumes/WATCH", vol.Root)
}

func TestWaitForSingleTimesOutWithNoVolume(t *testing.T) {
	s, clock, _ := newTestScanner(t)
	s.Roots = func() []string { return nil }

	var lastTick int
	_, ok := waitForSingle(t, s, clock, 30*time.Second, func(left int) { lastTick = left })

	assert.False(t, ok)
	assert.Equal(t, 0, lastTick)
}

func TestWaitForSingleNeverGuessesBetweenTwoVolumes(t *testing.T) {
	s, clock, fsys := newTestScanner(t)
	mountWatch(t, fsys, "/Volumes/WATCH1")
	mountWatch(t, fsys, "/Volumes/WATCH2")
	s.Roots = func() []string { return []string{"/Volumes/WATCH1", "/Volumes/WATCH2"} }

	_, ok := waitForSingle(t, s, clock, 30*time.Second, nil)

	assert.False(t, ok)
}

func TestWaitForSingleResolvesWhenAmbiguityClears(t *testing.T) {
	s, clock, fsys := newTestScanner(t)
	mountWatch(t, fsys, "/Volumes/WATCH1")
	mountWatch(t, fsys, "/Volumes/WATCH2")
	start := clock.Now()
	s.Roots = func() []string {
		if clock.Now().Sub(start) >= 3*time.Second {
			return []string{"/Volumes/WATCH2"}
		}
		return []string{"/Volumes/WATCH1", "/Volumes/WATCH2"}
	}

	vol, ok := waitForSingle(t, s, clock, 30*time.Second, nil)

	require.True(t, ok)
	assert.Equal(t, "/Volumes/WATCH2", vol.Root)
}

func TestWaitForSingleCountsDownOncePerSecond(t *testing.T) {
	s, clock, _ := newTestScanner(t)
	s.Roots = func() []string { return nil }

	var ticks []int
	_, ok := waitForSingle(t, s, clock, 3*time.Second, func(left int) { ticks = append(ticks, left) })

	assert.False(t, ok)
	assert.Equal(t, []int{3, 2, 1, 0, 0}, ticks)
}

func TestCurrentRequiresExactlyOne(t *testing.T) {
	s, _, fsys := newTestScanner(t)
	s.Roots = func() []string { return []string{"/Volumes/A", "/Volumes/B"} }

	_, ok := s.Current()
	assert.False(t, ok, "no volumes")

	mountWatch(t, fsys, "/Volumes/A")
	vol, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "/Volumes/A", vol.Root)

	mountWatch(t, fsys, "/Volumes/B")
	_, ok = s.Current()
	assert.False(t, ok, "two volumes")
}

func TestScanSkipsRootsWithoutMarker(t *testing.T) {
	s, _, fsys := newTestScanner(t)
	require.NoError(t, fsys.MkdirAll("/Volumes/USBSTICK/photos", 0o755))
	mountWatch(t, fsys, "/Volumes/WATCH")
	s.Roots = func() []string { return []string{"/Volumes/USBSTICK", "/Volumes/WATCH", "/Volumes/GONE"} }

	vols := s.Scan()

	require.Len(t, vols, 1)
	assert.Equal(t, "/Volumes/WATCH", vols[0].Root)
}
