package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garmail/internal/domain"
	apperr "garmail/internal/errors"
)

var now = time.Date(2026, 8, 29, 16, 0, 0, 0, time.Local)

func fit(name string, mod time.Time) domain.ActivityFile {
	return domain.NewActivityFile("/vol/GARMIN/Activity/"+name, mod, 100)
}

func TestForSendZeroTodayFails(t *testing.T) {
	files := []domain.ActivityFile{
		fit("old1.fit", now.AddDate(0, 0, -2)),
		fit("old2.fit", now.AddDate(0, 0, -1)),
	}

	_, _, err := ForSend(files, now, false)

	require.Error(t, err)
	assert.Equal(t, apperr.NoTodayFiles, apperr.KindOf(err))
}

func TestForSendZeroTodayFallbackPicksLatest(t *testing.T) {
	files := []domain.ActivityFile{
		fit("older.fit", now.AddDate(0, 0, -3)),
		fit("newest.fit", now.AddDate(0, 0, -1)),
		fit("old.fit", now.AddDate(0, 0, -2)),
	}

	cands, preselect, err := ForSend(files, now, true)

	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "newest.fit", cands[0].Name)
	assert.True(t, preselect)
}

func TestForSendSingleTodayIsPreselected(t *testing.T) {
	files := []domain.ActivityFile{
		fit("old.fit", now.AddDate(0, 0, -1)),
		fit("today.fit", now.Add(-2*time.Hour)),
	}

	cands, preselect, err := ForSend(files, now, false)

	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "today.fit", cands[0].Name)
	assert.True(t, preselect, "a lone candidate is preselected but still confirmed")
}

func TestForSendMultipleTodaySortedAscending(t *testing.T) {
	files := []domain.ActivityFile{
		fit("noon.fit", now.Add(-4*time.Hour)),
		fit("morning.fit", now.Add(-8*time.Hour)),
		fit("afternoon.fit", now.Add(-1*time.Hour)),
	}

	cands, preselect, err := ForSend(files, now, false)

	require.NoError(t, err)
	assert.False(t, preselect)
	var names []string
	for _, c := range cands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"morning.fit", "noon.fit", "afternoon.fit"}, names)
}

func TestForSendNoFilesAtAll(t *testing.T) {
	_, _, err := ForSend(nil, now, true)
	require.Error(t, err)
	assert.Equal(t, apperr.NoFilesFound, apperr.KindOf(err))
}

func TestForArchiveCapsAtFiveMostRecent(t *testing.T) {
	var files []domain.ActivityFile
	for i := 0; i < 7; i++ {
		files = append(files, fit(string(rune('a'+i))+".fit", now.Add(-time.Duration(i)*time.Hour)))
	}

	cands, err := ForArchive(files)

	require.NoError(t, err)
	require.Len(t, cands, ArchiveLimit)
	assert.Equal(t, "a.fit", cands[0].Name, "newest first")
	assert.Equal(t, "e.fit", cands[4].Name)
}

func TestForArchiveEmptyFails(t *testing.T) {
	_, err := ForArchive(nil)
	require.Error(t, err)
	assert.Equal(t, apperr.NoFilesFound, apperr.KindOf(err))
}
