package timeutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/pkg/timeutil"
)

var bogota = time.FixedZone("America/Bogota", -5*60*60)

func TestLoadLocation_Fallback(t *testing.T) {
	loc := timeutil.LoadLocation("Zona/Inexistente")
	_, offset := time.Date(2026, 3, 1, 12, 0, 0, 0, loc).Zone()
	assert.Equal(t, -5*60*60, offset)

	assert.NotNil(t, timeutil.LoadLocation(""))
}

func TestDayRange_NocheEnBogotaEsDiaSiguienteEnUTC(t *testing.T) {
	// 2026-03-10 22:30 en Bogotá = 2026-03-11 03:30 UTC
	instante := time.Date(2026, 3, 11, 3, 30, 0, 0, time.UTC)

	start, end := timeutil.DayRange(instante, bogota)

	assert.Equal(t, time.Date(2026, 3, 10, 5, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 11, 5, 0, 0, 0, time.UTC), end)
	assert.Equal(t, "2026-03-10", timeutil.DayKey(instante, bogota))
}

func TestMonthRange(t *testing.T) {
	start, end := timeutil.MonthRange(time.Date(2026, 12, 15, 10, 0, 0, 0, bogota), bogota)
	assert.Equal(t, time.Date(2026, 12, 1, 5, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 5, 0, 0, 0, time.UTC), end)
}

func TestParseLocalDate(t *testing.T) {
	d, err := timeutil.ParseLocalDate("2026-02-28", bogota)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 5, 0, 0, 0, time.UTC), d.UTC())

	_, err = timeutil.ParseLocalDate("28/02/2026", bogota)
	assert.ErrorIs(t, err, timeutil.ErrInvalidDate)
}

func TestLocalDateRange(t *testing.T) {
	now := time.Date(2026, 5, 20, 15, 0, 0, 0, time.UTC)

	from, to, err := timeutil.LocalDateRange("2026-05-01", "2026-05-02", now, bogota)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 1, 5, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 5, 3, 5, 0, 0, 0, time.UTC), to)

	from, to, err = timeutil.LocalDateRange("", "", now, bogota)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 1, 5, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 5, 21, 5, 0, 0, 0, time.UTC), to)

	_, _, err = timeutil.LocalDateRange("2026-05-10", "2026-05-01", now, bogota)
	assert.ErrorIs(t, err, timeutil.ErrInvalidDate)
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2026, 1, 30, 23, 0, 0, 0, bogota)
	to := time.Date(2026, 2, 2, 1, 0, 0, 0, bogota)

	assert.Equal(t, []string{"2026-01-30", "2026-01-31", "2026-02-01", "2026-02-02"},
		timeutil.DaysBetween(from, to, bogota))
	assert.Nil(t, timeutil.DaysBetween(to, from, bogota))
}

func TestCalendarDays(t *testing.T) {
	from := time.Date(2026, 1, 30, 23, 0, 0, 0, bogota)
	to := time.Date(2026, 2, 2, 1, 0, 0, 0, bogota)
	assert.Equal(t, 4, timeutil.CalendarDays(from, to, bogota))
	assert.Equal(t, 1, timeutil.CalendarDays(from, from, bogota))
	assert.Equal(t, 0, timeutil.CalendarDays(to, from, bogota))

	lejos := time.Date(9999, 12, 31, 0, 0, 0, 0, bogota)
	inicio := time.Date(1, 1, 1, 0, 0, 0, 0, bogota)
	assert.Greater(t, timeutil.CalendarDays(inicio, lejos, bogota), 366)
}

func TestToUTC(t *testing.T) {
	assert.True(t, timeutil.ToUTC(time.Time{}).IsZero())
	local := time.Date(2026, 1, 1, 19, 0, 0, 0, bogota)
	assert.Equal(t, time.UTC, timeutil.ToUTC(local).Location())
	assert.True(t, local.Equal(timeutil.ToUTC(local)))
}
