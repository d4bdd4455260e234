package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNowIsIST(t *testing.T) {
	_, offset := Now().Zone()
	require.Equal(t, 5*3600+30*60, offset, "business timestamps carry the IST offset")
}

func TestStartAndEndOfDay(t *testing.T) {
	// 01:30 UTC is already the morning of the same day in IST
	utc := time.Date(2026, 3, 10, 1, 30, 0, 0, time.UTC)

	start := StartOfDay(utc)
	require.Equal(t, 2026, start.Year())
	require.Equal(t, time.March, start.Month())
	require.Equal(t, 10, start.Day())
	require.Equal(t, 0, start.Hour())

	end := EndOfDay(utc)
	require.Equal(t, 10, end.Day())
	require.Equal(t, 23, end.Hour())
	require.True(t, end.After(start))
}

func TestToISTShiftsZoneNotInstant(t *testing.T) {
	utc := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	ist := ToIST(utc)
	require.True(t, utc.Equal(ist))
	require.Equal(t, 11, ist.Day(), "late UTC evening is the next IST day")
}
