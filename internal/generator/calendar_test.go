package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalendarLayouts(t *testing.T) {
	want := time.Date(2023, 12, 25, 10, 30, 0, 0, time.UTC)
	for _, s := range []string{"2023-12-25T10:30:00", "2023-12-25 10:30:00"} {
		got, err := ParseCalendar(s, time.UTC)
		require.NoError(t, err, s)
		assert.True(t, got.Equal(want), s)
	}

	got, err := ParseCalendar("2023-12-25", time.UTC)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)))
}

func TestParseCalendarConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	got, err := ParseCalendar("2023-12-31T22:00:00", loc)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, 3, got.Hour())
}

func TestParseCalendarInvalidFormat(t *testing.T) {
	for _, s := range []string{"", "yesterday", "25/12/2023", "2023-12-25T10:30", "2023-12-25Z"} {
		_, err := ParseCalendar(s, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, s)
	}
}

func TestParseCalendarInvalidDateTime(t *testing.T) {
	for _, s := range []string{"2023-13-01", "2023-02-30", "2023-12-25T25:00:00", "2023-12-25 10:61:00"} {
		_, err := ParseCalendar(s, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidDateTime, s)
	}
}

func TestGenerateSurfacesCalendarErrors(t *testing.T) {
	g := NewChronologicalGenerator(newSeededSource(20), nil, time.UTC)

	_, err := g.Generate(Options{Tag: "TEST", MachineID: 1, Time: "not a date"})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = g.Generate(Options{Tag: "TEST", MachineID: 1, Time: "2023-02-29"})
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestTimestampDigits(t *testing.T) {
	at := time.Date(1999, 1, 2, 3, 4, 5, 987_000_000, time.UTC)
	assert.Equal(t, uint64(1999010203040598), timestampDigits(at, true))
	assert.Equal(t, uint64(1999010203040500), timestampDigits(at, false))
	assert.Equal(t, 1999, timestampYear(timestampDigits(at, false)))
}

func TestTimestampTime(t *testing.T) {
	got, ok := timestampTime(2024022923595812)
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 2, 29, 23, 59, 58, 120_000_000, time.UTC)))

	for _, ts := range []uint64{0, 2023022923595800, 2023122524000000, maxTimestamp + 1} {
		_, ok := timestampTime(ts)
		assert.False(t, ok, "%d", ts)
	}
}
