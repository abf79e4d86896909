package availability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thongular/booking/internal/domain/availability"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		cases := map[string]availability.TimeOfDay{
			"00:00": {Hour: 0, Minute: 0},
			"09:05": {Hour: 9, Minute: 5},
			"9:30":  {Hour: 9, Minute: 30},
			"23:59": {Hour: 23, Minute: 59},
		}
		for input, want := range cases {
			got, err := availability.ParseTimeOfDay(input)
			require.NoError(t, err, input)
			assert.Equal(t, want, got, input)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, input := range []string{"", "9", "24:00", "12:60", "ab:cd", "12:5", "123:00", "-1:00"} {
			_, err := availability.ParseTimeOfDay(input)
			assert.Error(t, err, input)
		}
	})

	t.Run("round trips through String", func(t *testing.T) {
		tod, err := availability.ParseTimeOfDay("7:45")
		require.NoError(t, err)
		assert.Equal(t, "07:45", tod.String())
	})
}

func TestWorkingWindow_Bounds(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	w := availability.WorkingWindow{
		Date:     time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC),
		From:     availability.TimeOfDay{Hour: 8, Minute: 30},
		Till:     availability.TimeOfDay{Hour: 17},
		Location: loc,
	}

	from, till := w.Bounds()
	assert.Equal(t, time.Date(2026, 3, 2, 8, 30, 0, 0, loc), from)
	assert.Equal(t, time.Date(2026, 3, 2, 17, 0, 0, 0, loc), till)
}

func TestBusyIntervalFromUnix(t *testing.T) {
	t.Run("converts epoch seconds to UTC instants", func(t *testing.T) {
		b, err := availability.BusyIntervalFromUnix(1772442000, 1772443800)
		require.NoError(t, err)
		assert.Equal(t, time.UTC, b.Start.Location())
		assert.Equal(t, 30*time.Minute, b.End.Sub(b.Start))
	})

	t.Run("accepts zero length", func(t *testing.T) {
		_, err := availability.BusyIntervalFromUnix(1772442000, 1772442000)
		assert.NoError(t, err)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := availability.BusyIntervalFromUnix(1772443800, 1772442000)
		assert.ErrorIs(t, err, availability.ErrInvalidBusyInterval)
	})
}
