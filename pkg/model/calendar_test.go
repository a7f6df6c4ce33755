package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardBreaks() BreakWindows {
	return BreakWindows{
		Morning:         Window{Start: 10*60 + 30, End: 10*60 + 45},
		Lunch:           Window{Start: 13 * 60, End: 13*60 + 45},
		LectureTutorial: Window{Start: 15*60 + 30, End: 15*60 + 40},
	}
}

func TestParseClock(t *testing.T) {
	v, err := ParseClock("07:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(450), v)

	v, err = ParseClock(" 23:59 ")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(23*60+59), v)

	for _, bad := range []string{"", "730", "25:00", "12:61", "ab:cd"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestSlotMinutesWrapsMidnight(t *testing.T) {
	s := Slot{Start: 23 * 60, End: 30}
	assert.Equal(t, 90, s.Minutes())

	s = Slot{Start: 18*60 + 30, End: 23*60 + 59}
	assert.Equal(t, 329, s.Minutes())
}

func TestNewCalendarSkipsBadPairs(t *testing.T) {
	cal := NewCalendar([]string{"Monday"}, [][2]string{
		{"09:00", "10:30"},
		{"bogus", "11:00"},
		{"11:00", "12:30"},
	}, standardBreaks())
	require.Len(t, cal.Slots, 2)
	assert.Equal(t, 1, cal.Slots[1].Index)
	assert.Equal(t, TimeOfDay(11*60), cal.Slots[1].Start)
}

func TestNewCalendarFallsBackToDefaults(t *testing.T) {
	cal := NewCalendar([]string{"Monday"}, [][2]string{{"x", "y"}}, standardBreaks())
	require.Len(t, cal.Slots, 4)
	assert.Equal(t, TimeOfDay(9*60), cal.Slots[0].Start)
	assert.Equal(t, TimeOfDay(17*60+30), cal.Slots[3].End)
}

func TestCalendarSlotPredicates(t *testing.T) {
	cal := NewCalendar([]string{"Monday"}, [][2]string{
		{"07:30", "09:00"}, // 0: minor opener
		{"09:00", "10:30"}, // 1
		{"10:30", "10:45"}, // 2: morning break
		{"13:00", "13:30"}, // 3: lunch break
		{"15:30", "15:40"}, // 4: LEC/TUT break only
		{"17:30", "18:00"}, // 5: lecture unfriendly
		{"18:30", "23:59"}, // 6: minor tail
	}, standardBreaks())

	assert.True(t, cal.IsMinor(0))
	assert.False(t, cal.IsMinor(1))
	assert.True(t, cal.IsMinor(6))

	assert.True(t, cal.IsBreak(2, Lab))
	assert.True(t, cal.IsBreak(3, SelfStudy))

	assert.True(t, cal.IsBreak(4, Lecture))
	assert.True(t, cal.IsBreak(4, Tutorial))
	assert.False(t, cal.IsBreak(4, Lab))
	assert.False(t, cal.IsBreak(4, SelfStudy))

	assert.False(t, cal.IsLectureUnfriendly(1))
	assert.True(t, cal.IsLectureUnfriendly(5))
	assert.True(t, cal.IsLectureUnfriendly(6))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(0, 10, 5, 15))
	assert.False(t, Overlaps(0, 10, 10, 20))
	assert.True(t, Overlaps(5, 6, 0, 100))
}
