package model

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is minutes elapsed since midnight.
type TimeOfDay int

// ParseClock parses "HH:MM" into a TimeOfDay.
func ParseClock(s string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("bad clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("bad clock value %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("bad clock value %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("bad clock value %q", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Slot is one indivisible interval in the daily grid.
type Slot struct {
	Index int
	Start TimeOfDay
	End   TimeOfDay
}

// Minutes returns the slot length, wrapping past midnight when End < Start.
func (s Slot) Minutes() int {
	end := int(s.End)
	if end < int(s.Start) {
		end += 24 * 60
	}
	return end - int(s.Start)
}

// Window is a half-open [Start, End) interval used for break periods.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// BreakWindows holds the configured break periods. LectureTutorial applies
// only to LEC and TUT components; labs and self-study may run through it.
type BreakWindows struct {
	Morning         Window
	Lunch           Window
	LectureTutorial Window
}

// Calendar is the fixed weekly grid: ordered day names and an ordered slot
// list shared by every day.
type Calendar struct {
	Days   []string
	Slots  []Slot
	Breaks BreakWindows
}

// defaultSlots is the fallback grid used when no configured boundary pair
// parses.
func defaultSlots() []Slot {
	return []Slot{
		{Index: 0, Start: 9 * 60, End: 10*60 + 30},
		{Index: 1, Start: 11 * 60, End: 12*60 + 30},
		{Index: 2, Start: 14 * 60, End: 15*60 + 30},
		{Index: 3, Start: 16 * 60, End: 17*60 + 30},
	}
}

// NewCalendar builds the slot list from raw "HH:MM" boundary pairs. Pairs
// that fail to parse are skipped; if none survive, the default 4-slot day is
// used instead of returning an error.
func NewCalendar(days []string, boundaries [][2]string, breaks BreakWindows) *Calendar {
	slots := make([]Slot, 0, len(boundaries))
	for _, b := range boundaries {
		start, err := ParseClock(b[0])
		if err != nil {
			continue
		}
		end, err := ParseClock(b[1])
		if err != nil {
			continue
		}
		slots = append(slots, Slot{Index: len(slots), Start: start, End: end})
	}
	if len(slots) == 0 {
		slots = defaultSlots()
	}
	return &Calendar{Days: days, Slots: slots, Breaks: breaks}
}

// Overlaps reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}

func (c *Calendar) SlotMinutes(i int) int {
	return c.Slots[i].Minutes()
}

// IsBreak reports whether slot i overlaps a configured break window. The
// lecture/tutorial-only window is consulted only for LEC and TUT kinds.
func (c *Calendar) IsBreak(i int, kind ComponentKind) bool {
	s := c.Slots[i]
	if Overlaps(s.Start, s.End, c.Breaks.Morning.Start, c.Breaks.Morning.End) {
		return true
	}
	if Overlaps(s.Start, s.End, c.Breaks.Lunch.Start, c.Breaks.Lunch.End) {
		return true
	}
	if kind == Lecture || kind == Tutorial {
		if Overlaps(s.Start, s.End, c.Breaks.LectureTutorial.Start, c.Breaks.LectureTutorial.End) {
			return true
		}
	}
	return false
}

// IsMinor reports whether slot i is unusable for regular teaching: the early
// 07:30-09:00 opener or anything starting at 18:30 or later.
func (c *Calendar) IsMinor(i int) bool {
	s := c.Slots[i]
	if s.Start == 7*60+30 && s.End == 9*60 {
		return true
	}
	return s.Start >= 18*60+30
}

// IsLectureUnfriendly reports whether slot i starts too late to open a
// lecture block.
func (c *Calendar) IsLectureUnfriendly(i int) bool {
	return c.Slots[i].Start >= 17*60+30
}
