package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerRooms(t *testing.T) {
	tr := NewTracker(5)

	assert.True(t, tr.RoomFree("C101", 0, []int{1, 2}))
	tr.OccupyRoom("C101", 0, []int{1, 2})
	assert.False(t, tr.RoomFree("C101", 0, []int{2, 3}))
	assert.True(t, tr.RoomFree("C101", 0, []int{3, 4}))
	assert.True(t, tr.RoomFree("C101", 1, []int{1, 2}))

	assert.Equal(t, []int{1, 2}, tr.RoomSlots("C101", 0))
	assert.Empty(t, tr.RoomSlots("C101", 1))
	assert.Equal(t, []string{"C101"}, tr.Rooms())
}

func TestTrackerFaculty(t *testing.T) {
	tr := NewTracker(5)

	assert.True(t, tr.FacultyFreeAt("Prof. Rao", 2, 4))
	tr.OccupyFaculty("Prof. Rao", 2, []int{4, 5, 6})
	assert.False(t, tr.FacultyFreeAt("Prof. Rao", 2, 5))
	assert.True(t, tr.FacultyFreeAt("Prof. Rao", 2, 7))
	assert.True(t, tr.FacultyFreeAt("Prof. Rao", 3, 5))

	assert.Equal(t, []int{4, 5, 6}, tr.FacultySlots("Prof. Rao", 2))
	assert.Empty(t, tr.FacultySlots("Prof. Iyer", 2))
}

func TestLedgerIdempotentPerCourse(t *testing.T) {
	l := NewLedger()
	l.Record("CSE", 3, "CS301", "Operating Systems", "Prof. Rao", Lecture, "A", "attempt limit exceeded")
	l.Record("CSE", 3, "CS301", "Operating Systems", "Prof. Rao", Lecture, "A", "attempt limit exceeded")
	l.Record("CSE", 3, "CS301", "Operating Systems", "Prof. Rao", Lab, "B", "no slot available")

	assert.Equal(t, 1, l.Len())
	rec := l.Records()[0]
	assert.Equal(t, []ComponentKind{Lecture, Lab}, rec.Kinds)
	assert.Equal(t, []string{"attempt limit exceeded", "no slot available"}, rec.Reasons)

	l.Record("DSAI", 5, "DS501", "Deep Learning", "Prof. Iyer", Tutorial, "A", "no slot available")
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, "CS301", l.Records()[0].Code)
	assert.Equal(t, "DS501", l.Records()[1].Code)
}

func TestTimetableComponentConflicts(t *testing.T) {
	tt := NewSectionTimetable("CSE", 3, "A", 5, 8)

	head := tt.Cell(1, 2)
	head.Kind = Lecture
	head.Code = "CS301"
	tt.Cell(1, 3).Kind = Lecture

	assert.True(t, tt.HasComponentConflict(1, "CS301", Lecture))
	assert.True(t, tt.HasComponentConflict(1, "CS301", Tutorial))
	assert.False(t, tt.HasComponentConflict(1, "CS301", Lab))
	assert.False(t, tt.HasComponentConflict(2, "CS301", Lecture))
	assert.False(t, tt.HasComponentConflict(1, "CS999", Lecture))

	assert.Equal(t, 3, tt.SpanEnd(1, 2))
	assert.True(t, tt.Cell(1, 2).IsSpanHead())
	assert.True(t, tt.Cell(1, 3).IsContinuation())
	assert.True(t, tt.Cell(1, 4).IsEmpty())
}

func TestRoomPoolTiers(t *testing.T) {
	pool := NewRoomPool([]*Room{
		{Number: "S1", Type: RoomLecture, Capacity: 40},
		{Number: "M1", Type: RoomLecture, Capacity: 60},
		{Number: "M2", Type: RoomLecture, Capacity: 120},
		{Number: "L1", Type: RoomLecture, Capacity: 200},
		{Number: "X120", Type: RoomSeater120, Capacity: 120},
		{Number: "AUD", Type: RoomSeater240, Capacity: 240},
		{Number: "LAB1", Type: RoomComputerLab, Capacity: 60},
	})

	assert.ElementsMatch(t, []string{"S1"}, pool.Small)
	assert.ElementsMatch(t, []string{"M1", "M2"}, pool.Medium)
	assert.ElementsMatch(t, []string{"L1", "X120"}, pool.Large)
	assert.ElementsMatch(t, []string{"AUD"}, pool.Auditorium)
	assert.ElementsMatch(t, []string{"LAB1"}, pool.ComputerLab)

	assert.ElementsMatch(t, []string{"L1", "X120", "AUD"}, pool.TierFor(150))
	assert.ElementsMatch(t, []string{"M1", "M2", "L1", "X120"}, pool.TierFor(80))
	assert.ElementsMatch(t, []string{"S1", "M1", "M2", "L1", "X120"}, pool.TierFor(40))
}
