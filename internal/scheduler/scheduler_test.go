package scheduler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadgrid/TimetableGen/internal/config"
	"github.com/acadgrid/TimetableGen/pkg/model"
)

func testRooms() []*model.Room {
	rooms := []*model.Room{
		{Number: "C101", TypeSTR: "LECTURE_ROOM", Capacity: 60},
		{Number: "C102", TypeSTR: "LECTURE_ROOM", Capacity: 60},
		{Number: "C103", TypeSTR: "LECTURE_ROOM", Capacity: 60},
		{Number: "C201", TypeSTR: "LECTURE_ROOM", Capacity: 120},
		{Number: "C301", TypeSTR: "LECTURE_ROOM", Capacity: 240},
		{Number: "L1", TypeSTR: "COMPUTER_LAB", Capacity: 60},
		{Number: "L2", TypeSTR: "COMPUTER_LAB", Capacity: 60},
		{Number: "A1", TypeSTR: "SEATER_240", Capacity: 240},
	}
	for _, r := range rooms {
		r.Normalize()
	}
	return rooms
}

func newTestEngine(t *testing.T, seed int64, rooms []*model.Room) *Engine {
	t.Helper()
	cfg := config.Default()
	cal := cfg.Calendar()
	pool := model.NewRoomPool(rooms)
	rng := rand.New(rand.NewSource(seed))
	return New(cfg, cal, pool, rng, zap.NewNop())
}

func TestRunPlacesRegularCourse(t *testing.T) {
	e := newTestEngine(t, 7, testRooms())
	courses := []*model.Course{
		{Department: "CSE", Semester: 4, Code: "CS301", Name: "Operating Systems",
			Faculty: "Prof. Rao", L: 3, T: 1},
	}

	res := e.Run(courses, nil)

	require.Empty(t, res.Unscheduled)
	tt := res.Timetables["CSE"][4]["A"]
	require.NotNil(t, tt)

	lectures, tutorials := 0, 0
	for day := range tt.Grid {
		for s := range tt.Grid[day] {
			cell := tt.Cell(day, s)
			if !cell.IsSpanHead() {
				continue
			}
			switch cell.Kind {
			case model.Lecture:
				lectures++
			case model.Tutorial:
				tutorials++
			}
			assert.Equal(t, "CS301", cell.Code)
			assert.Equal(t, "Prof. Rao", cell.Faculty)
			assert.NotEmpty(t, cell.Room)
		}
	}
	assert.Equal(t, 2, lectures)
	assert.Equal(t, 1, tutorials)
}

func TestRunNeverUsesMinorSlots(t *testing.T) {
	e := newTestEngine(t, 11, testRooms())
	courses := []*model.Course{
		{Department: "CSE", Semester: 4, Code: "CS301", Name: "Operating Systems", Faculty: "Prof. Rao", L: 3, T: 1},
		{Department: "CSE", Semester: 4, Code: "CS302", Name: "Databases", Faculty: "Prof. Iyer", L: 3, P: 2},
		{Department: "CSE", Semester: 4, Code: "CS303", Name: "Networks", Faculty: "Prof. Das", L: 2, T: 1},
	}

	res := e.Run(courses, nil)

	tt := res.Timetables["CSE"][4]["A"]
	for day := range tt.Grid {
		for s := range tt.Grid[day] {
			if tt.Cell(day, s).IsEmpty() {
				continue
			}
			assert.False(t, e.cal.IsMinor(s), "minor slot %d used on day %d", s, day)
			assert.False(t, e.cal.IsBreak(s, tt.Cell(day, s).Kind), "break slot %d used on day %d", s, day)
		}
	}
}

func TestSameCourseLectureTutorialNeverShareADay(t *testing.T) {
	e := newTestEngine(t, 23, testRooms())
	courses := []*model.Course{
		{Department: "CSE", Semester: 4, Code: "CS301", Name: "Operating Systems", Faculty: "Prof. Rao", L: 3, T: 1},
		{Department: "CSE", Semester: 4, Code: "CS302", Name: "Databases", Faculty: "Prof. Iyer", L: 3, T: 1},
	}

	res := e.Run(courses, nil)

	_, report := Validate(res, e.cal, e.cfg.MinFacultyGapMin)
	assert.Contains(t, report, "[  OK]: Lecture and tutorial day check.")
}

func TestFacultyRestGap(t *testing.T) {
	e := newTestEngine(t, 31, testRooms())
	courses := []*model.Course{
		{Department: "CSE", Semester: 4, Code: "CS301", Name: "Operating Systems", Faculty: "Prof. Rao", L: 3},
		{Department: "CSE", Semester: 4, Code: "CS304", Name: "Compilers", Faculty: "Prof. Rao", L: 3},
	}

	res := e.Run(courses, nil)

	_, report := Validate(res, e.cal, e.cfg.MinFacultyGapMin)
	assert.Contains(t, report, "[  OK]: Faculty rest gap check.")
	assert.Contains(t, report, "[  OK]: Faculty collision check.")
}

func TestStableRoomBinding(t *testing.T) {
	e := newTestEngine(t, 41, testRooms())
	courses := []*model.Course{
		{Department: "CSE", Semester: 4, Code: "CS301", Name: "Operating Systems", Faculty: "Prof. Rao", L: 3, T: 1},
	}

	res := e.Run(courses, nil)

	tt := res.Timetables["CSE"][4]["A"]
	rooms := make(map[string]bool)
	for day := range tt.Grid {
		for s := range tt.Grid[day] {
			cell := tt.Cell(day, s)
			if cell.IsSpanHead() && cell.Room != "" {
				rooms[cell.Room] = true
			}
		}
	}
	assert.Len(t, rooms, 1, "course components spread across rooms %v", rooms)
}

func TestMissingComputerLabsRecordedAndRunContinues(t *testing.T) {
	var noLabs []*model.Room
	for _, r := range testRooms() {
		if r.Type != model.RoomComputerLab {
			noLabs = append(noLabs, r)
		}
	}
	e := newTestEngine(t, 13, noLabs)
	courses := []*model.Course{
		{Department: "CSE", Semester: 4, Code: "CS302", Name: "Databases", Faculty: "Prof. Iyer", L: 3, P: 2},
		{Department: "CSE", Semester: 4, Code: "CS303", Name: "Networks", Faculty: "Prof. Das", L: 2},
	}

	res := e.Run(courses, nil)

	require.Len(t, res.Unscheduled, 1)
	rec := res.Unscheduled[0]
	assert.Equal(t, "CS302", rec.Code)
	assert.Contains(t, rec.Reasons, "no COMPUTER_LAB rooms available")

	placed := false
	tt := res.Timetables["CSE"][4]["A"]
	for day := range tt.Grid {
		for s := range tt.Grid[day] {
			if tt.Cell(day, s).Code == "CS303" {
				placed = true
			}
		}
	}
	assert.True(t, placed, "unrelated course should still be scheduled")
}

func TestCourseQueueOrdersLabCoursesFirst(t *testing.T) {
	e := newTestEngine(t, 1, testRooms())
	courses := []*model.Course{
		{Department: "CSE", Semester: 4, Code: "CS401", Name: "Theory of Computation", L: 4},
		{Department: "CSE", Semester: 4, Code: "CS402", Name: "Systems Programming", L: 2, P: 2},
		{Department: "CSE", Semester: 4, Code: "CS403", Name: "Technical Writing", L: 2},
	}

	queue := e.courseQueue(courses, "CSE", 4, false)

	require.Len(t, queue, 3)
	assert.Equal(t, "CS402", queue[0].Code, "lab courses claim computer labs before the rest")
	assert.Equal(t, "CS401", queue[1].Code)
	assert.Equal(t, "CS403", queue[2].Code)
}

func TestWalkRunStopsAtBreaksAndOccupiedCells(t *testing.T) {
	e := newTestEngine(t, 1, testRooms())
	tt := model.NewSectionTimetable("CSE", 4, "A", len(e.cal.Days), len(e.cal.Slots))

	// Slot 0 is the 07:30 opener; a run can never start there.
	assert.Nil(t, e.walkRun(tt, 0, 0, 90, model.Lecture, "Prof. Rao"))

	slots := e.walkRun(tt, 0, 1, 90, model.Lecture, "Prof. Rao")
	require.Equal(t, []int{1, 2, 3}, slots)

	tt.Cell(0, 2).Kind = model.Lab
	assert.Nil(t, e.walkRun(tt, 0, 1, 90, model.Lecture, "Prof. Rao"))

	tt2 := model.NewSectionTimetable("CSE", 4, "B", len(e.cal.Days), len(e.cal.Slots))
	e.occ.OccupyFaculty("Prof. Rao", 0, []int{3})
	assert.Nil(t, e.walkRun(tt2, 0, 1, 90, model.Lecture, "Prof. Rao"))
}

func TestRestGapRejectsCloseStarts(t *testing.T) {
	e := newTestEngine(t, 1, testRooms())

	// Booking at 09:00 (slot 1) blocks any new start before 12:00.
	e.occ.OccupyFaculty("Prof. Rao", 0, []int{1, 2, 3})

	assert.False(t, e.restGapOK("Prof. Rao", 0, 6))  // 11:00
	assert.True(t, e.restGapOK("Prof. Rao", 0, 13))  // 14:00
	assert.True(t, e.restGapOK("Prof. Rao", 1, 6))   // other day
	assert.True(t, e.restGapOK("Prof. Iyer", 0, 6))  // other faculty
}
