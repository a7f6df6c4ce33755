package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadgrid/TimetableGen/pkg/model"
)

func auditoriumFixture() []*model.Course {
	return []*model.Course{
		{Department: "CSE", Semester: 2, Code: "HS201", Name: "Engineering Economics",
			Faculty: "Prof. Menon", L: 3, T: 1, SeaterSTR: "yes", Auditorium: true},
		{Department: "DSAI", Semester: 2, Code: "HS201", Name: "Engineering Economics",
			Faculty: "Prof. Menon", L: 3, T: 1, SeaterSTR: "yes", Auditorium: true},
		{Department: "CSE", Semester: 2, Code: "CS201", Name: "Data Structures",
			Faculty: "Prof. Rao", L: 3},
		{Department: "DSAI", Semester: 2, Code: "DS201", Name: "Statistics",
			Faculty: "Prof. Iyer", L: 3},
	}
}

func TestAuditoriumCourseSharedAcrossDepartments(t *testing.T) {
	e := newTestEngine(t, 17, testRooms())

	res := e.Run(auditoriumFixture(), nil)

	require.Empty(t, res.Unscheduled)

	type meeting struct {
		day, slot int
		kind      model.ComponentKind
	}
	perDept := make(map[string][]meeting)
	for _, dept := range []string{"CSE", "DSAI"} {
		tt := res.Timetables[dept][2]["A"]
		require.NotNil(t, tt)
		for day := range tt.Grid {
			for s := range tt.Grid[day] {
				cell := tt.Cell(day, s)
				if cell.Code == "HS201" && cell.IsSpanHead() {
					perDept[dept] = append(perDept[dept], meeting{day, s, cell.Kind})
					assert.Equal(t, "A1", cell.Room, "shared sessions run in the auditorium")
				}
			}
		}
	}
	assert.Equal(t, perDept["CSE"], perDept["DSAI"], "both departments attend the same sessions")
	require.Len(t, perDept["CSE"], 3) // two lectures and a tutorial

	days := make(map[int]bool)
	for _, m := range perDept["CSE"] {
		assert.False(t, days[m.day], "shared sessions land on distinct days")
		days[m.day] = true
	}
}

func TestAuditoriumDoesNotBookFaculty(t *testing.T) {
	e := newTestEngine(t, 17, testRooms())

	res := e.Run(auditoriumFixture(), nil)

	for day := range e.cal.Days {
		assert.Empty(t, res.Occupancy.FacultySlots("Prof. Menon", day))
	}
}

func TestAuditoriumLabsSplitAcrossTwoComputerLabs(t *testing.T) {
	e := newTestEngine(t, 29, testRooms())
	courses := []*model.Course{
		{Department: "CSE", Semester: 2, Code: "ES201", Name: "Programming Practice",
			Faculty: "Prof. Rao", L: 2, P: 2, Auditorium: true},
		{Department: "DSAI", Semester: 2, Code: "ES201", Name: "Programming Practice",
			Faculty: "Prof. Rao", L: 2, P: 2, Auditorium: true},
	}

	res := e.Run(courses, nil)

	require.Empty(t, res.Unscheduled)

	labDays := make(map[string]int)
	for _, dept := range []string{"CSE", "DSAI"} {
		tt := res.Timetables[dept][2]["A"]
		found := false
		for day := range tt.Grid {
			for s := range tt.Grid[day] {
				cell := tt.Cell(day, s)
				if cell.Code == "ES201" && cell.Kind == model.Lab && cell.IsSpanHead() {
					found = true
					labDays[dept] = day
					assert.Len(t, cell.LabRooms, 2, "lab sessions split across two rooms")
					assert.ElementsMatch(t, []string{"L1", "L2"}, cell.LabRooms)
				}
			}
		}
		assert.True(t, found, "%s lab session missing", dept)
	}
	assert.NotEqual(t, labDays["CSE"], labDays["DSAI"], "departments run labs on different days")
}

func TestAuditoriumWithoutHallRecordsLedger(t *testing.T) {
	var noHall []*model.Room
	for _, r := range testRooms() {
		if r.Type != model.RoomSeater240 {
			noHall = append(noHall, r)
		}
	}
	e := newTestEngine(t, 3, noHall)

	res := e.Run(auditoriumFixture()[:2], nil)

	require.NotEmpty(t, res.Unscheduled)
	rec := res.Unscheduled[0]
	assert.Equal(t, "HS201", rec.Code)
	assert.Contains(t, rec.Reasons, "auditorium slot not available")
}
