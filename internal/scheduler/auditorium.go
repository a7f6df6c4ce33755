package scheduler

import (
	"go.uber.org/zap"

	"github.com/acadgrid/TimetableGen/pkg/model"
)

// auditoriumCourse is one cross-department course flagged for the shared
// auditorium: one representative row per department, keyed by course code.
type auditoriumCourse struct {
	code        string
	semester    int
	departments []string
	byDept      map[string]*model.Course
}

// scheduleAuditoriumCourses places the courses every listed department
// attends together: lectures and tutorials in one auditorium on distinct
// days for all departments at once, labs per department in a pair of
// computer labs. The auditorium and lab rooms are booked in the tracker;
// the teaching faculty is deliberately left unbooked because these runs
// already pin every section of the semester.
func (e *Engine) scheduleAuditoriumCourses(courses []*model.Course) {
	for _, ac := range groupAuditorium(courses) {
		e.scheduleAuditoriumCourse(ac)
	}
}

func groupAuditorium(courses []*model.Course) []*auditoriumCourse {
	var order []*auditoriumCourse
	byCode := make(map[string]*auditoriumCourse)
	for _, c := range courses {
		if !c.Auditorium || c.Skip {
			continue
		}
		ac, ok := byCode[c.Code]
		if !ok {
			ac = &auditoriumCourse{
				code:     c.Code,
				semester: c.Semester,
				byDept:   make(map[string]*model.Course),
			}
			byCode[c.Code] = ac
			order = append(order, ac)
		}
		if _, seen := ac.byDept[c.Department]; !seen {
			ac.departments = append(ac.departments, c.Department)
			ac.byDept[c.Department] = c
		}
	}
	return order
}

func (e *Engine) scheduleAuditoriumCourse(ac *auditoriumCourse) {
	rep := ac.byDept[ac.departments[0]]
	sessions := rep.RequiredSessions(e.durations)
	tts := e.timetablesFor(ac.departments, ac.semester)
	if len(tts) == 0 {
		return
	}

	var usedDays []int
	for i := 0; i < sessions.Lectures; i++ {
		day, ok := e.placeAuditoriumRun(ac, tts, model.Lecture, e.durations.Lecture, usedDays)
		if !ok {
			e.recordAuditorium(ac, model.Lecture, "auditorium slot not available")
			continue
		}
		usedDays = append(usedDays, day)
	}
	for i := 0; i < sessions.Tutorials; i++ {
		day, ok := e.placeAuditoriumRun(ac, tts, model.Tutorial, e.durations.Tutorial, usedDays)
		if !ok {
			e.recordAuditorium(ac, model.Tutorial, "auditorium slot not available")
			continue
		}
		usedDays = append(usedDays, day)
	}
	if sessions.Labs > 0 {
		e.scheduleAuditoriumLabs(ac, sessions.LabMinutes, usedDays)
	}
}

// placeAuditoriumRun finds one (day, run, auditorium room) empty in every
// participating timetable and stamps it with each section's own faculty
// pick. Only the room is consumed in the tracker.
func (e *Engine) placeAuditoriumRun(ac *auditoriumCourse, tts []*model.SectionTimetable, kind model.ComponentKind, minutes int, excludeDays []int) (int, bool) {
	if len(e.pool.Auditorium) == 0 {
		return 0, false
	}
	for attempt := 0; attempt < e.cfg.Budgets.Basket; attempt++ {
		day := e.rng.Intn(len(e.cal.Days))
		if containsInt(excludeDays, day) {
			continue
		}
		for _, start := range e.shuffledStarts(kind) {
			slots := e.walkSharedRun(tts, day, start, minutes, kind)
			if slots == nil {
				continue
			}
			room, ok := e.freeRoomFrom(e.pool.Auditorium, day, slots)
			if !ok {
				continue
			}
			for _, tt := range tts {
				course := ac.byDept[tt.Department]
				e.stampCourse(tt, day, slots, course, kind, course.SelectFaculty(tt.Section), room)
			}
			e.occ.OccupyRoom(room, day, slots)
			e.placed++
			return day, true
		}
	}
	return 0, false
}

// scheduleAuditoriumLabs books one lab block per department: both sections
// at the same time split across two computer labs, each department on its
// own day distinct from the lecture and tutorial days.
func (e *Engine) scheduleAuditoriumLabs(ac *auditoriumCourse, minutes int, usedDays []int) {
	labDays := append([]int(nil), usedDays...)
	for _, dept := range ac.departments {
		course := ac.byDept[dept]
		tts := e.timetablesFor([]string{dept}, ac.semester)
		day, ok := e.placeDepartmentLab(course, tts, minutes, labDays)
		if !ok {
			e.recordAuditorium(ac, model.Lab, "computer labs not available")
			continue
		}
		labDays = append(labDays, day)
	}
}

func (e *Engine) placeDepartmentLab(course *model.Course, tts []*model.SectionTimetable, minutes int, excludeDays []int) (int, bool) {
	if len(e.pool.ComputerLab) < 2 {
		return 0, false
	}
	for attempt := 0; attempt < e.cfg.Budgets.Lab; attempt++ {
		day := e.rng.Intn(len(e.cal.Days))
		if containsInt(excludeDays, day) {
			continue
		}
		for _, start := range e.shuffledStarts(model.Lab) {
			slots := e.walkSharedRun(tts, day, start, minutes, model.Lab)
			if slots == nil {
				continue
			}
			rooms := e.freeRoomPair(e.pool.ComputerLab, day, slots)
			if rooms == nil {
				continue
			}
			for _, tt := range tts {
				e.stampCourse(tt, day, slots, course, model.Lab, course.SelectFaculty(tt.Section), rooms[0])
				tt.Cell(day, slots[0]).LabRooms = rooms
			}
			for _, room := range rooms {
				e.occ.OccupyRoom(room, day, slots)
			}
			e.placed++
			return day, true
		}
	}
	return 0, false
}

func (e *Engine) freeRoomFrom(pool []string, day int, slots []int) (string, bool) {
	candidates := append([]string(nil), pool...)
	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, room := range candidates {
		if e.occ.RoomFree(room, day, slots) {
			return room, true
		}
	}
	return "", false
}

func (e *Engine) freeRoomPair(pool []string, day int, slots []int) []string {
	candidates := append([]string(nil), pool...)
	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	var pair []string
	for _, room := range candidates {
		if e.occ.RoomFree(room, day, slots) {
			pair = append(pair, room)
			if len(pair) == 2 {
				return pair
			}
		}
	}
	return nil
}

func (e *Engine) recordAuditorium(ac *auditoriumCourse, kind model.ComponentKind, reason string) {
	e.log.Warn("shared course session not placed",
		zap.String("course", ac.code), zap.String("kind", string(kind)))
	for _, dept := range ac.departments {
		c := ac.byDept[dept]
		e.ledger.Record(c.Department, c.Semester, c.Code, c.Name, c.Faculty, kind, "A", reason)
	}
}
