package scheduler

import (
	"strings"

	"go.uber.org/zap"

	"github.com/acadgrid/TimetableGen/pkg/model"
)

// scheduleBaskets places the shared elective runs of one semester. Lectures
// of every basket go first so tutorials can steer clear of their days.
func (e *Engine) scheduleBaskets(groups []*model.BasketGroup) {
	lectureDays := make(map[string][]int)
	for _, g := range groups {
		for i := 0; i < g.Lectures; i++ {
			day, ok := e.scheduleBasketOccurrence(g, model.Lecture, e.durations.Lecture, lectureDays[g.Label])
			if !ok {
				e.log.Warn("basket lecture slot not placed",
					zap.Int("semester", g.Semester), zap.String("basket", g.Label))
				continue
			}
			lectureDays[g.Label] = append(lectureDays[g.Label], day)
		}
	}
	for _, g := range groups {
		for i := 0; i < g.Tutorials; i++ {
			if _, ok := e.scheduleBasketOccurrence(g, model.Tutorial, e.durations.Tutorial, lectureDays[g.Label]); !ok {
				e.log.Warn("basket tutorial slot not placed",
					zap.Int("semester", g.Semester), zap.String("basket", g.Label))
			}
		}
	}
}

// scheduleBasketOccurrence searches for one (day, slot-run) that is empty in
// every participating section timetable, keeps every declared faculty
// member free, does not overlap or touch another basket's run, and can seat
// every option it manages to room. The run is stamped into all timetables
// at once and each seated option's faculty is booked.
func (e *Engine) scheduleBasketOccurrence(g *model.BasketGroup, kind model.ComponentKind, minutes int, excludeDays []int) (int, bool) {
	tts := e.timetablesFor(g.Departments, g.Semester)
	if len(tts) == 0 {
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
			if e.conflictsWithBaskets(g.Semester, g.Label, day, slots) {
				continue
			}
			if !e.basketFacultyFree(g, day, slots) {
				continue
			}
			meetings := e.assignBasketRooms(g, day, slots)
			if len(meetings) == 0 {
				continue
			}

			e.stampBasket(tts, g, kind, day, slots, meetings)
			rooms := make([]string, 0, len(meetings))
			for _, m := range meetings {
				rooms = append(rooms, m.Room)
				e.occ.OccupyRoom(m.Room, day, slots)
				if m.Faculty != "" && m.Faculty != "TBD" {
					e.occ.OccupyFaculty(m.Faculty, day, slots)
				}
			}
			e.basketRuns[g.Semester] = append(e.basketRuns[g.Semester], claimedRun{
				label: g.Label,
				day:   day,
				slots: slots,
				rooms: rooms,
			})
			e.electives = append(e.electives, ElectiveOccurrence{
				Semester:    g.Semester,
				Basket:      g.Label,
				Kind:        kind,
				Day:         day,
				Slots:       slots,
				Departments: g.Departments,
				Options:     meetings,
			})
			e.placed++
			return day, true
		}
	}
	return 0, false
}

// walkSharedRun is walkRun across several timetables: every slot of the run
// must be empty in all of them.
func (e *Engine) walkSharedRun(tts []*model.SectionTimetable, day, start, minutes int, kind model.ComponentKind) []int {
	var slots []int
	accumulated := 0
	for i := start; i < len(e.cal.Slots) && accumulated < minutes; i++ {
		if e.cal.IsMinor(i) || e.cal.IsBreak(i, kind) {
			return nil
		}
		for _, tt := range tts {
			if !tt.Cell(day, i).IsEmpty() {
				return nil
			}
		}
		slots = append(slots, i)
		accumulated += e.cal.SlotMinutes(i)
	}
	if accumulated < minutes {
		return nil
	}
	return slots
}

// basketFacultyFree reports whether every declared faculty member of the
// basket is unbooked for the whole candidate run. Baskets in other
// semesters share the faculty pool, so a member teaching elsewhere blocks
// the run.
func (e *Engine) basketFacultyFree(g *model.BasketGroup, day int, slots []int) bool {
	for _, fac := range g.Faculty {
		if fac == "" || fac == "TBD" {
			continue
		}
		for _, s := range slots {
			if !e.occ.FacultyFreeAt(fac, day, s) {
				return false
			}
		}
	}
	return true
}

// conflictsWithBaskets reports whether the candidate run shares a slot with,
// or sits directly next to, a run already claimed by a different basket of
// the same semester on the same day.
func (e *Engine) conflictsWithBaskets(semester int, label string, day int, slots []int) bool {
	newMin, newMax := slots[0], slots[len(slots)-1]
	for _, run := range e.basketRuns[semester] {
		if run.label == label || run.day != day {
			continue
		}
		for _, s := range run.slots {
			if containsInt(slots, s) {
				return true
			}
		}
		exMin, exMax := run.slots[0], run.slots[len(run.slots)-1]
		if abs(newMin-exMax) == 1 || abs(newMax-exMin) == 1 {
			return true
		}
	}
	return false
}

// assignBasketRooms seats the basket's options for one run, largest
// enrollment first so big options get the scarce big rooms. Rooms already
// claimed by any basket of the semester on that day are excluded outright.
// Options that cannot be roomed are dropped; a partial seating is still a
// valid occurrence.
func (e *Engine) assignBasketRooms(g *model.BasketGroup, day int, slots []int) []model.ElectiveMeeting {
	var used []string
	for _, run := range e.basketRuns[g.Semester] {
		if run.day == day {
			used = append(used, run.rooms...)
		}
	}

	candidates := dedupeStrings(append(append([]string(nil), e.pool.Large...), e.pool.Lecture...))
	for _, r := range used {
		candidates = removeString(candidates, r)
	}
	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	codes := append([]string(nil), g.Electives...)
	for i := 0; i < len(codes); i++ {
		for j := i + 1; j < len(codes); j++ {
			if g.CountFor(codes[j]) > g.CountFor(codes[i]) {
				codes[i], codes[j] = codes[j], codes[i]
			}
		}
	}

	var meetings []model.ElectiveMeeting
	for _, code := range codes {
		count := g.CountFor(code)
		room, ok := e.pickBasketRoom(candidates, count, day, slots)
		if !ok {
			continue
		}
		candidates = removeString(candidates, room)
		meetings = append(meetings, model.ElectiveMeeting{
			Code:    code,
			Room:    room,
			Faculty: g.FacultyForCode(code),
			Count:   count,
		})
	}
	return meetings
}

// pickBasketRoom finds the first free candidate fitting the enrollment tier:
// over 120 takes only the large pool, over 60 only the medium pool, smaller
// options take whatever comes first.
func (e *Engine) pickBasketRoom(candidates []string, count int, day int, slots []int) (string, bool) {
	for _, room := range candidates {
		switch {
		case count > 120:
			if !containsString(e.pool.Large, room) {
				continue
			}
		case count > 60:
			if !containsString(e.pool.Medium, room) {
				continue
			}
		}
		if e.occ.RoomFree(room, day, slots) {
			return room, true
		}
	}
	return "", false
}

// stampBasket writes the shared run into every participating timetable.
// Basket cells repeat the descriptor on each slot.
func (e *Engine) stampBasket(tts []*model.SectionTimetable, g *model.BasketGroup, kind model.ComponentKind, day int, slots []int, meetings []model.ElectiveMeeting) {
	faculty := "Multiple Faculty"
	if len(meetings) <= 2 {
		names := make([]string, 0, len(meetings))
		for _, m := range meetings {
			names = append(names, m.Faculty)
		}
		faculty = strings.Join(names, ", ")
	}
	for _, tt := range tts {
		for _, s := range slots {
			cell := tt.Cell(day, s)
			cell.Kind = kind
			cell.Name = g.Label + " Course"
			cell.Faculty = faculty
			cell.Electives = meetings
		}
	}
}
