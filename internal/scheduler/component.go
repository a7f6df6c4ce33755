package scheduler

import (
	"github.com/acadgrid/TimetableGen/pkg/model"
)

// placeComponent tries to find a (day, contiguous slot-run, room) for one
// course component within the attempt budget. On success the run is stamped
// into tt and the room and faculty occupancy is consumed; on failure the
// timetable is untouched.
func (e *Engine) placeComponent(tt *model.SectionTimetable, course *model.Course, faculty string, kind model.ComponentKind, minutes, budget int) bool {
	for attempt := 0; attempt < budget; attempt++ {
		day := e.rng.Intn(len(e.cal.Days))
		if tt.HasComponentConflict(day, course.Code, kind) {
			continue
		}
		for _, start := range e.shuffledStarts(kind) {
			slots := e.walkRun(tt, day, start, minutes, kind, faculty)
			if slots == nil {
				continue
			}
			if !e.restGapOK(faculty, day, slots[0]) {
				continue
			}
			room, ok := e.resolveRoom(course.Code, course.RoomType(), day, slots, 60)
			if !ok {
				continue
			}
			e.stampCourse(tt, day, slots, course, kind, faculty, room)
			e.occ.OccupyFaculty(faculty, day, slots)
			e.occ.OccupyRoom(room, day, slots)
			return true
		}
	}
	return false
}

// shuffledStarts returns a random permutation of the slot indices,
// dropping starts a lecture cannot open from.
func (e *Engine) shuffledStarts(kind model.ComponentKind) []int {
	perm := e.rng.Perm(len(e.cal.Slots))
	if kind != model.Lecture {
		return perm
	}
	starts := perm[:0]
	for _, i := range perm {
		if !e.cal.IsLectureUnfriendly(i) {
			starts = append(starts, i)
		}
	}
	return starts
}

// walkRun accumulates slot minutes from start until the required duration
// is met. Any minor slot, kind-aware break, occupied cell, or booked
// faculty index aborts the run.
func (e *Engine) walkRun(tt *model.SectionTimetable, day, start, minutes int, kind model.ComponentKind, faculty string) []int {
	var slots []int
	accumulated := 0
	for i := start; i < len(e.cal.Slots) && accumulated < minutes; i++ {
		if e.cal.IsMinor(i) || e.cal.IsBreak(i, kind) {
			return nil
		}
		if !tt.Cell(day, i).IsEmpty() {
			return nil
		}
		if !e.occ.FacultyFreeAt(faculty, day, i) {
			return nil
		}
		slots = append(slots, i)
		accumulated += e.cal.SlotMinutes(i)
	}
	if accumulated < minutes {
		return nil
	}
	return slots
}

// restGapOK enforces the minimum distance between the start times of two
// same-day bookings of one faculty member. A faculty with no bookings that
// day always passes.
func (e *Engine) restGapOK(faculty string, day, start int) bool {
	newStart := int(e.cal.Slots[start].Start)
	for _, s := range e.occ.FacultySlots(faculty, day) {
		if abs(int(e.cal.Slots[s].Start)-newStart) < e.cfg.MinFacultyGapMin {
			return false
		}
	}
	return true
}

// resolveRoom returns a room free for the whole run. A course already bound
// to a room must reuse it; otherwise a random room from the appropriate
// pool is picked and the binding remembered for later components of the
// same course.
func (e *Engine) resolveRoom(code string, rt model.RoomType, day int, slots []int, capacity int) (string, bool) {
	if room, bound := e.courseRooms[code]; bound {
		if e.occ.RoomFree(room, day, slots) {
			return room, true
		}
		return "", false
	}

	var pool []string
	switch rt {
	case model.RoomComputerLab:
		pool = e.pool.ComputerLab
	case model.RoomSeater240:
		pool = e.pool.Auditorium
	default:
		pool = e.pool.TierFor(capacity)
	}
	if len(pool) == 0 {
		return "", false
	}

	candidates := append([]string(nil), pool...)
	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, room := range candidates {
		if e.occ.RoomFree(room, day, slots) {
			e.courseRooms[code] = room
			return room, true
		}
	}
	return "", false
}

// stampCourse writes the run into the grid: the head cell carries the full
// descriptor, later cells only the kind.
func (e *Engine) stampCourse(tt *model.SectionTimetable, day int, slots []int, course *model.Course, kind model.ComponentKind, faculty, room string) {
	for idx, s := range slots {
		cell := tt.Cell(day, s)
		cell.Kind = kind
		if idx == 0 {
			cell.Code = course.Code
			cell.Name = course.Name
			cell.Faculty = faculty
			cell.Room = room
			if kind == model.Lab {
				cell.LabRooms = []string{room}
			}
		}
	}
}
