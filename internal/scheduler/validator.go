package scheduler

import (
	"fmt"
	"sort"

	"github.com/acadgrid/TimetableGen/pkg/model"
)

// meetingKey identifies one physical meeting so runs legitimately shared by
// several section timetables (baskets, auditorium courses, split labs)
// collapse to a single booking before collision checks.
type meetingKey struct {
	day   int
	start int
	room  string
	label string
}

type booking struct {
	tt      *model.SectionTimetable
	day     int
	start   int
	end     int
	kind    model.ComponentKind
	code    string
	name    string
	faculty string
	rooms   []string
	options []model.ElectiveMeeting
	shared  bool
}

// Validate re-derives every booking from the finished grids and checks the
// hard rules: no room double-booking, no faculty double-booking, no course
// with a lecture and a tutorial on one day, identical basket runs across
// participating timetables, no adjacent basket runs, and the faculty rest
// gap. Returns false and a report for invalid schedules.
func Validate(res *Result, cal *model.Calendar, minGapMin int) (bool, string) {
	bookings := collectBookings(res)

	var message string
	valid := true

	roomMsg, roomOK := checkRoomCollisions(bookings)
	facMsg, facOK := checkFacultyCollisions(bookings)
	dayMsg, dayOK := checkLectureTutorialDays(res)
	syncMsg, syncOK := checkBasketSynchrony(res)
	sepMsg, sepOK := checkBasketSeparation(res)
	gapMsg, gapOK := checkFacultyGap(bookings, cal, minGapMin)

	for _, c := range []struct {
		ok    bool
		title string
		body  string
	}{
		{roomOK, "Room collision check.", roomMsg},
		{facOK, "Faculty collision check.", facMsg},
		{dayOK, "Lecture and tutorial day check.", dayMsg},
		{syncOK, "Basket synchrony check.", syncMsg},
		{sepOK, "Basket separation check.", sepMsg},
		{gapOK, "Faculty rest gap check.", gapMsg},
	} {
		if c.ok {
			message += "[  OK]: " + c.title + "\n"
		} else {
			valid = false
			message += "[FAIL]: " + c.title + "\n" + c.body
		}
	}

	return valid, message
}

// collectBookings walks every grid and rebuilds the placed runs. Basket
// cells carry their descriptor on each slot, so their spans are walked by
// descriptor equality instead of the continuation flag.
func collectBookings(res *Result) []booking {
	var out []booking
	for _, tt := range res.SectionTimetables() {
		for day := range tt.Grid {
			for s := 0; s < len(tt.Grid[day]); {
				cell := tt.Cell(day, s)
				if cell.IsEmpty() || !cell.IsSpanHead() {
					s++
					continue
				}
				end := spanEnd(tt, day, s)
				b := booking{
					tt:      tt,
					day:     day,
					start:   s,
					end:     end,
					kind:    cell.Kind,
					code:    cell.Code,
					name:    cell.Name,
					faculty: cell.Faculty,
					shared:  cell.IsBasket() || cell.Code == "" || sharesRun(res, cell),
				}
				if len(cell.LabRooms) > 0 {
					b.rooms = cell.LabRooms
				} else if cell.Room != "" {
					b.rooms = []string{cell.Room}
				}
				if cell.IsBasket() {
					for _, m := range cell.Electives {
						b.rooms = append(b.rooms, m.Room)
					}
					b.options = cell.Electives
					b.name = cell.Name
				}
				out = append(out, b)
				s = end + 1
			}
		}
	}
	return out
}

func sharesRun(res *Result, cell *model.Cell) bool {
	// Auditorium runs stamp the same code into several departments; any
	// course code appearing in more than one department's grid is shared.
	seen := ""
	for _, tt := range res.SectionTimetables() {
		for day := range tt.Grid {
			for s := range tt.Grid[day] {
				c := tt.Cell(day, s)
				if c.Code != cell.Code || c.Code == "" {
					continue
				}
				if seen == "" {
					seen = tt.Department
				} else if seen != tt.Department {
					return true
				}
			}
		}
	}
	return false
}

func spanEnd(tt *model.SectionTimetable, day, start int) int {
	head := tt.Cell(day, start)
	if head.IsBasket() {
		end := start
		for end+1 < len(tt.Grid[day]) {
			next := tt.Cell(day, end+1)
			if !next.IsBasket() || next.Name != head.Name || next.Kind != head.Kind {
				break
			}
			end++
		}
		return end
	}
	return tt.SpanEnd(day, start)
}

func checkRoomCollisions(bookings []booking) (string, bool) {
	var msg string
	ok := true
	type claim struct {
		key   meetingKey
		where string
	}
	used := make(map[string][]claim)
	for _, b := range bookings {
		key := meetingKey{day: b.day, start: b.start, label: b.code + b.name}
		for _, room := range b.rooms {
			for slot := b.start; slot <= b.end; slot++ {
				id := fmt.Sprintf("%s/%d/%d", room, b.day, slot)
				dup := false
				for _, prior := range used[id] {
					if prior.key != key {
						ok = false
						dup = true
						msg += fmt.Sprintf("- Room %s booked twice on day %d slot %d (%s vs %s)\n",
							room, b.day, slot, prior.where, b.code)
					}
				}
				if !dup {
					used[id] = append(used[id], claim{key: key, where: b.code + b.name})
				}
			}
		}
	}
	return msg, ok
}

// checkFacultyCollisions books every faculty member a booking names, taking
// basket bookings apart into their per-option faculty. Auditorium runs are
// skipped because they deliberately leave faculty unbooked.
func checkFacultyCollisions(bookings []booking) (string, bool) {
	var msg string
	ok := true
	used := make(map[string]meetingKey)
	for _, b := range bookings {
		key := meetingKey{day: b.day, start: b.start, label: b.code + b.name}
		for _, fac := range bookingFaculty(b) {
			for slot := b.start; slot <= b.end; slot++ {
				id := fmt.Sprintf("%s/%d/%d", fac, b.day, slot)
				if prior, busy := used[id]; busy {
					if prior != key {
						ok = false
						msg += fmt.Sprintf("- Faculty %s booked twice on day %d slot %d\n", fac, b.day, slot)
					}
					continue
				}
				used[id] = key
			}
		}
	}
	return msg, ok
}

// bookingFaculty lists the faculty members a booking actually consumes:
// each option's faculty for baskets, the section faculty for regular runs,
// nobody for other shared runs.
func bookingFaculty(b booking) []string {
	var facs []string
	if len(b.options) > 0 {
		for _, m := range b.options {
			facs = append(facs, m.Faculty)
		}
	} else if !b.shared {
		facs = []string{b.faculty}
	}
	out := facs[:0]
	for _, fac := range facs {
		if fac == "" || fac == "TBD" || fac == "Multiple Faculty" {
			continue
		}
		out = append(out, fac)
	}
	return out
}

func checkLectureTutorialDays(res *Result) (string, bool) {
	var msg string
	ok := true
	for _, tt := range res.SectionTimetables() {
		for day := range tt.Grid {
			kinds := make(map[string]map[model.ComponentKind]int)
			for s := range tt.Grid[day] {
				cell := tt.Cell(day, s)
				if cell.Code == "" || !cell.IsSpanHead() {
					continue
				}
				if kinds[cell.Code] == nil {
					kinds[cell.Code] = make(map[model.ComponentKind]int)
				}
				kinds[cell.Code][cell.Kind]++
			}
			for code, byKind := range kinds {
				if byKind[model.Lecture] > 1 {
					ok = false
					msg += fmt.Sprintf("- %s holds two lectures on day %d in %s-%d-%s\n",
						code, day, tt.Department, tt.Semester, tt.Section)
				}
				if byKind[model.Lecture] > 0 && byKind[model.Tutorial] > 0 {
					ok = false
					msg += fmt.Sprintf("- %s holds a lecture and a tutorial on day %d in %s-%d-%s\n",
						code, day, tt.Department, tt.Semester, tt.Section)
				}
			}
		}
	}
	return msg, ok
}

// checkBasketSynchrony verifies every placed basket occurrence occupies the
// identical (day, slots) in each participating section timetable.
func checkBasketSynchrony(res *Result) (string, bool) {
	var msg string
	ok := true
	for _, occ := range res.Electives {
		for _, tt := range res.SectionTimetables() {
			if tt.Semester != occ.Semester || !containsString(occ.Departments, tt.Department) {
				continue
			}
			for _, s := range occ.Slots {
				cell := tt.Cell(occ.Day, s)
				if !cell.IsBasket() || cell.Kind != occ.Kind {
					ok = false
					msg += fmt.Sprintf("- Basket %s run missing from %s-%d-%s on day %d slot %d\n",
						occ.Basket, tt.Department, tt.Semester, tt.Section, occ.Day, s)
				}
			}
		}
	}
	return msg, ok
}

// checkBasketSeparation verifies runs of different baskets in one semester
// never overlap or sit in directly adjacent slots on the same day.
func checkBasketSeparation(res *Result) (string, bool) {
	var msg string
	ok := true
	for i, a := range res.Electives {
		for _, b := range res.Electives[i+1:] {
			if a.Semester != b.Semester || a.Basket == b.Basket || a.Day != b.Day {
				continue
			}
			aMin, aMax := a.Slots[0], a.Slots[len(a.Slots)-1]
			bMin, bMax := b.Slots[0], b.Slots[len(b.Slots)-1]
			overlap := aMin <= bMax && bMin <= aMax
			touching := abs(aMin-bMax) == 1 || abs(aMax-bMin) == 1
			if overlap || touching {
				ok = false
				msg += fmt.Sprintf("- Baskets %s and %s collide on day %d in semester %d\n",
					a.Basket, b.Basket, a.Day, a.Semester)
			}
		}
	}
	return msg, ok
}

// checkFacultyGap verifies the start times of any two same-day bookings of
// one faculty member differ by at least the configured rest gap. Shared
// runs count once.
func checkFacultyGap(bookings []booking, cal *model.Calendar, minGapMin int) (string, bool) {
	var msg string
	ok := true
	type start struct {
		min int
		key meetingKey
	}
	byFacultyDay := make(map[string][]start)
	for _, b := range bookings {
		if b.shared || b.faculty == "" || b.faculty == "TBD" || b.faculty == "Multiple Faculty" {
			continue
		}
		id := fmt.Sprintf("%s/%d", b.faculty, b.day)
		byFacultyDay[id] = append(byFacultyDay[id], start{
			min: int(cal.Slots[b.start].Start),
			key: meetingKey{day: b.day, start: b.start, label: b.code + b.name},
		})
	}
	ids := make([]string, 0, len(byFacultyDay))
	for id := range byFacultyDay {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		starts := byFacultyDay[id]
		for i := 0; i < len(starts); i++ {
			for j := i + 1; j < len(starts); j++ {
				if starts[i].key == starts[j].key {
					continue
				}
				if abs(starts[i].min-starts[j].min) < minGapMin {
					ok = false
					msg += fmt.Sprintf("- Faculty bookings %d minutes apart for %s\n",
						abs(starts[i].min-starts[j].min), id)
				}
			}
		}
	}
	return msg, ok
}
