package model

// ElectiveMeeting is one elective option placed inside a basket slot: the
// option code, the room it received, its faculty, and the declared
// enrollment count.
type ElectiveMeeting struct {
	Code    string
	Room    string
	Faculty string
	Count   int
}

// Cell is one slot of a section timetable. Kind "" means empty. The first
// cell of a multi-slot run carries the descriptive fields; the following
// cells carry only Kind so span boundaries stay detectable.
type Cell struct {
	Kind    ComponentKind
	Code    string
	Name    string
	Faculty string
	Room    string

	// LabRooms lists every lab room booked for a lab span (sections may
	// split across two rooms).
	LabRooms []string

	// Electives is set on basket cells only.
	Electives []ElectiveMeeting
}

func (c *Cell) IsEmpty() bool { return c.Kind == "" }

// IsSpanHead reports whether this cell opens a run. Basket cells carry their
// descriptor on every slot, so the head is the one whose predecessor differs.
func (c *Cell) IsSpanHead() bool {
	return c.Kind != "" && (c.Code != "" || len(c.Electives) > 0 || c.Name != "")
}

func (c *Cell) IsContinuation() bool {
	return c.Kind != "" && !c.IsSpanHead()
}

func (c *Cell) IsBasket() bool { return len(c.Electives) > 0 }

// SectionTimetable is the Day x Slot grid owned by one
// (department, semester, section).
type SectionTimetable struct {
	Department string
	Semester   int
	Section    string
	Grid       [][]Cell
}

func NewSectionTimetable(department string, semester int, section string, days, slots int) *SectionTimetable {
	grid := make([][]Cell, days)
	for d := range grid {
		grid[d] = make([]Cell, slots)
	}
	return &SectionTimetable{
		Department: department,
		Semester:   semester,
		Section:    section,
		Grid:       grid,
	}
}

func (t *SectionTimetable) Cell(day, slot int) *Cell {
	return &t.Grid[day][slot]
}

// HasComponentConflict reports whether placing kind for code on day would
// violate the same-day rules: a course never holds two lectures on one day,
// and its lecture and tutorial never share a day. Basket cells carry no code
// and are ignored.
func (t *SectionTimetable) HasComponentConflict(day int, code string, kind ComponentKind) bool {
	if code == "" {
		return false
	}
	for s := range t.Grid[day] {
		cell := &t.Grid[day][s]
		if cell.IsEmpty() || cell.Code != code {
			continue
		}
		if kind == Lecture && cell.Kind == Lecture {
			return true
		}
		if (kind == Lecture && cell.Kind == Tutorial) || (kind == Tutorial && cell.Kind == Lecture) {
			return true
		}
	}
	return false
}

// SpanEnd returns the last slot index of the run starting at (day, start).
func (t *SectionTimetable) SpanEnd(day, start int) int {
	end := start
	for end+1 < len(t.Grid[day]) {
		next := &t.Grid[day][end+1]
		if !next.IsContinuation() || next.Kind != t.Grid[day][start].Kind {
			break
		}
		end++
	}
	return end
}
