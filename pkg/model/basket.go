package model

// BasketGroup is a named set of mutually-exclusive elective options shared
// across departments. One basket occurrence is one (day, slot-run) applied
// identically to every participating section timetable; each option inside
// it gets its own room and faculty.
type BasketGroup struct {
	Semester     int
	Label        string
	Electives    []string
	Faculty      []string
	Counts       []int
	RoomsPerSlot int
	Departments  []string
	Lectures     int
	Tutorials    int
}

// FacultyFor returns the faculty aligned to option i, or "TBD" past the end
// of the declared list.
func (b *BasketGroup) FacultyFor(i int) string {
	if i >= 0 && i < len(b.Faculty) {
		return b.Faculty[i]
	}
	return "TBD"
}

// CountFor returns the declared enrollment for an option code, defaulting
// to the standard 60-seat section.
func (b *BasketGroup) CountFor(code string) int {
	for i, e := range b.Electives {
		if e == code {
			if i < len(b.Counts) {
				return b.Counts[i]
			}
			break
		}
	}
	return 60
}

// FacultyForCode returns the faculty positionally aligned to an option code.
func (b *BasketGroup) FacultyForCode(code string) string {
	for i, e := range b.Electives {
		if e == code {
			return b.FacultyFor(i)
		}
	}
	return "TBD"
}
