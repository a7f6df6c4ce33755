package model

import (
	"math"
	"strings"
)

// ComponentKind identifies one schedulable unit of a course.
type ComponentKind string

const (
	Lecture   ComponentKind = "LEC"
	Tutorial  ComponentKind = "TUT"
	Lab       ComponentKind = "LAB"
	SelfStudy ComponentKind = "SS"
)

// Course is one row of the combined course list. L/T/P/S are weekly contact
// hours for lectures, tutorials, lab work and self-study.
type Course struct {
	Department  string `csv:"Department"`
	Semester    int    `csv:"Semester"`
	Code        string `csv:"Course Code"`
	Name        string `csv:"Course Name"`
	Faculty     string `csv:"Faculty"`
	L           int    `csv:"L"`
	T           int    `csv:"T"`
	P           int    `csv:"P"`
	S           int    `csv:"S"`
	ScheduleSTR string `csv:"Schedule"`
	SeaterSTR   string `csv:"240"`

	Auditorium bool `csv:"-"`
	Skip       bool `csv:"-"`
}

// Durations holds the standard session lengths in minutes.
type Durations struct {
	Lecture   int
	Lab       int
	Tutorial  int
	SelfStudy int
}

// Sessions is the per-kind session requirement derived from L/T/P/S.
type Sessions struct {
	Lectures   int
	Tutorials  int
	Labs       int
	SelfStudy  int
	LabMinutes int
}

// RequiredSessions converts contact hours into session counts. Lecture and
// tutorial counts round up against the standard session length; lab work is
// one block of P hours; self-study blocks follow S directly.
func (c *Course) RequiredSessions(d Durations) Sessions {
	var s Sessions
	if c.L > 0 && d.Lecture > 0 {
		s.Lectures = int(math.Ceil(float64(c.L) * 60 / float64(d.Lecture)))
	}
	if c.T > 0 && d.Tutorial > 0 {
		s.Tutorials = int(math.Ceil(float64(c.T) * 60 / float64(d.Tutorial)))
	}
	if c.P > 0 {
		s.Labs = 1
		s.LabMinutes = c.P * 60
	}
	if c.S > 0 && d.SelfStudy > 0 {
		s.SelfStudy = int(math.Ceil(float64(c.S) * 60 / float64(d.SelfStudy)))
	}
	return s
}

// RoomType returns the room requirement: a computer lab whenever the course
// has lab hours, a lecture room otherwise.
func (c *Course) RoomType() RoomType {
	if c.P > 0 {
		return RoomComputerLab
	}
	return RoomLecture
}

// SelectFaculty resolves the faculty name for a section. Names joined with
// '&' are positional: section A gets the first, B the second, and any other
// section falls back to the first. Other separators keep the first name.
func (c *Course) SelectFaculty(section string) string {
	s := strings.TrimSpace(c.Faculty)
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "none") {
		return "TBD"
	}
	if strings.Contains(s, "&") {
		names := splitTrim(s, "&")
		if len(names) >= 2 {
			switch strings.ToUpper(section) {
			case "A":
				return names[0]
			case "B":
				return names[1]
			default:
				return names[0]
			}
		}
		if len(names) == 1 {
			return names[0]
		}
		return "TBD"
	}
	for _, sep := range []string{"/", ",", ";"} {
		if strings.Contains(s, sep) {
			return strings.TrimSpace(strings.SplitN(s, sep, 2)[0])
		}
	}
	return s
}

// IsElective matches the loose naming convention used in course sheets:
// "elective" anywhere in the name or code, or an OE/PE token.
func (c *Course) IsElective() bool {
	name := strings.ToLower(c.Name)
	code := strings.ToLower(c.Code)
	if strings.Contains(name, "elective") || strings.Contains(code, "elective") {
		return true
	}
	for _, field := range []string{name, code} {
		for _, token := range strings.FieldsFunc(field, func(r rune) bool {
			return r == ' ' || r == '-' || r == '_' || r == '(' || r == ')'
		}) {
			if token == "oe" || token == "pe" {
				return true
			}
		}
	}
	return false
}

// ContactLoad orders courses for placement; heavier courses go first.
func (c *Course) ContactLoad() int {
	return c.L + c.T + c.P
}

func splitTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
