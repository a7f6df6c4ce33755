package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/acadgrid/TimetableGen/pkg/model"
)

func setDelimiter(delim rune) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		r.LazyQuotes = true
		return r
	})
}

// LoadCourses reads the combined course list and derives the scheduling
// flags: Skip for rows whose Schedule column opts out, Auditorium for rows
// marked in the 240 column.
func LoadCourses(path string, delim rune) ([]*model.Course, error) {
	setDelimiter(delim)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open courses file: %w", err)
	}
	defer f.Close()

	var courses []*model.Course
	if err := gocsv.UnmarshalFile(f, &courses); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for _, c := range courses {
		c.Code = strings.TrimSpace(c.Code)
		c.Department = strings.TrimSpace(c.Department)
		c.Skip = !scheduleFlag(c.ScheduleSTR)
		c.Auditorium = strings.EqualFold(strings.TrimSpace(c.SeaterSTR), "yes")
	}
	return courses, nil
}

// scheduleFlag interprets the Schedule column: anything other than an
// explicit opt-out schedules the course.
func scheduleFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "no", "n", "false", "0":
		return false
	}
	return true
}

// LoadRooms reads the room inventory and buckets it into the pools the
// allocator draws from.
func LoadRooms(path string, delim rune) (*model.RoomPool, []*model.Room, error) {
	setDelimiter(delim)

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open rooms file: %w", err)
	}
	defer f.Close()

	var rooms []*model.Room
	if err := gocsv.UnmarshalFile(f, &rooms); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, r := range rooms {
		r.Normalize()
	}
	return model.NewRoomPool(rooms), rooms, nil
}

// electiveCSV is the raw shape of one basket row. The list columns hold
// comma separated values aligned by position.
type electiveCSV struct {
	Semester  string `csv:"Semester"`
	Electives string `csv:"Electives"`
	Faculty   string `csv:"Faculty"`
	Counts    string `csv:"Count"`
}

// LoadBaskets reads the elective basket sheet. Each row becomes one
// BasketGroup shared by the given departments; the Semester column carries
// both the semester ordinal and an optional basket tag, "5th(b1)" style.
func LoadBaskets(path string, delim rune, departments []string, lectures, tutorials int) ([]*model.BasketGroup, error) {
	setDelimiter(delim)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open electives file: %w", err)
	}
	defer f.Close()

	var rows []*electiveCSV
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var groups []*model.BasketGroup
	for _, row := range rows {
		semester, label, err := parseBasketTag(row.Semester)
		if err != nil {
			return nil, err
		}
		electives := splitList(row.Electives)
		if len(electives) == 0 {
			continue
		}
		g := &model.BasketGroup{
			Semester:    semester,
			Label:       label,
			Electives:   electives,
			Faculty:     splitList(row.Faculty),
			Counts:      parseCounts(splitList(row.Counts), len(electives)),
			Departments: departments,
			Lectures:    lectures,
			Tutorials:   tutorials,
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// parseBasketTag splits "5th(b2)" into semester 5 and label "ELECTIVE-B2".
// Rows without a tag share the plain "ELECTIVE" label.
func parseBasketTag(s string) (int, string, error) {
	s = strings.TrimSpace(s)
	tag := ""
	if open := strings.Index(s, "("); open >= 0 {
		if end := strings.Index(s, ")"); end > open {
			tag = strings.ToUpper(strings.TrimSpace(s[open+1 : end]))
		}
		s = s[:open]
	}
	digits := strings.TrimRight(strings.TrimSpace(s), "stndrh")
	semester, err := strconv.Atoi(digits)
	if err != nil {
		return 0, "", fmt.Errorf("bad semester tag %q", s)
	}
	label := "ELECTIVE"
	if tag != "" {
		label += "-" + tag
	}
	return semester, label, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseCounts aligns the declared enrollments to the elective list,
// defaulting short or malformed entries to the standard 60.
func parseCounts(raw []string, n int) []int {
	counts := make([]int, n)
	for i := range counts {
		counts[i] = 60
		if i < len(raw) {
			if v, err := strconv.Atoi(strings.TrimSpace(raw[i])); err == nil && v > 0 {
				counts[i] = v
			}
		}
	}
	return counts
}
