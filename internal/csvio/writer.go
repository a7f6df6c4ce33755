package csvio

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/acadgrid/TimetableGen/internal/scheduler"
	"github.com/acadgrid/TimetableGen/pkg/model"
)

// TimetableRow is one placed span of one section timetable.
type TimetableRow struct {
	Department string `csv:"Department"`
	Semester   int    `csv:"Semester"`
	Section    string `csv:"Section"`
	Day        string `csv:"Day"`
	Start      string `csv:"Start"`
	End        string `csv:"End"`
	Kind       string `csv:"Component"`
	Code       string `csv:"Course Code"`
	Name       string `csv:"Course Name"`
	Faculty    string `csv:"Faculty"`
	Rooms      string `csv:"Rooms"`
}

// UnscheduledRow is one course the engine could not fully place.
type UnscheduledRow struct {
	Department string `csv:"Department"`
	Semester   int    `csv:"Semester"`
	Code       string `csv:"Course Code"`
	Name       string `csv:"Course Name"`
	Faculty    string `csv:"Faculty"`
	Section    string `csv:"Section"`
	Components string `csv:"Components"`
	Reasons    string `csv:"Reasons"`
}

// ElectiveRow is one option of one placed basket run, for the shared
// elective sheet sent to departments.
type ElectiveRow struct {
	Semester int    `csv:"Semester"`
	Basket   string `csv:"Basket"`
	Kind     string `csv:"Component"`
	Day      string `csv:"Day"`
	Start    string `csv:"Start"`
	End      string `csv:"End"`
	Code     string `csv:"Course Code"`
	Room     string `csv:"Room"`
	Faculty  string `csv:"Faculty"`
	Count    int    `csv:"Count"`
}

// FreeRoomRow is one free (room, day, slot) after scheduling, for ad-hoc
// bookings.
type FreeRoomRow struct {
	Room  string `csv:"Room"`
	Day   string `csv:"Day"`
	Start string `csv:"Start"`
	End   string `csv:"End"`
}

func writeCSV(rows interface{}, path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		os.Remove(path)
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, os.ModePerm)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	if err := gocsv.MarshalFile(rows, out); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ExportTimetables writes every placed span of every section to path.
func ExportTimetables(res *scheduler.Result, cal *model.Calendar, path string) (string, error) {
	rows := formatTimetables(res, cal)
	return writeCSV(&rows, path)
}

// ExportTimetablesString renders the timetable sheet as CSV text.
func ExportTimetablesString(res *scheduler.Result, cal *model.Calendar) (string, error) {
	rows := formatTimetables(res, cal)
	return gocsv.MarshalString(&rows)
}

func formatTimetables(res *scheduler.Result, cal *model.Calendar) []*TimetableRow {
	var rows []*TimetableRow
	for _, tt := range res.SectionTimetables() {
		for day := range tt.Grid {
			for s := 0; s < len(tt.Grid[day]); {
				cell := tt.Cell(day, s)
				if !cell.IsSpanHead() {
					s++
					continue
				}
				end := spanEnd(tt, day, s)
				row := &TimetableRow{
					Department: tt.Department,
					Semester:   tt.Semester,
					Section:    tt.Section,
					Day:        cal.Days[day],
					Start:      cal.Slots[s].Start.String(),
					End:        cal.Slots[end].End.String(),
					Kind:       string(cell.Kind),
					Code:       cell.Code,
					Name:       cell.Name,
					Faculty:    cell.Faculty,
					Rooms:      cell.Room,
				}
				if len(cell.LabRooms) > 0 {
					row.Rooms = strings.Join(cell.LabRooms, " / ")
				}
				if cell.IsBasket() {
					codes := make([]string, 0, len(cell.Electives))
					basketRooms := make([]string, 0, len(cell.Electives))
					for _, m := range cell.Electives {
						codes = append(codes, m.Code)
						basketRooms = append(basketRooms, m.Room)
					}
					row.Code = strings.Join(codes, " / ")
					row.Rooms = strings.Join(basketRooms, " / ")
				}
				rows = append(rows, row)
				s = end + 1
			}
		}
	}
	return rows
}

// spanEnd finds the last slot of the run at (day, start). Basket cells
// repeat the descriptor, so their runs end where the descriptor changes.
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

// ExportUnscheduled writes the ledger of courses the engine gave up on.
func ExportUnscheduled(records []*model.UnscheduledRecord, path string) (string, error) {
	rows := formatUnscheduled(records)
	return writeCSV(&rows, path)
}

// ExportUnscheduledString renders the unscheduled ledger as CSV text.
func ExportUnscheduledString(records []*model.UnscheduledRecord) (string, error) {
	rows := formatUnscheduled(records)
	return gocsv.MarshalString(&rows)
}

func formatUnscheduled(records []*model.UnscheduledRecord) []*UnscheduledRow {
	var rows []*UnscheduledRow
	for _, r := range records {
		kinds := make([]string, 0, len(r.Kinds))
		for _, k := range r.Kinds {
			kinds = append(kinds, string(k))
		}
		rows = append(rows, &UnscheduledRow{
			Department: r.Department,
			Semester:   r.Semester,
			Code:       r.Code,
			Name:       r.Name,
			Faculty:    r.Faculty,
			Section:    r.Section,
			Components: strings.Join(kinds, " / "),
			Reasons:    strings.Join(r.Reasons, "; "),
		})
	}
	return rows
}

// ExportElectives writes one row per option of every placed basket run.
func ExportElectives(res *scheduler.Result, cal *model.Calendar, path string) (string, error) {
	rows := formatElectives(res, cal)
	return writeCSV(&rows, path)
}

func formatElectives(res *scheduler.Result, cal *model.Calendar) []*ElectiveRow {
	var rows []*ElectiveRow
	for _, occ := range res.Electives {
		start := occ.Slots[0]
		end := occ.Slots[len(occ.Slots)-1]
		for _, m := range occ.Options {
			rows = append(rows, &ElectiveRow{
				Semester: occ.Semester,
				Basket:   occ.Basket,
				Kind:     string(occ.Kind),
				Day:      cal.Days[occ.Day],
				Start:    cal.Slots[start].Start.String(),
				End:      cal.Slots[end].End.String(),
				Code:     m.Code,
				Room:     m.Room,
				Faculty:  m.Faculty,
				Count:    m.Count,
			})
		}
	}
	return rows
}

// ExportFreeRooms writes the slots every known room still has open after
// the scheduling pass.
func ExportFreeRooms(res *scheduler.Result, cal *model.Calendar, rooms []*model.Room, path string) (string, error) {
	var rows []*FreeRoomRow
	for _, r := range rooms {
		for day := range cal.Days {
			taken := res.Occupancy.RoomSlots(r.Number, day)
			for _, slot := range cal.Slots {
				busy := false
				for _, t := range taken {
					if t == slot.Index {
						busy = true
						break
					}
				}
				if busy {
					continue
				}
				rows = append(rows, &FreeRoomRow{
					Room:  r.Number,
					Day:   cal.Days[day],
					Start: slot.Start.String(),
					End:   slot.End.String(),
				})
			}
		}
	}
	return writeCSV(&rows, path)
}
