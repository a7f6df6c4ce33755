package scheduler

import (
	"fmt"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/acadgrid/TimetableGen/internal/config"
	"github.com/acadgrid/TimetableGen/pkg/model"
)

// claimedRun is a (day, slot-run) already owned by a basket in a semester,
// kept so later baskets can avoid overlapping or touching it.
type claimedRun struct {
	label string
	day   int
	slots []int
	rooms []string
}

// ElectiveOccurrence is one placed basket meeting, reported for the
// cross-department elective sheet.
type ElectiveOccurrence struct {
	Semester    int
	Basket      string
	Kind        model.ComponentKind
	Day         int
	Slots       []int
	Departments []string
	Options     []model.ElectiveMeeting
}

// Result is everything one scheduling pass hands to reporting.
type Result struct {
	Departments []string
	Semesters   map[string][]int
	Timetables  map[string]map[int]map[string]*model.SectionTimetable
	Unscheduled []*model.UnscheduledRecord
	Electives   []ElectiveOccurrence
	Occupancy   *model.Tracker
	Placed      int
}

// SectionTimetables flattens the timetable map in a deterministic order:
// department first-seen order, semesters ascending, sections alphabetical.
func (r *Result) SectionTimetables() []*model.SectionTimetable {
	var out []*model.SectionTimetable
	for _, dept := range r.Departments {
		for _, sem := range r.Semesters[dept] {
			sections := make([]string, 0, len(r.Timetables[dept][sem]))
			for key := range r.Timetables[dept][sem] {
				sections = append(sections, key)
			}
			sort.Strings(sections)
			for _, key := range sections {
				out = append(out, r.Timetables[dept][sem][key])
			}
		}
	}
	return out
}

// Engine owns all mutable scheduling state for a single run: the occupancy
// tracker, the per-section timetables, the stable course-to-room bindings,
// and the basket runs claimed so far. Nothing survives between runs.
type Engine struct {
	cfg       *config.Config
	cal       *model.Calendar
	pool      *model.RoomPool
	occ       *model.Tracker
	rng       *rand.Rand
	log       *zap.Logger
	ledger    *model.Ledger
	durations model.Durations

	courseRooms map[string]string
	basketRuns  map[int][]claimedRun
	timetables  map[string]map[int]map[string]*model.SectionTimetable
	departments []string
	semesters   map[string][]int
	electives   []ElectiveOccurrence
	placed      int
}

func New(cfg *config.Config, cal *model.Calendar, pool *model.RoomPool, rng *rand.Rand, log *zap.Logger) *Engine {
	return &Engine{
		cfg:         cfg,
		cal:         cal,
		pool:        pool,
		occ:         model.NewTracker(len(cal.Days)),
		rng:         rng,
		log:         log,
		ledger:      model.NewLedger(),
		durations:   cfg.Durations(),
		courseRooms: make(map[string]string),
		basketRuns:  make(map[int][]claimedRun),
		timetables:  make(map[string]map[int]map[string]*model.SectionTimetable),
		semesters:   make(map[string][]int),
	}
}

// Run fills every section timetable: baskets first so the shared elective
// slots are reserved, then cross-department auditorium courses, then the
// regular per-course components. Always returns a best-effort result.
func (e *Engine) Run(courses []*model.Course, baskets []*model.BasketGroup) *Result {
	e.initTimetables(courses)

	bySemester := make(map[int][]*model.BasketGroup)
	for _, g := range baskets {
		bySemester[g.Semester] = append(bySemester[g.Semester], g)
	}
	for _, sem := range e.cfg.BasketSemesters {
		if groups := bySemester[sem]; len(groups) > 0 {
			e.log.Info("scheduling basket slots", zap.Int("semester", sem), zap.Int("baskets", len(groups)))
			e.scheduleBaskets(groups)
		}
	}

	e.scheduleAuditoriumCourses(courses)

	for _, dept := range e.departments {
		for _, sem := range e.semesters[dept] {
			queue := e.courseQueue(courses, dept, sem, len(bySemester[sem]) > 0)
			for _, section := range e.cfg.Sections(dept, sem) {
				tt := e.timetables[dept][sem][section]
				for _, course := range queue {
					e.scheduleCourse(tt, course, section)
				}
			}
		}
	}

	e.log.Info("scheduling pass finished",
		zap.Int("placed", e.placed),
		zap.Int("unscheduled", e.ledger.Len()))

	return &Result{
		Departments: e.departments,
		Semesters:   e.semesters,
		Timetables:  e.timetables,
		Unscheduled: e.ledger.Records(),
		Electives:   e.electives,
		Occupancy:   e.occ,
		Placed:      e.placed,
	}
}

// initTimetables creates the empty grid for every department, semester and
// section seen in the course list. Departments keep first-seen order.
func (e *Engine) initTimetables(courses []*model.Course) {
	for _, c := range courses {
		if _, ok := e.timetables[c.Department]; !ok {
			e.timetables[c.Department] = make(map[int]map[string]*model.SectionTimetable)
			e.departments = append(e.departments, c.Department)
		}
		if _, ok := e.timetables[c.Department][c.Semester]; !ok {
			e.timetables[c.Department][c.Semester] = make(map[string]*model.SectionTimetable)
			e.semesters[c.Department] = append(e.semesters[c.Department], c.Semester)
			for _, section := range e.cfg.Sections(c.Department, c.Semester) {
				e.timetables[c.Department][c.Semester][section] =
					model.NewSectionTimetable(c.Department, c.Semester, section, len(e.cal.Days), len(e.cal.Slots))
			}
		}
	}
	for _, sems := range e.semesters {
		sort.Ints(sems)
	}
}

// courseQueue selects and orders the courses to place for one department
// and semester: skip-flagged and auditorium courses are excluded, electives
// are dropped entirely when the semester has basket slots, and the rest run
// electives first, then lab courses while computer labs are still open,
// then heaviest contact load first.
func (e *Engine) courseQueue(courses []*model.Course, dept string, sem int, basketSemester bool) []*model.Course {
	var queue []*model.Course
	for _, c := range courses {
		if c.Department != dept || c.Semester != sem {
			continue
		}
		if c.Skip || c.Auditorium {
			continue
		}
		if basketSemester && c.IsElective() {
			continue
		}
		queue = append(queue, c)
	}
	sort.SliceStable(queue, func(i, j int) bool {
		ei, ej := queue[i].IsElective(), queue[j].IsElective()
		if ei != ej {
			return ei
		}
		li, lj := queue[i].P > 0, queue[j].P > 0
		if li != lj {
			return li
		}
		return queue[i].ContactLoad() > queue[j].ContactLoad()
	})
	return queue
}

// scheduleCourse places every required session of one course into tt,
// recording anything that cannot be placed.
func (e *Engine) scheduleCourse(tt *model.SectionTimetable, course *model.Course, section string) {
	faculty := course.SelectFaculty(section)
	sessions := course.RequiredSessions(e.durations)

	if len(e.pool.ByType(course.RoomType())) == 0 {
		reason := fmt.Sprintf("no %s rooms available", course.RoomType())
		for _, kind := range requiredKinds(sessions) {
			e.ledger.Record(course.Department, course.Semester, course.Code, course.Name, faculty, kind, section, reason)
		}
		return
	}

	for i := 0; i < sessions.Lectures; i++ {
		if e.placeComponent(tt, course, faculty, model.Lecture, e.durations.Lecture, e.cfg.Budgets.Lecture) {
			e.placed++
		} else {
			e.ledger.Record(course.Department, course.Semester, course.Code, course.Name, faculty, model.Lecture, section, "attempt limit exceeded")
		}
	}
	for i := 0; i < sessions.Tutorials; i++ {
		if e.placeComponent(tt, course, faculty, model.Tutorial, e.durations.Tutorial, e.cfg.Budgets.Tutorial) {
			e.placed++
		} else {
			e.ledger.Record(course.Department, course.Semester, course.Code, course.Name, faculty, model.Tutorial, section, "no slot available")
		}
	}
	for i := 0; i < sessions.Labs; i++ {
		if e.placeComponent(tt, course, faculty, model.Lab, sessions.LabMinutes, e.cfg.Budgets.Lab) {
			e.placed++
		} else {
			e.ledger.Record(course.Department, course.Semester, course.Code, course.Name, faculty, model.Lab, section, "lab not scheduled")
		}
	}
	for i := 0; i < sessions.SelfStudy; i++ {
		if e.placeComponent(tt, course, faculty, model.SelfStudy, e.durations.SelfStudy, e.cfg.Budgets.SelfStudy) {
			e.placed++
		} else {
			e.ledger.Record(course.Department, course.Semester, course.Code, course.Name, faculty, model.SelfStudy, section, "self-study not scheduled")
		}
	}
}

func requiredKinds(s model.Sessions) []model.ComponentKind {
	var kinds []model.ComponentKind
	if s.Lectures > 0 {
		kinds = append(kinds, model.Lecture)
	}
	if s.Tutorials > 0 {
		kinds = append(kinds, model.Tutorial)
	}
	if s.Labs > 0 {
		kinds = append(kinds, model.Lab)
	}
	if s.SelfStudy > 0 {
		kinds = append(kinds, model.SelfStudy)
	}
	return kinds
}

// timetablesFor returns the section timetables of every listed department
// that actually runs the given semester.
func (e *Engine) timetablesFor(departments []string, semester int) []*model.SectionTimetable {
	var out []*model.SectionTimetable
	for _, dept := range departments {
		sems, ok := e.timetables[dept]
		if !ok {
			continue
		}
		sections, ok := sems[semester]
		if !ok {
			continue
		}
		keys := make([]string, 0, len(sections))
		for k := range sections {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, sections[k])
		}
	}
	return out
}
