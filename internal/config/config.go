package config

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/acadgrid/TimetableGen/pkg/model"
)

// Config is the full run configuration: the weekly grid, break windows,
// standard session lengths, placement budgets, and the section layout rules.
// Every field has a compiled-in default; a missing or broken config file is
// never fatal.
type Config struct {
	Days      []string
	TimeSlots [][2]string

	LectureMin   int
	LabMin       int
	TutorialMin  int
	SelfStudyMin int

	MorningBreakStart         string
	MorningBreakEnd           string
	LunchBreakStart           string
	LunchBreakEnd             string
	LectureTutorialBreakStart string
	LectureTutorialBreakEnd   string

	// MinFacultyGapMin is the minimum distance in minutes between the start
	// times of two same-day bookings of one faculty member.
	MinFacultyGapMin int

	Budgets Budgets

	// TwoSectionDepartment runs two parallel sections (A and B) for the
	// listed semesters; everything else gets a single section A.
	TwoSectionDepartment string
	TwoSectionSemesters  []int

	// BasketDepartments participate in every shared elective basket slot.
	BasketDepartments []string
	BasketLectures    int
	BasketTutorials   int
	BasketSemesters   []int

	LogLevel  string
	LogFormat string
}

// Budgets bounds the randomized placement attempts per component kind.
type Budgets struct {
	Lecture   int
	Tutorial  int
	Lab       int
	SelfStudy int
	Basket    int
}

// Default returns the built-in configuration matching the institute's
// standard week.
func Default() *Config {
	return &Config{
		Days:         []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		LectureMin:   90,
		LabMin:       120,
		TutorialMin:  60,
		SelfStudyMin: 60,
		TimeSlots: [][2]string{
			{"07:30", "09:00"},
			{"09:00", "09:30"},
			{"09:30", "10:00"},
			{"10:00", "10:30"},
			{"10:30", "10:45"},
			{"10:45", "11:00"},
			{"11:00", "11:30"},
			{"11:30", "12:00"},
			{"12:00", "12:15"},
			{"12:15", "12:30"},
			{"12:30", "13:00"},
			{"13:00", "13:30"},
			{"13:30", "14:00"},
			{"14:00", "14:30"},
			{"14:30", "15:00"},
			{"15:00", "15:30"},
			{"15:30", "15:40"},
			{"15:40", "16:00"},
			{"16:00", "16:30"},
			{"16:30", "17:00"},
			{"17:00", "17:30"},
			{"17:30", "18:00"},
			{"18:00", "18:30"},
			{"18:30", "23:59"},
		},
		MorningBreakStart:         "10:30",
		MorningBreakEnd:           "10:45",
		LunchBreakStart:           "13:00",
		LunchBreakEnd:             "13:45",
		LectureTutorialBreakStart: "15:30",
		LectureTutorialBreakEnd:   "15:40",
		MinFacultyGapMin:          180,
		Budgets: Budgets{
			Lecture:   800,
			Tutorial:  600,
			Lab:       800,
			SelfStudy: 400,
			Basket:    2000,
		},
		TwoSectionDepartment: "CSE",
		TwoSectionSemesters:  []int{1, 3, 5},
		BasketDepartments:    []string{"CSE", "DSAI", "ECE"},
		BasketLectures:       2,
		BasketTutorials:      1,
		BasketSemesters:      []int{1, 3, 5, 7},
		LogLevel:             "info",
		LogFormat:            "console",
	}
}

// Load reads config.json from dir, overlaying the defaults. Any read or
// parse failure falls back to the defaults so a run always starts.
func Load(dir string, log *zap.Logger) *Config {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		log.Info("using default configuration", zap.Error(err))
		return cfg
	}

	if days := v.GetStringSlice("days"); len(days) > 0 {
		cfg.Days = days
	}
	if slots := v.Get("TIME_SLOTS"); slots != nil {
		if parsed := parseSlotPairs(slots); len(parsed) > 0 {
			cfg.TimeSlots = parsed
		}
	}
	overlayInt(v, "LECTURE_MIN", &cfg.LectureMin)
	overlayInt(v, "LAB_MIN", &cfg.LabMin)
	overlayInt(v, "TUTORIAL_MIN", &cfg.TutorialMin)
	overlayInt(v, "SELF_STUDY_MIN", &cfg.SelfStudyMin)
	overlayString(v, "MORNING_BREAK_START", &cfg.MorningBreakStart)
	overlayString(v, "MORNING_BREAK_END", &cfg.MorningBreakEnd)
	overlayString(v, "LUNCH_BREAK_START", &cfg.LunchBreakStart)
	overlayString(v, "LUNCH_BREAK_END", &cfg.LunchBreakEnd)
	overlayString(v, "LECTURE_TUTORIAL_BREAK_START", &cfg.LectureTutorialBreakStart)
	overlayString(v, "LECTURE_TUTORIAL_BREAK_END", &cfg.LectureTutorialBreakEnd)
	overlayString(v, "LOG_LEVEL", &cfg.LogLevel)
	overlayString(v, "LOG_FORMAT", &cfg.LogFormat)

	log.Info("loaded configuration", zap.String("path", v.ConfigFileUsed()))
	return cfg
}

func overlayInt(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		if n := v.GetInt(key); n > 0 {
			*dst = n
		}
	}
}

func overlayString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
}

// parseSlotPairs accepts the JSON shape [["07:30","09:00"], ...], skipping
// malformed entries.
func parseSlotPairs(raw interface{}) [][2]string {
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	var out [][2]string
	for _, item := range list {
		pair, ok := item.([]interface{})
		if !ok || len(pair) != 2 {
			continue
		}
		start, ok1 := pair[0].(string)
		end, ok2 := pair[1].(string)
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, [2]string{start, end})
	}
	return out
}

// Calendar materializes the configured grid. Unparsable break boundaries
// silently keep their defaults, matching the tolerant parse of the rest of
// the file.
func (c *Config) Calendar() *model.Calendar {
	breaks := model.BreakWindows{
		Morning:         window(c.MorningBreakStart, c.MorningBreakEnd, "10:30", "10:45"),
		Lunch:           window(c.LunchBreakStart, c.LunchBreakEnd, "13:00", "13:45"),
		LectureTutorial: window(c.LectureTutorialBreakStart, c.LectureTutorialBreakEnd, "15:30", "15:40"),
	}
	return model.NewCalendar(c.Days, c.TimeSlots, breaks)
}

func (c *Config) Durations() model.Durations {
	return model.Durations{
		Lecture:   c.LectureMin,
		Lab:       c.LabMin,
		Tutorial:  c.TutorialMin,
		SelfStudy: c.SelfStudyMin,
	}
}

// Sections returns the section keys for a department and semester.
func (c *Config) Sections(department string, semester int) []string {
	if department == c.TwoSectionDepartment {
		for _, s := range c.TwoSectionSemesters {
			if s == semester {
				return []string{"A", "B"}
			}
		}
	}
	return []string{"A"}
}

func window(start, end, defStart, defEnd string) model.Window {
	s, err := model.ParseClock(start)
	if err != nil {
		s, _ = model.ParseClock(defStart)
	}
	e, err := model.ParseClock(end)
	if err != nil {
		e, _ = model.ParseClock(defEnd)
	}
	return model.Window{Start: s, End: e}
}
