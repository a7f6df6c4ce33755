package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/acadgrid/TimetableGen/internal/config"
	"github.com/acadgrid/TimetableGen/internal/csvio"
	"github.com/acadgrid/TimetableGen/internal/scheduler"
)

func main() {
	var (
		configDir = flag.String("config", ".", "directory holding config.json")
		courses   = flag.String("courses", "data/combined.csv", "combined course list")
		rooms     = flag.String("rooms", "data/rooms.csv", "room inventory")
		electives = flag.String("electives", "data/electives.csv", "elective basket sheet")
		outDir    = flag.String("out", "out", "output directory")
		seed      = flag.Int64("seed", 0, "random seed, 0 picks one from the clock")
		delim     = flag.String("delim", ",", "CSV delimiter")
	)
	flag.Parse()

	cfg := config.Load(*configDir, zap.NewExample())
	log := cfg.Logger()
	defer log.Sync()

	sep := ','
	if *delim != "" {
		sep, _ = utf8.DecodeRuneInString(*delim)
	}

	courseList, err := csvio.LoadCourses(*courses, sep)
	if err != nil {
		log.Fatal("loading courses", zap.Error(err))
	}
	pool, roomList, err := csvio.LoadRooms(*rooms, sep)
	if err != nil {
		log.Fatal("loading rooms", zap.Error(err))
	}
	baskets, err := csvio.LoadBaskets(*electives, sep, cfg.BasketDepartments, cfg.BasketLectures, cfg.BasketTutorials)
	if err != nil {
		log.Warn("loading electives, continuing without baskets", zap.Error(err))
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}
	log.Info("starting run",
		zap.Int("courses", len(courseList)),
		zap.Int("rooms", len(roomList)),
		zap.Int("baskets", len(baskets)),
		zap.Int64("seed", runSeed))

	cal := cfg.Calendar()
	rng := rand.New(rand.NewSource(runSeed))
	engine := scheduler.New(cfg, cal, pool, rng, log)
	res := engine.Run(courseList, baskets)

	valid, report := scheduler.Validate(res, cal, cfg.MinFacultyGapMin)
	fmt.Print(report)
	if !valid {
		log.Warn("schedule has rule violations")
	}

	if err := os.MkdirAll(*outDir, os.ModePerm); err != nil {
		log.Fatal("creating output directory", zap.Error(err))
	}
	exports := []struct {
		name string
		run  func(path string) (string, error)
	}{
		{"timetables.csv", func(p string) (string, error) { return csvio.ExportTimetables(res, cal, p) }},
		{"unscheduled.csv", func(p string) (string, error) { return csvio.ExportUnscheduled(res.Unscheduled, p) }},
		{"electives.csv", func(p string) (string, error) { return csvio.ExportElectives(res, cal, p) }},
		{"free_rooms.csv", func(p string) (string, error) { return csvio.ExportFreeRooms(res, cal, roomList, p) }},
	}
	for _, e := range exports {
		path, err := e.run(filepath.Join(*outDir, e.name))
		if err != nil {
			log.Error("export failed", zap.String("file", e.name), zap.Error(err))
			continue
		}
		log.Info("exported", zap.String("path", path))
	}

	log.Info("done",
		zap.Int("placed", res.Placed),
		zap.Int("unscheduled", len(res.Unscheduled)),
		zap.Bool("valid", valid))
}
