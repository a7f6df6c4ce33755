package main

import (
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acadgrid/TimetableGen/internal/config"
	"github.com/acadgrid/TimetableGen/internal/csvio"
	"github.com/acadgrid/TimetableGen/internal/scheduler"
	"github.com/acadgrid/TimetableGen/pkg/model"
)

const (
	uploadDir    = "db"
	generatedDir = "db/generated"
	listenAddr   = ":3001"
)

func main() {
	cfg := config.Load(".", zap.NewExample())
	log := cfg.Logger()
	defer log.Sync()

	os.MkdirAll(generatedDir, os.ModePerm)

	r := gin.Default()

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/schedule", func(ctx *gin.Context) {
		files, err := os.ReadDir(generatedDir)
		if err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		}

		var allIDs []string = []string{}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			id, ok := strings.CutSuffix(file.Name(), "-timetables.csv")
			if ok {
				allIDs = append(allIDs, id)
			}
		}

		ctx.JSON(http.StatusOK, gin.H{
			"scheduleIds": allIDs,
		})
	})

	r.GET("/schedule/:id", func(ctx *gin.Context) {
		serveGenerated(ctx, ctx.Param("id")+"-timetables.csv")
	})

	r.GET("/schedule/:id/unscheduled", func(ctx *gin.Context) {
		serveGenerated(ctx, ctx.Param("id")+"-unscheduled.csv")
	})

	r.GET("/schedule/:id/electives", func(ctx *gin.Context) {
		serveGenerated(ctx, ctx.Param("id")+"-electives.csv")
	})

	r.POST("/schedule", func(ctx *gin.Context) {
		form, err := ctx.MultipartForm()
		if err != nil {
			ctx.String(http.StatusBadRequest, err.Error())
			return
		}

		required := []string{"courses", "rooms"}
		for _, name := range required {
			if len(form.File[name]) == 0 {
				ctx.String(http.StatusBadRequest, "missing %s file", name)
				return
			}
		}

		id := uuid.NewString()
		paths := make(map[string]string)
		for _, name := range []string{"courses", "rooms", "electives"} {
			if len(form.File[name]) == 0 {
				continue
			}
			dst := filepath.Join(uploadDir, id+"-"+name+".csv")
			if err := ctx.SaveUploadedFile(form.File[name][0], dst); err != nil {
				ctx.String(http.StatusInternalServerError, err.Error())
				return
			}
			paths[name] = dst
		}

		if err := generate(cfg, log, id, paths); err != nil {
			log.Error("schedule generation failed", zap.String("id", id), zap.Error(err))
			ctx.String(http.StatusUnprocessableEntity, err.Error())
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"id": id,
		})
	})

	log.Info("listening", zap.String("addr", listenAddr))
	r.Run(listenAddr)
}

func serveGenerated(ctx *gin.Context, name string) {
	content, err := os.ReadFile(filepath.Join(generatedDir, name))
	if err != nil {
		ctx.Status(http.StatusNotFound)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"data": string(content),
	})
}

// generate runs one scheduling pass over the uploaded files and writes the
// reports under the run id.
func generate(cfg *config.Config, log *zap.Logger, id string, paths map[string]string) error {
	courses, err := csvio.LoadCourses(paths["courses"], ',')
	if err != nil {
		return err
	}
	pool, rooms, err := csvio.LoadRooms(paths["rooms"], ',')
	if err != nil {
		return err
	}
	var baskets []*model.BasketGroup
	if electivesPath, ok := paths["electives"]; ok {
		baskets, err = csvio.LoadBaskets(electivesPath, ',', cfg.BasketDepartments, cfg.BasketLectures, cfg.BasketTutorials)
		if err != nil {
			return err
		}
	}

	cal := cfg.Calendar()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine := scheduler.New(cfg, cal, pool, rng, log)
	res := engine.Run(courses, baskets)

	if valid, report := scheduler.Validate(res, cal, cfg.MinFacultyGapMin); !valid {
		log.Warn("generated schedule has rule violations", zap.String("id", id), zap.String("report", report))
	}

	if _, err := csvio.ExportTimetables(res, cal, filepath.Join(generatedDir, id+"-timetables.csv")); err != nil {
		return err
	}
	if _, err := csvio.ExportUnscheduled(res.Unscheduled, filepath.Join(generatedDir, id+"-unscheduled.csv")); err != nil {
		return err
	}
	if _, err := csvio.ExportElectives(res, cal, filepath.Join(generatedDir, id+"-electives.csv")); err != nil {
		return err
	}
	_, err = csvio.ExportFreeRooms(res, cal, rooms, filepath.Join(generatedDir, id+"-free-rooms.csv"))
	return err
}
