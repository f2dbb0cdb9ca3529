package main

import (
	"context"
	"flag"
	"os"

	"CourseHub/internal/config"
	"CourseHub/internal/models"
	"CourseHub/internal/storage/postgres"
	"CourseHub/pkg/logger"
)

type fixture struct {
	course  models.Course
	lessons []models.Lesson
}

var fixtures = []fixture{
	{
		course: models.Course{
			Title:           "Go Fundamentals",
			Category:        "BEGINNER",
			URL:             "go-fundamentals",
			IconURL:         "https://course-images.example.com/go-fundamentals.png",
			LongDescription: "Learn the Go language from the ground up: syntax, types, methods, interfaces and the standard toolchain.",
		},
		lessons: []models.Lesson{
			{Title: "Installing the toolchain", Duration: "4:17"},
			{Title: "Packages and imports", Duration: "6:41"},
			{Title: "Structs and methods", Duration: "9:32"},
			{Title: "Interfaces in practice", Duration: "12:08"},
		},
	},
	{
		course: models.Course{
			Title:           "Concurrency Deep Dive",
			Category:        "ADVANCED",
			URL:             "concurrency-deep-dive",
			IconURL:         "https://course-images.example.com/concurrency.png",
			LongDescription: "Goroutines, channels, the memory model and the patterns that keep concurrent programs correct.",
		},
		lessons: []models.Lesson{
			{Title: "Goroutines and the scheduler", Duration: "8:55"},
			{Title: "Channels as ownership transfer", Duration: "11:24"},
			{Title: "Cancellation with context", Duration: "7:48"},
		},
	},
	{
		course: models.Course{
			Title:           "Building REST Services",
			Category:        "INTERMEDIATE",
			URL:             "building-rest-services",
			IconURL:         "https://course-images.example.com/rest.png",
			LongDescription: "Design and ship production HTTP APIs: routing, middleware, validation, persistence and auth.",
		},
		lessons: []models.Lesson{
			{Title: "Routing and handlers", Duration: "10:02"},
			{Title: "Request validation", Duration: "6:19"},
			{Title: "Talking to PostgreSQL", Duration: "13:37"},
			{Title: "Stateless authentication", Duration: "9:50"},
			{Title: "Shipping with Docker", Duration: "5:44"},
		},
	},
}

func main() {
	wipe := flag.Bool("wipe", false, "delete existing courses and lessons before seeding")
	flag.Parse()

	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	ctx := context.Background()

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()
	log.Info("database connection established")

	if *wipe {
		// lessons first, the foreign key blocks the other order
		if _, err := pg.Pool.Exec(ctx, "DELETE FROM lessons"); err != nil {
			log.FatalErr("error wiping lessons", err)
		}
		if _, err := pg.Pool.Exec(ctx, "DELETE FROM courses"); err != nil {
			log.FatalErr("error wiping courses", err)
		}
		log.Info("existing catalog removed")
	}

	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	lessonRepo := postgres.NewLessonPostgres(pg.Pool)

	for _, f := range fixtures {
		course := f.course
		if err := courseRepo.NewCourse(ctx, &course); err != nil {
			log.FatalErr("error inserting course", err, "title", course.Title)
		}
		log.Info("inserted course", "title", course.Title, "seq_no", course.SeqNo)

		for _, l := range f.lessons {
			lesson := l
			lesson.CourseID = course.ID
			if err := lessonRepo.CreateLesson(ctx, &lesson); err != nil {
				log.FatalErr("error inserting lesson", err, "title", lesson.Title)
			}
			log.Info("inserted lesson", "title", lesson.Title, "seq_no", lesson.SeqNo)
		}
	}

	totalCourses, err := courseRepo.CountCourses(ctx)
	if err != nil {
		log.FatalErr("error counting courses", err)
	}
	totalLessons, err := lessonRepo.CountLessons(ctx)
	if err != nil {
		log.FatalErr("error counting lessons", err)
	}
	log.Info("database has been populated", "total_courses", totalCourses, "total_lessons", totalLessons)
	os.Exit(0)
}
