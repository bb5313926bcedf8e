package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/lib/pq"

	"studentportal/internal/auth"
	"studentportal/internal/config"
	"studentportal/internal/course"
	"studentportal/internal/email"
	"studentportal/internal/server"
)

func main() {
	demo := flag.Bool("demo", false, "run against an in-memory store seeded with sample courses")
	flag.Parse()

	cfg := config.Load()

	var authRepo auth.Repository
	var courseRepo course.Repository

	if *demo {
		authRepo = auth.NewMemoryRepository()
		courseRepo = course.NewMemoryRepository()
		seedCourses(courseRepo)
		log.Println("Running in demo mode: data is not persisted.")
	} else {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("error opening database: %v\n", err)
		}
		if err := db.Ping(); err != nil {
			log.Fatalf("error connecting to database: %v\n", err)
		}
		authRepo = auth.NewPostgresRepository(db)
		courseRepo = course.NewPostgresRepository(db)
	}

	authService := auth.NewService(authRepo)
	courseService := course.NewService(courseRepo, email.NewSender(cfg))

	server.Start(authService, courseService)
}

func seedCourses(repo course.Repository) {
	seed := []struct{ name, description string }{
		{"Introduction to Databases", "Relational modeling, SQL and transactions."},
		{"Operating Systems", "Processes, scheduling, memory and file systems."},
		{"Distributed Systems", "Consistency, replication and fault tolerance."},
	}
	for _, c := range seed {
		if _, err := repo.CreateCourse(c.name, c.description); err != nil {
			log.Printf("failed to seed course %q: %v\n", c.name, err)
		}
	}
}
