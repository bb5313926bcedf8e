package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/cors"

	"studentportal/internal/auth"
	"studentportal/internal/config"
	"studentportal/internal/course"
)

func Routes(authService *auth.Service, courseService *course.Service) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.Logger, // Log API Request Calls
	)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler)
		auth.Routes(r, authService)
		course.Routes(r, courseService, authService)
	})

	return router
}

func Start(authService *auth.Service, courseService *course.Service) {
	if config.Config == nil {
		log.Panic("Missing or invalid configuration!")
	}

	router := Routes(authService, courseService)
	c := cors.New(cors.Options{
		AllowedOrigins:   config.Config.AllowedOrigins,
		AllowedHeaders:   []string{"Cookie", "Content-Type"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PATCH"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)
	log.Printf("Server is listening on port %v\n", config.Config.Port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", config.Config.Port), handler))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
