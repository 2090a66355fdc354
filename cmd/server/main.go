// cmd/server/main.go
// Entry point for the Rowdy Cup API server: load config, connect to
// Postgres, run migrations, start the WebSocket hub, and register routes.
package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/rowdycup/scoreboard/internal/config"
	"github.com/rowdycup/scoreboard/internal/database"
	"github.com/rowdycup/scoreboard/internal/handlers"
	"github.com/rowdycup/scoreboard/internal/middleware"
	"github.com/rowdycup/scoreboard/internal/websocket"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Running pending migrations on startup keeps the schema in sync with
	// the binary being deployed.
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// The hub fans live score updates out to everyone watching a match.
	// Handlers broadcast into it after each write.
	hub := websocket.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName: "Rowdy Cup API",
	})

	// --- Global middleware ---
	app.Use(logger.New())
	// Allow any origin in development; lock down to the app's domain in
	// production.
	app.Use(cors.New())

	// --- Public routes ---
	app.Get("/health", handlers.HealthCheck)
	app.Post("/api/v1/auth/login", handlers.Login(cfg, db))

	// --- Authenticated API routes ---
	api := app.Group("/api/v1", middleware.Auth(cfg, db))
	admin := middleware.RequireRole("admin")

	// Users (admin manages the couple dozen accounts on the roster)
	api.Post("/users", admin, handlers.CreateUser(db))

	// Players
	api.Get("/players", handlers.GetPlayers(db))
	api.Post("/players", admin, handlers.CreatePlayer(db))
	api.Put("/players/:id", admin, handlers.UpdatePlayer(db))

	// Courses
	api.Get("/courses", handlers.GetCourses(db))
	api.Get("/courses/:id", handlers.GetCourse(db))
	api.Post("/courses", admin, handlers.CreateCourse(db))
	api.Put("/courses/:id/holes", admin, handlers.UpdateCourseHoles(db))

	// Tournaments
	api.Get("/tournaments", handlers.GetTournaments(db))
	api.Get("/tournaments/:id", handlers.GetTournament(db))
	api.Post("/tournaments", admin, handlers.CreateTournament(db))
	api.Get("/tournaments/:id/standings", handlers.GetTournamentStandings(db))

	// Rounds
	api.Get("/tournaments/:id/rounds", handlers.GetRounds(db))
	api.Post("/tournaments/:id/rounds", admin, handlers.CreateRound(db))
	api.Get("/rounds/:id/standings", handlers.GetRoundStandings(db))
	api.Get("/rounds/:id/handicaps", handlers.GetRoundHandicaps(db))
	api.Put("/rounds/:id/handicaps/:playerId", admin, handlers.SetRoundHandicap(db))

	// Matches
	api.Get("/rounds/:id/matches", handlers.GetMatches(db))
	api.Post("/rounds/:id/matches", admin, handlers.CreateMatch(db))
	api.Get("/matches/:id", handlers.GetMatch(db))
	api.Get("/matches/:id/state", handlers.GetMatchState(db))
	api.Post("/matches/:id/lock", admin, handlers.LockMatch(db, hub))
	api.Post("/matches/:id/unlock", admin, handlers.UnlockMatch(db, hub))

	// Scores — the one write path that changes derived state
	api.Put("/matches/:id/scores", handlers.SubmitScore(db, hub))

	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
