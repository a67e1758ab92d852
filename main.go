package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/pkg/errors"

	"webmatematica/config"
	authControllers "webmatematica/controllers/auth"
	courseControllers "webmatematica/controllers/course"
	errorLogController "webmatematica/controllers/errorLog"
	"webmatematica/database"
	"webmatematica/middleware"
	authRoutes "webmatematica/routers/authRoutes"
	courseRoutes "webmatematica/routers/courseRoutes"
	errorLogRoutes "webmatematica/routers/errorLogRoutes"
	"webmatematica/storage"
	"webmatematica/utils"
)

func main() {
	if err := run(config.LoadConfig()); err != nil {
		log.Fatal(err)
	}
}

// run wires the server and blocks until it stops. Cleanup registered here
// always runs before main exits.
func run(cfg *config.Config) error {
	db, err := database.ConnectDb(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to connect to the database")
	}
	log.Println("Connected to the database successfully!")

	fileStorage, err := storage.New(context.Background(), cfg)
	if err != nil {
		return errors.Wrap(err, "failed to initialize file storage")
	}

	errorLogger := utils.NewErrorLogger(db)

	pruner, err := utils.StartErrorLogPruner(db, cfg.ErrorLogPruneSchedule, cfg.ErrorLogRetentionDays)
	if err != nil {
		return errors.Wrap(err, "failed to start error log pruner")
	}
	defer func() {
		<-pruner.Stop().Done()
		log.Println("[ERROR-LOG-SCHEDULER] Error log pruner stopped")
	}()

	auth := middleware.NewAuth(cfg)
	oembed := utils.NewOEmbedClient(cfg.OEmbedURL, time.Duration(cfg.OEmbedTimeoutSeconds)*time.Second)

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app, auth, authControllers.NewAuthController(db, auth, cfg.SaltRound))
	errorLogRoutes.SetupErrorLogRoutes(app, db, auth, errorLogController.NewErrorLogController(db, errorLogger))

	courseController := courseControllers.NewCourseController(db, fileStorage, errorLogger, oembed)
	courseRoutes.SetupAdminCourseRoutes(app, db, auth, courseController)
	courseRoutes.SetupCourseRoutes(app, auth, courseController)

	quit, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-quit.Done()
		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return errors.Wrap(err, "server stopped")
	}
	return nil
}
