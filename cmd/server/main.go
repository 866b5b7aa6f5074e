package main

import (
	"fmt"
	"os"
	"server/cmd/migration/initialize"
	"server/internal/app"
	"server/internal/handlers"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to create app", err)
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	if err := initialize.InitializeTables(application.Database.SQL, application.Config, log); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	fiberApp := fiber.New(fiber.Config{
		AppName: "partner-workflow",
	})
	fiberApp.Use(recover.New())

	if err := handlers.Router(fiberApp, application); err != nil {
		log.Er("failed to set up routes", err)
		os.Exit(1)
	}

	address := fmt.Sprintf("%s:%d", application.Config.ServerHost, application.Config.ServerPort)
	log.Info("Starting server", "address", address)
	if err := fiberApp.Listen(address); err != nil {
		log.Er("server stopped", err)
		os.Exit(1)
	}
}
