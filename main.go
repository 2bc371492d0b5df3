package main

import (
	"fmt"
	"log"

	"cpu-scheduler-simulator/api"
	"cpu-scheduler-simulator/config"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.GetSchedulerConfig()

	app := fiber.New()
	api.RegisterRoutes(app.Group("/api"), api.NewSchedulerHandlerImpl(cfg))

	log.Fatalln(app.Listen(fmt.Sprintf(":%d", cfg.Port)))
}
