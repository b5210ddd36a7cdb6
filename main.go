package main

import (
	"context"
	"fmt"
	"log"

	"membership-console/controller"
	"membership-console/models"
	"membership-console/utils"
	"membership-console/utils/logger"
	"membership-console/worker"

	"github.com/gin-gonic/gin"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

// @title Membership Registry Console API
// @version 1.0
// @description Administrative console for the membership registry: browse,
// @description approve, reject and manage secretary/club registrations scoped
// @description to the state/district hierarchy. The remote registry service is
// @description the source of truth; this console keeps a per-session cache.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8082
// @BasePath /api/v1
func main() {
	Init()
	fmt.Println("Config Loaded ::", utils.PrintPrettyJSON(config))

	ctx := context.Background()

	r := gin.New()
	c := controller.NewController(ctx, config, logger.NewLogger(config.LogLevel, config.LogFormat))

	// Start server (this is blocking)
	go func() {
		if err := c.RegisterRoutes(ctx, config, r, config.BasePath); err != nil {
			log.Fatalf("Console server failed: %v", err)
		}
	}()

	// Start the session janitor
	janitor, err := worker.NewService(config, logger.NewLogger(config.LogLevel, config.LogFormat), c.Session.Sessions())
	if err != nil {
		log.Fatalf("Failed to create session janitor: %v", err)
	}
	if err := janitor.StartInBackground(); err != nil {
		log.Fatalf("Failed to start session janitor: %v", err)
	}

	// Keep main goroutine alive
	select {}
}
