// Package main is the entry point for the stacking-service application.
//
// @title           Stacking Service API
// @version         1.0.0
// @description     API for simulating how a shopping cart ships as packages.
//
//	Admin-defined stacking groups combine several products into one package; units no group can absorb ship loose.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/stacking-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @tag.name        Shipping
// @tag.description Cart to package simulation
//
// @tag.name        Groups
// @tag.description Stacking group catalog management
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	_ "github.com/guttosm/stacking-service/docs" // swagger docs

	"github.com/guttosm/stacking-service/config"
	"github.com/guttosm/stacking-service/internal/app"
)

func main() {
	if err := config.LoadEnvFile(); err != nil {
		log.Fatal().Err(err).Msg("Invalid .env file")
	}
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server.Port,
		app.WithShutdownHook(application.Close),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
