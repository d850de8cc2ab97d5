// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stacking-service/config"
	"github.com/guttosm/stacking-service/internal/http"
)

// App is the wired application: the HTTP router and the resources it owns.
type App struct {
	Router *gin.Engine

	database *DatabaseComponents
	services *ServiceComponents
	router   *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	// Logger first, everything below logs
	InitializeLogger(cfg.Log)

	dbComponents := InitializeDatabase(cfg.Database)
	serviceComponents := InitializeServices(cfg, dbComponents.Catalog)
	InitializeSeed(serviceComponents.Catalog, cfg.Stacking.SeedFile)

	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	return &App{
		Router:   http.NewRouter(routerComponents.HealthHandler, routerComponents.Config),
		database: dbComponents,
		services: serviceComponents,
		router:   routerComponents,
	}
}

// Close stops background workers and disconnects from MongoDB.
func (a *App) Close(ctx context.Context) error {
	a.router.Stop()
	a.services.Stop()

	var errs []error
	if err := a.database.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
