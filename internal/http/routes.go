package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// ShippingRoutes registers the simulation endpoint.
type ShippingRoutes struct {
	handler *ShippingHandler
}

// RegisterRoutes implements RouteGroup.
func (r *ShippingRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	rg.POST("/shipping/simulate", r.handler.Simulate)
}

// GroupRoutes registers the stacking group catalog endpoints.
type GroupRoutes struct {
	handler *GroupsHandler
}

// RegisterRoutes implements RouteGroup.
func (r *GroupRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	groups := rg.Group("/groups")
	groups.GET("", r.handler.List)
	groups.POST("", r.handler.Create)
	groups.GET("/:id", r.handler.Get)
	groups.PUT("/:id", r.handler.Update)
	groups.DELETE("/:id", r.handler.Delete)
}

// apiRouteGroups returns the route groups whose services are configured.
func apiRouteGroups(cfg *RouterConfig) []RouteGroup {
	var groups []RouteGroup
	if cfg.ShippingService != nil {
		groups = append(groups, &ShippingRoutes{handler: NewShippingHandler(cfg.ShippingService)})
	}
	if cfg.CatalogService != nil {
		groups = append(groups, &GroupRoutes{handler: NewGroupsHandler(cfg.CatalogService)})
	}
	return groups
}
