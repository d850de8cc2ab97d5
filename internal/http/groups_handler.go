package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/stacking-service/internal/domain/dto"
	"github.com/guttosm/stacking-service/internal/service"
)

// GroupsHandler administers the stacking group catalog.
type GroupsHandler struct {
	catalog service.GroupCatalogService
}

// NewGroupsHandler creates a new GroupsHandler instance.
func NewGroupsHandler(catalog service.GroupCatalogService) *GroupsHandler {
	return &GroupsHandler{catalog: catalog}
}

// List handles GET /api/groups.
//
// @Summary      List stacking groups
// @Description  Returns the catalog in evaluation order (position, then creation time).
// @Tags         Groups
// @Produce      json
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse{data=dto.GroupListResponse}
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      503 {object} dto.ErrorResponse "Stacking catalog unavailable"
// @Security     ApiKeyAuth
// @Router       /api/groups [get]
func (h *GroupsHandler) List(c *gin.Context) {
	groups, err := h.catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(dto.GroupListResponse{Groups: groups, Count: len(groups)})
}

// Get handles GET /api/groups/:id.
//
// @Summary      Get a stacking group
// @Tags         Groups
// @Produce      json
// @Param        id path string true "Group id"
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse{data=model.GroupDefinition}
// @Failure      404 {object} dto.ErrorResponse "Group not found"
// @Failure      503 {object} dto.ErrorResponse "Stacking catalog unavailable"
// @Security     ApiKeyAuth
// @Router       /api/groups/{id} [get]
func (h *GroupsHandler) Get(c *gin.Context) {
	group, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(group)
}

// Create handles POST /api/groups.
//
// @Summary      Create a stacking group
// @Description  Validates and stores a new group. Supports idempotency via Idempotency-Key header.
// @Tags         Groups
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Param        request body dto.GroupRequest true "Group definition"
// @Success      201 {object} dto.SuccessResponse{data=model.GroupDefinition}
// @Failure      400 {object} dto.ErrorResponse "Invalid group definition"
// @Failure      409 {object} dto.ErrorResponse "Idempotency key reused with a different body"
// @Failure      503 {object} dto.ErrorResponse "Stacking catalog unavailable"
// @Security     ApiKeyAuth
// @Router       /api/groups [post]
func (h *GroupsHandler) Create(c *gin.Context) {
	req, err := BuildRequest[dto.GroupRequest](c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	group, err := h.catalog.Create(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/api/groups/"+group.ID)
	NewResponseBuilder(c).SuccessCreated(group)
}

// Update handles PUT /api/groups/:id.
//
// @Summary      Replace a stacking group
// @Tags         Groups
// @Accept       json
// @Produce      json
// @Param        id path string true "Group id"
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Param        request body dto.GroupRequest true "Group definition"
// @Success      200 {object} dto.SuccessResponse{data=model.GroupDefinition}
// @Failure      400 {object} dto.ErrorResponse "Invalid group definition"
// @Failure      404 {object} dto.ErrorResponse "Group not found"
// @Failure      503 {object} dto.ErrorResponse "Stacking catalog unavailable"
// @Security     ApiKeyAuth
// @Router       /api/groups/{id} [put]
func (h *GroupsHandler) Update(c *gin.Context) {
	req, err := BuildRequest[dto.GroupRequest](c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	group, err := h.catalog.Update(c.Request.Context(), c.Param("id"), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(group)
}

// Delete handles DELETE /api/groups/:id.
//
// @Summary      Delete a stacking group
// @Tags         Groups
// @Param        id path string true "Group id"
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse "Group not found"
// @Failure      503 {object} dto.ErrorResponse "Stacking catalog unavailable"
// @Security     ApiKeyAuth
// @Router       /api/groups/{id} [delete]
func (h *GroupsHandler) Delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).NoContent()
}
