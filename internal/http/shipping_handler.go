package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/stacking-service/internal/domain/dto"
	"github.com/guttosm/stacking-service/internal/service"
)

// ShippingHandler serves shipping simulations.
type ShippingHandler struct {
	shipping service.ShippingService
}

// NewShippingHandler creates a new ShippingHandler instance.
func NewShippingHandler(shipping service.ShippingService) *ShippingHandler {
	return &ShippingHandler{shipping: shipping}
}

// Simulate handles POST /api/shipping/simulate requests.
//
// @Summary      Simulate shipping packages for a cart
// @Description  Splits the cart into stacking-group packages and one loose package. Groups are evaluated in catalog order; the candidate with the lowest total volume wins unless strategy=max_grouped is requested. An empty packages list means there is nothing to ship. truncated is true when the search gave up and the cart shipped as one loose package; catalog_unavailable is true when the group store was unreachable and everything shipped loose.
// @Tags         Shipping
// @Accept       json
// @Produce      json
// @Param        request body dto.SimulateRequest true "Cart"
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse{data=model.Shipment} "Derived packages"
// @Failure      400 {object} dto.ErrorResponse "Invalid cart, unknown strategy or invalid stacking group"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Stacking catalog unavailable"
// @Failure      504 {object} dto.ErrorResponse "Request timeout"
// @Security     ApiKeyAuth
// @Router       /api/shipping/simulate [post]
func (h *ShippingHandler) Simulate(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.SimulateRequest](c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	shipment, err := h.shipping.Simulate(c.Request.Context(), service.SimulationRequest{
		Items:    req.ToItems(),
		Strategy: req.Strategy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	NewResponseBuilder(c).SuccessOK(shipment)
}
