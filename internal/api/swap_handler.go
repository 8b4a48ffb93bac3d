package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rewear-marketplace-api/internal/models"
	"github.com/rewear-marketplace-api/internal/service"
	"github.com/rs/zerolog"
)

// SwapHandler handles swap-request and redemption endpoints
type SwapHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSwapHandler creates a new SwapHandler
func NewSwapHandler(services *service.Services, log zerolog.Logger) *SwapHandler {
	return &SwapHandler{
		services: services,
		log:      log.With().Str("handler", "swaps").Logger(),
	}
}

type swapRequestBody struct {
	Message string `json:"message"`
}

// ListSwaps handles GET /v1/swaps. Administrators see the whole
// collection; everyone else sees swaps they take part in.
func (h *SwapHandler) ListSwaps(c *gin.Context) {
	session := h.services.Session.Current()
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var swaps []models.SwapRequest
	if session.IsAdmin() && c.Query("mine") == "" {
		swaps = h.services.Catalog.Swaps()
	} else {
		swaps = h.services.Catalog.SwapsForUser(session.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"swaps": swaps,
		"count": len(swaps),
	})
}

// RequestSwap handles POST /v1/items/:id/swap
func (h *SwapHandler) RequestSwap(c *gin.Context) {
	session := h.services.Session.Current()
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id := c.Param("id")
	item, ok := h.services.Catalog.GetItem(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	// Owner gating lives here, not in the store.
	if item.OwnerID == session.ID {
		c.JSON(http.StatusConflict, gin.H{"error": "cannot request a swap for your own item"})
		return
	}

	var body swapRequestBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	swap, err := h.services.Catalog.RequestSwap(c.Request.Context(), id, session, body.Message)
	if err != nil {
		switch err {
		case service.ErrItemNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		case service.ErrItemUnavailable:
			c.JSON(http.StatusConflict, gin.H{"error": "item is not available"})
		default:
			h.log.Error().Err(err).Str("item_id", id).Msg("Failed to persist swap request")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed, please try again"})
		}
		return
	}

	c.JSON(http.StatusCreated, swap)
}

// Redeem handles POST /v1/items/:id/redeem. The balance check happens
// here; the store itself never debits or credits points.
func (h *SwapHandler) Redeem(c *gin.Context) {
	session := h.services.Session.Current()
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id := c.Param("id")
	item, ok := h.services.Catalog.GetItem(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	if item.OwnerID == session.ID {
		c.JSON(http.StatusConflict, gin.H{"error": "cannot redeem your own item"})
		return
	}
	if session.Points < item.PointsRequired {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient points for redemption"})
		return
	}

	if err := h.services.Catalog.RedeemWithPoints(c.Request.Context(), id); err != nil {
		if err == service.ErrItemNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		h.log.Error().Err(err).Str("item_id", id).Msg("Failed to persist redemption")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed, please try again"})
		return
	}

	redeemed, _ := h.services.Catalog.GetItem(id)
	c.JSON(http.StatusOK, redeemed)
}
