package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rewear-marketplace-api/internal/service"
	"github.com/rs/zerolog"
)

// AdminHandler handles administrative endpoints
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// requireAdmin aborts the request unless the active session belongs to
// an administrator.
func (h *AdminHandler) requireAdmin(c *gin.Context) bool {
	session := h.services.Session.Current()
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return false
	}
	if !session.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "administrator access required"})
		return false
	}
	return true
}

// GetStats handles GET /v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	c.JSON(http.StatusOK, service.ComputeStats(h.services.Session, h.services.Catalog))
}

// ApproveItem handles POST /v1/admin/items/:id/approve
func (h *AdminHandler) ApproveItem(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	id := c.Param("id")
	if _, ok := h.services.Catalog.GetItem(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	if err := h.services.Catalog.ApproveItem(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Str("item_id", id).Msg("Failed to persist approval")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed, please try again"})
		return
	}

	h.log.Info().Str("item_id", id).Msg("Item approved")
	item, _ := h.services.Catalog.GetItem(id)
	c.JSON(http.StatusOK, item)
}

// RejectItem handles POST /v1/admin/items/:id/reject
func (h *AdminHandler) RejectItem(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	id := c.Param("id")
	if _, ok := h.services.Catalog.GetItem(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	if err := h.services.Catalog.RejectItem(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Str("item_id", id).Msg("Failed to persist rejection")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed, please try again"})
		return
	}

	h.log.Info().Str("item_id", id).Msg("Item rejected")
	item, _ := h.services.Catalog.GetItem(id)
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /v1/admin/items/:id
func (h *AdminHandler) DeleteItem(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	id := c.Param("id")
	if _, ok := h.services.Catalog.GetItem(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	if err := h.services.Catalog.DeleteItem(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Str("item_id", id).Msg("Failed to persist catalog")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed, please try again"})
		return
	}

	h.log.Info().Str("item_id", id).Msg("Item removed")
	c.Status(http.StatusNoContent)
}
