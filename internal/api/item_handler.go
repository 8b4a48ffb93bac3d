package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rewear-marketplace-api/internal/models"
	"github.com/rewear-marketplace-api/internal/service"
	"github.com/rewear-marketplace-api/internal/validation"
	"github.com/rs/zerolog"
)

// ItemHandler handles catalog item endpoints
type ItemHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(services *service.Services, log zerolog.Logger) *ItemHandler {
	return &ItemHandler{
		services: services,
		log:      log.With().Str("handler", "items").Logger(),
	}
}

type createItemRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Size           string   `json:"size"`
	Condition      string   `json:"condition"`
	Type           string   `json:"type"`
	PointsRequired int      `json:"pointsRequired"`
	Images         []string `json:"images"`
	Tags           []string `json:"tags"`
	Location       string   `json:"location"`
	Featured       bool     `json:"featured"`
}

// ListItems handles GET /v1/items
func (h *ItemHandler) ListItems(c *gin.Context) {
	filter := models.ItemFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		OwnerID:  c.Query("owner_id"),
		Sort:     c.Query("sort"),
	}

	if featured := c.Query("featured"); featured != "" {
		value, err := strconv.ParseBool(featured)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "featured must be a boolean"})
			return
		}
		filter.Featured = value
	}

	if limit := c.Query("limit"); limit != "" {
		value, err := strconv.Atoi(limit)
		if err != nil || value < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		filter.Limit = value
	}

	if filter.Sort != "" && filter.Sort != "newest" && filter.Sort != "oldest" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort must be newest or oldest"})
		return
	}

	items := h.services.Catalog.ListItems(filter)
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// GetItem handles GET /v1/items/:id
func (h *ItemHandler) GetItem(c *gin.Context) {
	item, ok := h.services.Catalog.GetItem(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateItem handles POST /v1/items
func (h *ItemHandler) CreateItem(c *gin.Context) {
	session := h.services.Session.Current()
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item := models.Item{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Size:           req.Size,
		Condition:      req.Condition,
		Type:           req.Type,
		PointsRequired: req.PointsRequired,
		Images:         req.Images,
		Tags:           req.Tags,
		Location:       req.Location,
		Featured:       req.Featured,
		// Owner snapshot taken at creation time
		OwnerID:       session.ID,
		OwnerName:     session.Name,
		OwnerJoinDate: session.JoinDate,
	}

	if errs := validation.ValidateItem(&item); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	created, err := h.services.Catalog.AddItem(c.Request.Context(), item)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to persist item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed, please try again"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateItem handles PATCH /v1/items/:id
func (h *ItemHandler) UpdateItem(c *gin.Context) {
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
	if item.OwnerID != session.ID && !session.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner may edit this item"})
		return
	}

	var upd models.ItemUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if errs := validation.ValidateItemUpdate(&upd); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := h.services.Catalog.UpdateItem(c.Request.Context(), id, upd); err != nil {
		h.log.Error().Err(err).Str("item_id", id).Msg("Failed to persist item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed, please try again"})
		return
	}

	updated, _ := h.services.Catalog.GetItem(id)
	c.JSON(http.StatusOK, updated)
}

// DeleteItem handles DELETE /v1/items/:id
func (h *ItemHandler) DeleteItem(c *gin.Context) {
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
	if item.OwnerID != session.ID && !session.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner may delete this item"})
		return
	}

	if err := h.services.Catalog.DeleteItem(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Str("item_id", id).Msg("Failed to persist catalog")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed, please try again"})
		return
	}

	c.Status(http.StatusNoContent)
}
