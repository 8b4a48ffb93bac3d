package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rewear-marketplace-api/internal/models"
	"github.com/rewear-marketplace-api/internal/service"
	"github.com/rewear-marketplace-api/internal/validation"
	"github.com/rs/zerolog"
)

// AuthHandler handles session endpoints
type AuthHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	ok, err := h.services.Session.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to persist session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed, please try again"})
		return
	}
	if !ok {
		// Wrong password and unknown email are deliberately
		// indistinguishable.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, h.services.Session.Current())
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	if errs := validation.ValidateRegistration(req.Name, req.Email, req.Password); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	ok, err := h.services.Session.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to persist session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed, please try again"})
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "email is already registered"})
		return
	}

	h.log.Info().Str("email", req.Email).Msg("Registration completed")
	c.JSON(http.StatusCreated, h.services.Session.Current())
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.services.Session.Logout(c.Request.Context()); err != nil {
		h.log.Error().Err(err).Msg("Failed to remove session record")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed, please try again"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSession handles GET /v1/auth/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	session := h.services.Session.Current()
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active session"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateSession handles PATCH /v1/auth/session
func (h *AuthHandler) UpdateSession(c *gin.Context) {
	var upd models.SessionUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, err := h.services.Session.Update(c.Request.Context(), upd)
	if err != nil {
		if err == service.ErrNoSession {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to persist session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed, please try again"})
		return
	}

	c.JSON(http.StatusOK, session)
}
