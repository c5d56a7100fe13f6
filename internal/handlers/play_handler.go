package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlayHandler handles play-related HTTP requests
type PlayHandler struct {
	playService services.PlayService
}

// NewPlayHandler creates a new PlayHandler
func NewPlayHandler(playService services.PlayService) *PlayHandler {
	return &PlayHandler{playService: playService}
}

// CreatePlay handles POST /plays
func (h *PlayHandler) CreatePlay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.playService.Play(c, userID, &req)
	if err != nil {
		h.writePlayError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Quote handles POST /plays/quote. It runs the apportioning without
// committing anything, so the client can preview the charge breakdown.
func (h *PlayHandler) Quote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allocation, err := h.playService.Quote(c, userID, &req)
	if err != nil {
		h.writePlayError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"allocation":    allocation,
		"topupRequired": allocation.TopupRequired(),
	})
}

// GetPlayByID handles GET /plays/:id
func (h *PlayHandler) GetPlayByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	play, err := h.playService.GetPlayByID(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Play not found"})
		return
	}
	if play.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Play not found"})
		return
	}

	c.JSON(http.StatusOK, play)
}

// GetPlays handles GET /plays
func (h *PlayHandler) GetPlays(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	plays, err := h.playService.GetPlaysByUser(c, userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get plays: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, plays)
}

// writePlayError maps play/quote service errors onto HTTP responses. Pool
// configuration problems are reported generically so a drained or
// misconfigured pool never reads as a loss to the player.
func (h *PlayHandler) writePlayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidSelection):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDiscountNotUsable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount code is not valid"})
	case errors.Is(err, services.ErrGameNotActive):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Game is not available"})
	case errors.Is(err, services.ErrInsufficientFunds):
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient funds"})
	case errors.Is(err, services.ErrNoEligibleOutcomes):
		c.JSON(http.StatusConflict, gin.H{"error": "Game is temporarily unavailable, please try again later"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process play: " + err.Error()})
	}
}
