package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WinHandler handles win record HTTP requests
type WinHandler struct {
	winService services.WinService
}

// NewWinHandler creates a new WinHandler
func NewWinHandler(winService services.WinService) *WinHandler {
	return &WinHandler{winService: winService}
}

// GetWinsByOutcome handles GET /admin/outcomes/:id/wins
func (h *WinHandler) GetWinsByOutcome(c *gin.Context) {
	outcomeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	wins, err := h.winService.GetWinsByOutcome(c, outcomeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get win records: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, wins)
}

// UpdateClaimStatus handles PATCH /admin/wins/:id/claim
func (h *WinHandler) UpdateClaimStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request struct {
		Status models.ClaimStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.winService.UpdateClaimStatus(c, id, request.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Claim status updated successfully"})
}
