package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameHandler handles game and outcome-pool HTTP requests
type GameHandler struct {
	gameService services.GameService
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameService services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// GetGames handles GET /games
func (h *GameHandler) GetGames(c *gin.Context) {
	games, err := h.gameService.GetGames(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get games: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, games)
}

// GetGameByID handles GET /games/:id
func (h *GameHandler) GetGameByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	game, err := h.gameService.GetGameByID(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	c.JSON(http.StatusOK, game)
}

// CreateGame handles POST /admin/games
func (h *GameHandler) CreateGame(c *gin.Context) {
	var game models.Game
	if err := c.ShouldBindJSON(&game); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.gameService.CreateGame(c, &game); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, game)
}

// UpdateGame handles PUT /admin/games/:id
func (h *GameHandler) UpdateGame(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var game models.Game
	if err := c.ShouldBindJSON(&game); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	game.ID = id

	if err := h.gameService.UpdateGame(c, &game); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, game)
}

// GetPool handles GET /games/:id/outcomes
func (h *GameHandler) GetPool(c *gin.Context) {
	gameID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	pool, err := h.gameService.GetPool(c, gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get outcomes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, pool)
}

// CreateOutcome handles POST /admin/games/:id/outcomes
func (h *GameHandler) CreateOutcome(c *gin.Context) {
	gameID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var outcome models.Outcome
	if err := c.ShouldBindJSON(&outcome); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	outcome.GameID = gameID

	if err := h.gameService.CreateOutcome(c, &outcome); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, outcome)
}

// UpdateOutcome handles PUT /admin/outcomes/:id
func (h *GameHandler) UpdateOutcome(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var outcome models.Outcome
	if err := c.ShouldBindJSON(&outcome); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	outcome.ID = id

	if err := h.gameService.UpdateOutcome(c, &outcome); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// SetOutcomeActive handles PATCH /admin/outcomes/:id/active
func (h *GameHandler) SetOutcomeActive(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.gameService.SetOutcomeActive(c, id, *request.Active); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update outcome: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Outcome updated successfully"})
}
